package gf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPolyPowModMatchesRepeatedSquaring(t *testing.T) {
	g := uint8(0x1d)
	width := 8
	base := uint8(0x02)

	got := polyPowMod(base, 5, g, width)

	want := T1()
	for i := 0; i < 5; i++ {
		hi, lo := xmulNaive(want, base)
		want = reduceNaive(hi, lo, g, width)
	}
	assert.Equal(t, want, got)
}

func T1() uint8 { return 1 }

func TestCheckIrreducibleRejectsReducible(t *testing.T) {
	// x^8+1 = (x+1)^8 over GF(2): reducible.
	ok := checkIrreducible(uint8(0x01), 255, primeFactors[8], 8)
	assert.False(t, ok)
}

func TestCheckIrreducibleAcceptsDefaultGF256Poly(t *testing.T) {
	ok := checkIrreducible(uint8(0x1d), 255, primeFactors[8], 8)
	assert.True(t, ok)
}

func TestCheckPrimitiveRejectsNonGenerator(t *testing.T) {
	ok := checkPrimitive(uint8(0x01), uint8(0x1d), 255, primeFactors[8], 8)
	assert.False(t, ok)
}

func TestCheckPrimitiveAcceptsKnownGenerator(t *testing.T) {
	ok := checkPrimitive(uint8(0x02), uint8(0x1d), 255, primeFactors[8], 8)
	assert.True(t, ok)
}

func TestComputeBarretMuOnlyAtNativeWidth(t *testing.T) {
	mu := computeBarretMu(uint8(0x03), 4)
	assert.Equal(t, uint8(0), mu, "Barret's mu is only defined at native width")
}
