package lfsr

import (
	"testing"

	"github.com/Davincible/gf256/pkg/gf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustField(t *testing.T) *gf.Field[uint8] {
	t.Helper()
	f, err := gf.NewField[uint8](gf.Config{Polynomial: 0x1d, Generator: 0x02})
	require.NoError(t, err)
	return f
}

func TestNextThenPrevRoundTrips(t *testing.T) {
	f := mustField(t)
	reg := New(f, uint8(0x01))

	var steps []uint8
	for i := 0; i < 8; i++ {
		steps = append(steps, reg.Next())
	}
	for i := len(steps) - 1; i >= 0; i-- {
		got := reg.Prev()
		if i == 0 {
			assert.Equal(t, uint8(0x01), got)
		} else {
			assert.Equal(t, steps[i-1], got)
		}
	}
}

func TestNextNMatchesRepeatedNext(t *testing.T) {
	f := mustField(t)
	a := New(f, uint8(0x37))
	b := New(f, uint8(0x37))

	for i := 0; i < 5; i++ {
		a.Next()
	}
	got := b.NextN(5)
	assert.Equal(t, a.State(), got)
}

func TestZeroSeedStaysZero(t *testing.T) {
	f := mustField(t)
	reg := New(f, uint8(0))
	assert.Equal(t, uint8(0), reg.Next())
	assert.Equal(t, uint8(0), reg.Next())
}

func TestStateReflectsLastStep(t *testing.T) {
	f := mustField(t)
	reg := New(f, uint8(0x05))
	v := reg.Next()
	assert.Equal(t, v, reg.State())
}

func TestNextBitsLiteralVector(t *testing.T) {
	f, err := gf.NewField[uint16](gf.Config{Polynomial: 0x002d, Generator: 0x0003})
	require.NoError(t, err)

	reg := New(f, uint16(1))
	want := []uint16{0x0001, 0x002d, 0x0451, 0xbdad}
	for _, w := range want {
		assert.Equal(t, w, reg.NextBits(16))
	}

	for i := len(want) - 1; i >= 0; i-- {
		assert.Equal(t, want[i], reg.PrevBits(16))
	}
}
