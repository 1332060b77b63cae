package gf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ghashPoly is the GHASH reduction polynomial x^128+x^7+x^2+x+1, low
// bits only, the standard irreducible degree-128 polynomial AES-GCM
// uses for its field.
var ghashPoly = NewP128(0, 0x87)

func newGF128(t *testing.T, mode Strategy) *GF128 {
	t.Helper()
	f, err := NewGF128(Config128{Polynomial: ghashPoly, Generator: NewP128(0, 2), Mode: mode})
	require.NoError(t, err)
	return f
}

func TestGF128AddIsXor(t *testing.T) {
	f := newGF128(t, Naive)
	a := NewGF128Elem(f, NewP128(0x1, 0x2))
	b := NewGF128Elem(f, NewP128(0x3, 0x4))
	sum := a.Add(b)
	hi, lo := sum.Get().Uint64Halves()
	assert.Equal(t, uint64(0x2), hi)
	assert.Equal(t, uint64(0x6), lo)
}

func TestGF128InverseRoundTrips(t *testing.T) {
	f := newGF128(t, Naive)
	one := NewP128(0, 1)

	for _, v := range []P128{NewP128(0, 1), NewP128(0, 2), NewP128(1, 0), NewP128(0xdeadbeef, 0xcafebabe)} {
		e := NewGF128Elem(f, v)
		inv := e.Inverse()
		got := e.Mul(inv).Get()
		gotHi, gotLo := got.Uint64Halves()
		wantHi, wantLo := one.Uint64Halves()
		assert.Equal(t, wantHi, gotHi)
		assert.Equal(t, wantLo, gotLo)
	}
}

func TestGF128InverseOfZeroFails(t *testing.T) {
	f := newGF128(t, Naive)
	zero := NewGF128Elem(f, NewP128(0, 0))
	_, err := zero.CheckedInverse()
	assert.ErrorIs(t, err, ErrDivByZero)
}

func TestGF128StrategiesAgree(t *testing.T) {
	naive := newGF128(t, Naive)
	remTable := newGF128(t, RemTable)
	barret := newGF128(t, Barret)

	vectors := []P128{
		NewP128(0, 1), NewP128(0, 0x1234), NewP128(0x5678, 0x9abc), NewP128(0xffffffffffffffff, 0xffffffffffffffff),
	}
	for _, a := range vectors {
		for _, b := range vectors {
			wantHi, wantLo := NewGF128Elem(naive, a).Mul(NewGF128Elem(naive, b)).Get().Uint64Halves()
			rHi, rLo := NewGF128Elem(remTable, a).Mul(NewGF128Elem(remTable, b)).Get().Uint64Halves()
			bHi, bLo := NewGF128Elem(barret, a).Mul(NewGF128Elem(barret, b)).Get().Uint64Halves()
			assert.Equal(t, wantHi, rHi)
			assert.Equal(t, wantLo, rLo)
			assert.Equal(t, wantHi, bHi)
			assert.Equal(t, wantLo, bLo)
		}
	}
}

func TestNewGF128RejectsUnsupportedMode(t *testing.T) {
	_, err := NewGF128(Config128{Polynomial: ghashPoly, Generator: NewP128(0, 2), Mode: Table})
	assert.ErrorIs(t, err, ErrBadConfig)
}
