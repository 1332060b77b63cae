package gf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFieldGF256(t *testing.T) {
	f, err := NewField[uint8](Config{Polynomial: 0x1d, Generator: 0x02})
	require.NoError(t, err)
	assert.Equal(t, 8, f.Width())
	assert.Equal(t, uint64(255), f.Nonzero())
}

func TestNewFieldGF16Narrow(t *testing.T) {
	f, err := NewField[uint8](Config{Polynomial: 0b0011, Generator: 0b0010, Width: 4})
	require.NoError(t, err)
	assert.Equal(t, 4, f.Width())
	assert.Equal(t, uint64(15), f.Nonzero())
	assert.Equal(t, Table, f.Strategy(), "narrow fields fall back to the table strategy")
}

func TestNewFieldRejectsNonIrreducible(t *testing.T) {
	_, err := NewField[uint8](Config{Polynomial: 0x01, Generator: 0x02})
	assert.ErrorIs(t, err, ErrInvalidPolynomial)
}

func TestNewFieldRejectsNonPrimitiveGenerator(t *testing.T) {
	_, err := NewField[uint8](Config{Polynomial: 0x1d, Generator: 0x01})
	assert.ErrorIs(t, err, ErrInvalidGenerator)
}

func TestNewFieldRejectsNarrowStrategyPin(t *testing.T) {
	_, err := NewField[uint8](Config{Polynomial: 0b0011, Generator: 0b0010, Width: 4, Mode: Barret})
	assert.ErrorIs(t, err, ErrBadConfig)
}

func TestStrategiesAgree(t *testing.T) {
	modes := []Strategy{Naive, Table, RemTable, SmallRemTable, Barret}
	fields := make([]*Field[uint8], len(modes))
	for i, m := range modes {
		f, err := NewField[uint8](Config{Polynomial: 0x1d, Generator: 0x02, Mode: m})
		require.NoError(t, err)
		fields[i] = f
	}

	for a := 0; a < 256; a++ {
		for b := 0; b < 256; b += 17 {
			var want uint8
			for i, f := range fields {
				got := New(f, uint8(a)).Mul(New(f, uint8(b))).Get()
				if i == 0 {
					want = got
				} else {
					assert.Equalf(t, want, got, "strategy %s disagrees with %s on %d*%d", modes[i], modes[0], a, b)
				}
			}
		}
	}
}

func TestElementArithmeticInverses(t *testing.T) {
	f, err := NewField[uint8](Config{Polynomial: 0x1d, Generator: 0x02})
	require.NoError(t, err)

	for v := 1; v < 256; v++ {
		e := New(f, uint8(v))
		inv := e.Inverse()
		assert.Equal(t, uint8(1), e.Mul(inv).Get())
	}
}

func TestTableStrategyInverseOfOneIsOne(t *testing.T) {
	f, err := NewField[uint8](Config{Polynomial: 0x1d, Generator: 0x02, FullTables: true})
	require.NoError(t, err)
	require.Equal(t, Table, f.Strategy())

	one := New(f, uint8(1))
	assert.Equal(t, uint8(1), one.Inverse().Get())

	for v := 1; v < 256; v++ {
		e := New(f, uint8(v))
		assert.Equal(t, uint8(1), e.Mul(e.Inverse()).Get())
	}
}

func TestElementDivByZero(t *testing.T) {
	f, err := NewField[uint8](Config{Polynomial: 0x1d, Generator: 0x02})
	require.NoError(t, err)

	zero := New(f, uint8(0))
	_, err = zero.CheckedInverse()
	assert.ErrorIs(t, err, ErrDivByZero)
	assert.Panics(t, func() { zero.Inverse() })
}

func TestNewCheckedRejectsOutOfRangeValue(t *testing.T) {
	f, err := NewField[uint8](Config{Polynomial: 0b0011, Generator: 0b0010, Width: 4})
	require.NoError(t, err)

	e, err := NewChecked(f, uint8(0b1010))
	require.NoError(t, err)
	assert.Equal(t, uint8(0b1010), e.Get())

	_, err = NewChecked(f, uint8(16))
	assert.ErrorIs(t, err, ErrValueOutOfField)

	assert.Panics(t, func() { New(f, uint8(16)) })
}

func TestGeneratorHasFullOrder(t *testing.T) {
	f, err := NewField[uint8](Config{Polynomial: 0x1d, Generator: 0x02})
	require.NoError(t, err)

	alpha := f.Generator()
	seen := make(map[uint8]bool)
	x := New(f, uint8(1))
	for i := uint64(0); i < f.Nonzero(); i++ {
		seen[x.Get()] = true
		x = x.Mul(alpha)
	}
	assert.Equal(t, int(f.Nonzero()), len(seen))
	assert.Equal(t, uint8(1), x.Get(), "alpha^nonzero must cycle back to 1")
}

func TestGF16XmulVector(t *testing.T) {
	f, err := NewField[uint16](Config{Polynomial: 0x002d, Generator: 0x0003})
	require.NoError(t, err)

	a := New(f, uint16(0x1234))
	b := New(f, uint16(0x0002))
	got := a.Mul(b).Get()

	hi, lo := xmulNaive(uint16(0x1234), uint16(0x0002))
	want := reduceNaive(hi, lo, f.Polynomial(), f.Width())
	assert.Equal(t, want, got)
}

func TestGF256DistributivityLiteralVector(t *testing.T) {
	f, err := NewField[uint8](Config{Polynomial: 0x1d, Generator: 0x02})
	require.NoError(t, err)

	a := New(f, uint8(0xfd))
	b := New(f, uint8(0xfe))
	c := New(f, uint8(0xff))

	lhs := a.Mul(b.Add(c))
	rhs := a.Mul(b).Add(a.Mul(c))
	assert.Equal(t, uint8(0xfd), lhs.Get())
	assert.Equal(t, rhs.Get(), lhs.Get())
}

func TestGF16LiteralVector(t *testing.T) {
	f, err := NewField[uint8](Config{Polynomial: 0b0011, Generator: 0b0010, Width: 4})
	require.NoError(t, err)

	a := New(f, uint8(0b1011))
	b := New(f, uint8(0b1101))
	assert.Equal(t, uint8(0b0110), a.Mul(b).Get())

	alpha := f.Generator()
	assert.Equal(t, uint64(15), f.Nonzero())
	x := New(f, uint8(1))
	for i := uint64(0); i < f.Nonzero()-1; i++ {
		x = x.Mul(alpha)
		assert.NotEqual(t, uint8(1), x.Get(), "alpha must not cycle back before its full order")
	}
	x = x.Mul(alpha)
	assert.Equal(t, uint8(1), x.Get())

	product := New(f, uint8(0b0110))
	assert.Equal(t, uint8(0b0111), product.Inverse().Get())
}

func TestElemAddIsSelfInverse(t *testing.T) {
	f, err := NewField[uint8](Config{Polynomial: 0x1d, Generator: 0x02})
	require.NoError(t, err)

	a := New(f, uint8(0x53))
	b := New(f, uint8(0xca))
	sum := a.Add(b)
	assert.Equal(t, a.Get(), sum.Add(b).Get())
}

func TestPowZeroIsOne(t *testing.T) {
	f, err := NewField[uint8](Config{Polynomial: 0x1d, Generator: 0x02})
	require.NoError(t, err)

	for v := 0; v < 256; v++ {
		assert.Equal(t, uint8(1), New(f, uint8(v)).Pow(0).Get())
	}
}
