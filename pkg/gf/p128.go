package gf

import (
	"github.com/holiman/uint256"
)

// P128 is the 128-bit bit-polynomial realization mentioned in §3's Go
// expansion: Go has no native 128-bit integer, so the low 128 bits of
// a github.com/holiman/uint256.Int stand in for the single machine
// word every other P_n width gets for free.
type P128 struct {
	v *uint256.Int
}

var mask128 = func() *uint256.Int {
	m := new(uint256.Int).Lsh(uint256.NewInt(1), 128)
	return m.Sub(m, uint256.NewInt(1))
}()

// NewP128 wraps a 128-bit value, given as (hi,lo) 64-bit halves.
func NewP128(hi, lo uint64) P128 {
	v := new(uint256.Int).Lsh(uint256.NewInt(hi), 64)
	v.Or(v, uint256.NewInt(lo))
	return P128{v: v}
}

// Uint64Halves splits p into its (hi,lo) 64-bit halves.
func (p P128) Uint64Halves() (hi, lo uint64) {
	loVal := new(uint256.Int).And(p.v, uint256.NewInt(^uint64(0)))
	hiVal := new(uint256.Int).Rsh(p.v, 64)
	return hiVal.Uint64(), loVal.Uint64()
}

// Add returns p+q, which over GF(2) is xor.
func (p P128) Add(q P128) P128 {
	return P128{v: new(uint256.Int).Xor(p.v, q.v)}
}

// Sub returns p-q, which over GF(2) is also xor.
func (p P128) Sub(q P128) P128 {
	return P128{v: new(uint256.Int).Xor(p.v, q.v)}
}

// Degree returns the degree of p, or -1 for the zero polynomial.
func (p P128) Degree() int {
	if p.v.IsZero() {
		return -1
	}
	return p.v.BitLen() - 1
}

// Shl shifts p left by k bits (0 <= k < 128), discarding overflow.
func (p P128) Shl(k int) P128 {
	if k <= 0 {
		return p
	}
	if k >= 128 {
		return P128{v: new(uint256.Int)}
	}
	v := new(uint256.Int).Lsh(p.v, uint(k))
	return P128{v: v.And(v, mask128)}
}

// Shr shifts p right by k bits.
func (p P128) Shr(k int) P128 {
	if k <= 0 {
		return p
	}
	if k >= 128 {
		return P128{v: new(uint256.Int)}
	}
	return P128{v: new(uint256.Int).Rsh(p.v, uint(k))}
}

// WideningMul returns the full 256-bit carry-less product of p and q
// as a (hi, lo) pair of P128s. Built from four 64x64->128 xmul calls,
// schoolbook-combined the way a 128x128 multiply decomposes into
// 64-bit limbs when the platform has no native 128-bit carry-less
// multiply instruction.
func (p P128) WideningMul(q P128) (hi, lo P128) {
	aHi, aLo := p.Uint64Halves()
	bHi, bLo := q.Uint64Halves()

	l00hi, l00lo := xmul(aLo, bLo)
	l01hi, l01lo := xmul(aLo, bHi)
	l10hi, l10lo := xmul(aHi, bLo)
	l11hi, l11lo := xmul(aHi, bHi)

	v00 := NewP128(l00hi, l00lo).v
	v01 := NewP128(l01hi, l01lo).v
	v10 := NewP128(l10hi, l10lo).v
	v11 := NewP128(l11hi, l11lo).v

	total := new(uint256.Int).Xor(v00, new(uint256.Int).Lsh(v01, 64))
	total.Xor(total, new(uint256.Int).Lsh(v10, 64))
	total.Xor(total, new(uint256.Int).Lsh(v11, 128))

	loVal := new(uint256.Int).And(total, mask128)
	hiVal := new(uint256.Int).Rsh(total, 128)
	return P128{v: hiVal}, P128{v: loVal}
}

// DivMod performs polynomial long division of p by q within 128 bits;
// q must be non-zero.
func (p P128) DivMod(q P128) (quo, rem P128) {
	dq := q.Degree()
	if dq < 0 {
		panic("gf: division by zero polynomial")
	}
	r := new(uint256.Int).Set(p.v)
	quotient := new(uint256.Int)
	for {
		dr := P128{v: r}.Degree()
		if dr < dq {
			break
		}
		shift := uint(dr - dq)
		shifted := new(uint256.Int).Lsh(q.v, shift)
		r.Xor(r, shifted)
		bit := new(uint256.Int).Lsh(uint256.NewInt(1), shift)
		quotient.Or(quotient, bit)
	}
	return P128{v: quotient}, P128{v: r}
}
