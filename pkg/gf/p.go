package gf

import "math/bits"

// P is a bit-polynomial over GF(2): an n-bit word, n = bitlen(T), whose
// bit i is the coefficient of x^i. P_8, P_16, P_32 and P_64 from the
// design are realized as P[uint8], P[uint16], P[uint32] and P[uint64]
// respectively. Width 128 is handled separately by P128 (see p128.go).
type P[T word] struct {
	v T
}

// NewP wraps a raw word as a bit-polynomial.
func NewP[T word](v T) P[T] {
	return P[T]{v: v}
}

// Uint returns the polynomial's underlying word.
func (p P[T]) Uint() T {
	return p.v
}

// Add returns p+q, which over GF(2) is xor.
func (p P[T]) Add(q P[T]) P[T] {
	return P[T]{p.v ^ q.v}
}

// Sub returns p-q, which over GF(2) is also xor.
func (p P[T]) Sub(q P[T]) P[T] {
	return P[T]{p.v ^ q.v}
}

// Degree returns the degree of p, or -1 for the zero polynomial.
func (p P[T]) Degree() int {
	return degree(p.v)
}

// BitReverse reverses the bit order of p within its n-bit width.
func (p P[T]) BitReverse() P[T] {
	return P[T]{reverseBits(p.v)}
}

// Shl shifts p left by k bits, discarding bits that overflow the width.
func (p P[T]) Shl(k int) P[T] {
	if k <= 0 {
		return p
	}
	if k >= bitlen[T]() {
		return P[T]{0}
	}
	return P[T]{p.v << uint(k)}
}

// Shr shifts p right by k bits.
func (p P[T]) Shr(k int) P[T] {
	if k <= 0 {
		return p
	}
	if k >= bitlen[T]() {
		return P[T]{0}
	}
	return P[T]{p.v >> uint(k)}
}

// WideningMul returns the full 2n-bit carry-less product of p and q as a
// (hi, lo) pair of n-bit words, using the fastest available xmul
// implementation (hardware when present, naive branch-free loop
// otherwise). See NaiveWideningMul for the naive-only variant.
func (p P[T]) WideningMul(q P[T]) (hi, lo P[T]) {
	h, l := xmul(p.v, q.v)
	return P[T]{h}, P[T]{l}
}

// NaiveWideningMul is the branch-free shift-and-xor carry-less multiply
// from §4.1. It is always constant-time with respect to p and q, and
// runs the same xmulNaive loop that constant generation uses.
func (p P[T]) NaiveWideningMul(q P[T]) (hi, lo P[T]) {
	h, l := xmulNaive(p.v, q.v)
	return P[T]{h}, P[T]{l}
}

// DivMod performs polynomial long division of p by q within a single
// n-bit width (both operands and results fit in T); q must be non-zero.
func (p P[T]) DivMod(q P[T]) (quo, rem P[T]) {
	qq, rr := divMod(p.v, q.v)
	return P[T]{qq}, P[T]{rr}
}

// degree returns floor(log2(x)), or -1 when x is zero.
func degree[T word](x T) int {
	if x == 0 {
		return -1
	}
	return bitlen[T]() - 1 - leadingZeros(x)
}

func leadingZeros[T word](x T) int {
	switch v := any(x).(type) {
	case uint8:
		return bits.LeadingZeros8(v)
	case uint16:
		return bits.LeadingZeros16(v)
	case uint32:
		return bits.LeadingZeros32(v)
	case uint64:
		return bits.LeadingZeros64(v)
	default:
		return 0
	}
}

func reverseBits[T word](x T) T {
	switch v := any(x).(type) {
	case uint8:
		return any(bits.Reverse8(v)).(T)
	case uint16:
		return any(bits.Reverse16(v)).(T)
	case uint32:
		return any(bits.Reverse32(v)).(T)
	case uint64:
		return any(bits.Reverse64(v)).(T)
	default:
		return x
	}
}

// xmulNaive is the branch-free n-iteration shift-and-xor carry-less
// multiply described in §4.1: for every bit i of b, mask a<<i with an
// all-ones-or-all-zeros value (never a data-dependent branch) and xor
// it into the accumulator. hi/lo together hold the 2n-bit product.
func xmulNaive[T word](a, b T) (hi, lo T) {
	n := bitlen[T]()
	for i := 0; i < n; i++ {
		bit := (b >> uint(i)) & 1
		mask := T(0) - bit // all-ones if bit==1, all-zeros if bit==0
		lo ^= (a << uint(i)) & mask
		if i > 0 {
			hi ^= (a >> uint(n-i)) & mask
		}
	}
	return hi, lo
}

// pairDegree returns the degree of the 2n-bit polynomial (hi,lo).
func pairDegree[T word](hi, lo T) int {
	n := bitlen[T]()
	if hi != 0 {
		return n + degree(hi)
	}
	return degree(lo)
}

// pairShl shifts the 2n-bit polynomial (hi,lo) left by k bits, where
// 0 <= k < n. Bits shifted past the top of hi are discarded, which is
// safe for every caller in this package because k never exceeds the
// degree gap being eliminated by a division step.
func pairShl[T word](hi, lo T, k int) (T, T) {
	n := uint(bitlen[T]())
	kk := uint(k)
	newHi := (hi << kk) | (lo >> (n - kk))
	newLo := lo << kk
	return newHi, newLo
}

// pairDivMod divides the 2n-bit polynomial (zhi,zlo) by the polynomial
// (ghi,glo) of degree dg, producing a quotient and remainder. Used for
// reduction modulo a field's irreducible polynomial, where (ghi,glo) is
// (1, gLow) representing g = x^n + gLow(x).
func pairDivMod[T word](zhi, zlo, ghi, glo T) (qhi, qlo, rhi, rlo T) {
	n := bitlen[T]()
	dg := pairDegree(ghi, glo)
	if dg < 0 {
		panic("gf: division by zero polynomial")
	}
	rhi, rlo = zhi, zlo
	for {
		dr := pairDegree(rhi, rlo)
		if dr < dg {
			break
		}
		shift := dr - dg
		shi, slo := pairShl(ghi, glo, shift)
		rhi ^= shi
		rlo ^= slo
		if shift < n {
			qlo |= T(1) << uint(shift)
		} else {
			qhi |= T(1) << uint(shift-n)
		}
	}
	return qhi, qlo, rhi, rlo
}

// divMod performs single-width polynomial long division: a and b both
// fit in T, b non-zero, and so does the quotient (deg(a) < n).
func divMod[T word](a, b T) (q, r T) {
	db := degree(b)
	if db < 0 {
		panic("gf: division by zero polynomial")
	}
	r = a
	for {
		dr := degree(r)
		if dr < db {
			break
		}
		shift := dr - db
		r ^= b << uint(shift)
		q |= T(1) << uint(shift)
	}
	return q, r
}
