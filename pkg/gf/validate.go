package gf

import "math/bits"

// popcount returns the number of set bits in x.
func popcount[T word](x T) int {
	switch v := any(x).(type) {
	case uint8:
		return bits.OnesCount8(v)
	case uint16:
		return bits.OnesCount16(v)
	case uint32:
		return bits.OnesCount32(v)
	case uint64:
		return bits.OnesCount64(v)
	default:
		return 0
	}
}

// polyPowMod computes base^exp mod g_full, where g_full is the field's
// monic degree-width irreducible polynomial (implied leading bit, low
// bits g). Used only during construction, before a Field's strategy is
// resolved, so it always goes through the naive multiply-and-reduce
// path from §4.2. width may be narrower than bitlen(T) -- see
// reduceNaive -- for fields realized over a wider word than their
// declared degree (e.g. GF(2^4) hosted in a uint8).
func polyPowMod[T word](base T, exp uint64, g T, width int) T {
	result := T(1)
	b := base
	for exp > 0 {
		if exp&1 == 1 {
			hi, lo := xmulNaive(result, b)
			result = reduceNaive(hi, lo, g, width)
		}
		hi, lo := xmulNaive(b, b)
		b = reduceNaive(hi, lo, g, width)
		exp >>= 1
	}
	return result
}

// checkIrreducible implements §4.5 step 1: g_full has no root in GF(2)
// (odd number of terms, non-zero constant term), x^(2^n-1) is the
// multiplicative identity modulo g_full, and for every prime divisor p
// of 2^n-1, x raised to (2^n-1)/p is not -- the same order-exhaustion
// test used for primitivity, applied to x itself. An x of order 2^n-1
// makes every non-zero residue a unit, so an accepted g_full is
// irreducible; an irreducible g_full in which x is not primitive (the
// AES polynomial 0x11b, for one) is rejected as well.
func checkIrreducible[T word](g T, nonzero uint64, factors []uint64, width int) bool {
	if g&1 == 0 {
		return false // g_full(0) == 0: divisible by x
	}
	if (popcount(g)+1)%2 == 0 {
		return false // g_full(1) == 0: divisible by x+1
	}
	const x = 2 // the element x, i.e. the polynomial with only bit 1 set
	if polyPowMod(T(x), nonzero, g, width) != 1 {
		return false
	}
	for _, p := range factors {
		if polyPowMod(T(x), nonzero/p, g, width) == 1 {
			return false
		}
	}
	return true
}

// checkPrimitive implements §4.5 step 2: order(alpha) == 2^n-1, tested
// by confirming alpha^((2^n-1)/p) != 1 for every prime divisor p.
func checkPrimitive[T word](alpha, g T, nonzero uint64, factors []uint64, width int) bool {
	for _, p := range factors {
		if polyPowMod(alpha, nonzero/p, g, width) == 1 {
			return false
		}
	}
	return true
}

// computeBarretMu derives the Barret constant per §4.5 step 3: mu is
// the monic degree-n quotient floor(x^2n / g_full), represented (like
// g itself) by its low n bits with an implied leading bit at n. Using
// the identity g_full * x^n = x^2n xor (g * x^n), mu's low bits equal
// floor((g*x^n) / g_full), avoiding the need for a (2n+1)-bit dividend.
// Only meaningful at native width (width == bitlen(T)); the Barret
// strategy is never offered at narrower declared widths (see
// selectStrategy/NewField), so callers at a narrower width never read
// the result.
func computeBarretMu[T word](g T, width int) T {
	if width != bitlen[T]() {
		return 0
	}
	_, lo, _, _ := pairDivMod(g, 0, 1, g)
	return lo
}
