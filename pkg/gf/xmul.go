package gf

// HasXMUL reports whether this process detected a hardware carry-less
// multiply instruction (pclmulqdq on x86_64, pmull on aarch64) at
// startup. It is resolved once, from the target ISA, and never changes
// afterwards — the "compile-time constant" of §4.1/§9 realized as a
// process-wide immutable value, since Go has no cross-platform
// compile-time CPU feature system.
//
// A field's usexmul=false configuration option (§6) only changes which
// strategy NewField selects; xmul itself consults HasXMUL alone. See
// Config.UseXMUL.
var HasXMUL bool

// hwXmul64 is set by an arch-specific init() (xmul_amd64.go,
// xmul_arm64.go) to the hardware 64x64->128 carry-less multiply when
// HasXMUL is true. It stays nil on architectures without an
// implementation, in which case xmul falls back to xmulNaive.
var hwXmul64 func(a, b uint64) (lo, hi uint64)

// xmul computes the widening carry-less product of a and b using the
// fastest implementation available: the hardware intrinsic when
// present, packing operands into a 64-bit lane per §4.1, or the naive
// branch-free loop otherwise.
func xmul[T word](a, b T) (hi, lo T) {
	if !HasXMUL || hwXmul64 == nil {
		return xmulNaive(a, b)
	}

	n := bitlen[T]()
	if n == 64 {
		l, h := hwXmul64(uint64(a), uint64(b))
		return T(h), T(l)
	}

	// n < 64: the product of two n-bit operands fits entirely within
	// the low 2n bits of the 64-bit lane, so no hi contribution from
	// the hardware call's own hi word is possible.
	l, _ := hwXmul64(uint64(a), uint64(b))
	lo = T(l)
	hi = T(l >> uint(n))
	return hi, lo
}
