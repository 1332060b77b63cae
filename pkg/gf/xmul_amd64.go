package gf

import "golang.org/x/sys/cpu"

func init() {
	if cpu.X86.HasPCLMULQDQ {
		HasXMUL = true
		hwXmul64 = xmulPCLMULQDQ
	}
}

// xmulPCLMULQDQ is implemented in xmul_amd64.s using the PCLMULQDQ
// instruction, which computes the full 128-bit carry-less product of
// two 64-bit operands directly (§4.1: "When n=64 the intrinsic yields
// a 128-bit product directly"). Returns (lo, hi) with lo holding bits
// [0,64) of the product and hi bits [64,128).
//
//go:noescape
func xmulPCLMULQDQ(a, b uint64) (lo, hi uint64)
