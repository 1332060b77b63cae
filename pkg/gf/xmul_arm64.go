package gf

import "golang.org/x/sys/cpu"

func init() {
	if cpu.ARM64.HasPMULL {
		HasXMUL = true
		hwXmul64 = xmulPMULL
	}
}

// xmulPMULL is implemented in xmul_arm64.s using the PMULL instruction,
// aarch64's 64x64->128 carry-less multiply (§4.1/§2).
//
//go:noescape
func xmulPMULL(a, b uint64) (lo, hi uint64)
