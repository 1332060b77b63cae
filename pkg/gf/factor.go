package gf

// primeFactors lists the distinct prime factors of 2^n-1 for every
// width this package validates irreducibility/primitivity at (§4.5).
// These are used by checkIrreducible and checkPrimitive, which only
// need to test one exponent per distinct prime factor rather than
// factor 2^n-1 at runtime.
var primeFactors = map[int][]uint64{
	4:  {3, 5},
	8:  {3, 5, 17},
	16: {3, 5, 17, 257},
	32: {3, 5, 17, 257, 65537},
	64: {3, 5, 17, 257, 641, 65537, 6700417},
}
