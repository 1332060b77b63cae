// Package gf implements binary-extension finite-field arithmetic GF(2^n)
// and the bit-polynomial substrate it is built on.
package gf

import "errors"

// Sentinel errors returned by field construction and element operations.
// Callers should compare against these with errors.Is, since they are
// frequently wrapped with additional context.
var (
	// ErrDivByZero is returned by Div/Inverse when the divisor is the
	// zero element.
	ErrDivByZero = errors.New("gf: division by zero")

	// ErrValueOutOfField is returned when a construction value has bits
	// set above position n-1 for a field of width n.
	ErrValueOutOfField = errors.New("gf: value out of field")

	// ErrInvalidPolynomial is returned at field construction when the
	// supplied polynomial is not irreducible, or not of degree n.
	ErrInvalidPolynomial = errors.New("gf: invalid irreducible polynomial")

	// ErrInvalidGenerator is returned at field construction when the
	// supplied generator is not primitive (its multiplicative order is
	// not 2^n-1).
	ErrInvalidGenerator = errors.New("gf: invalid generator")

	// ErrOverflow is returned by a widening operation that would exceed
	// the bit width it promises.
	ErrOverflow = errors.New("gf: overflow")

	// ErrUnsupportedWidth is returned when NewField is asked to validate
	// primitivity/irreducibility at a width this package does not carry
	// a factorization of 2^n-1 for.
	ErrUnsupportedWidth = errors.New("gf: unsupported field width")

	// ErrBadConfig is returned when a Config names an inconsistent or
	// unrecognized combination of options.
	ErrBadConfig = errors.New("gf: invalid field configuration")
)
