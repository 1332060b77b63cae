// Package lfsr implements a Galois-style linear feedback shift
// register whose feedback function is multiplication by a field
// generator, rather than a fixed tap mask -- the GF(2^n) realization
// §4's shared vocabulary calls out in the rest of the module.
package lfsr

import "github.com/Davincible/gf256/pkg/gf"

// LFSR advances a GF(2^n) element by repeated multiplication by its
// field's generator (or divides by it, to step backwards). It is a
// value-producing sequence generator, not a byte stream: Next returns
// the raw word so callers can use it as a parity coefficient or
// syndrome evaluation point.
type LFSR[T gf.Word] struct {
	field *gf.Field[T]
	state gf.Elem[T]
}

// New creates an LFSR over field, seeded at seed. A zero seed is legal
// but produces a degenerate all-zero sequence, matching the source's
// behavior of never special-casing zero.
func New[T gf.Word](field *gf.Field[T], seed T) *LFSR[T] {
	return &LFSR[T]{field: field, state: gf.New(field, seed)}
}

// Next advances the register one step forward, state = state * alpha,
// and returns the new state.
func (l *LFSR[T]) Next() T {
	l.state = l.state.Mul(l.field.Generator())
	return l.state.Get()
}

// Prev advances the register one step backward, state = state /
// alpha, and returns the new state.
func (l *LFSR[T]) Prev() T {
	l.state = l.state.Mul(l.field.Generator().Inverse())
	return l.state.Get()
}

// NextN advances the register n steps forward in one call, equivalent
// to n repeated calls to Next but done by a single exponentiation of
// the generator.
func (l *LFSR[T]) NextN(n int) T {
	step := l.field.Generator().Pow(uint64(n))
	l.state = l.state.Mul(step)
	return l.state.Get()
}

// State returns the register's current value without advancing it.
func (l *LFSR[T]) State() T {
	return l.state.Get()
}

// NextBits extracts bits pseudo-random output bits by running the
// classic bit-level Galois shift-and-xor step bits times: shift the
// register left one bit, and whenever the bit shifted out of the top
// was set, fold in the field's reduction polynomial. The bits shifted
// out, high bit first, are returned as q; the register is left at the
// new state. Each single-bit step multiplies the state by x, not by the
// generator as Next does; one accumulated call is equivalent to bits
// repeated single-bit steps, but runs in a single pass.
func (l *LFSR[T]) NextBits(bits int) T {
	width := uint(l.field.Width())
	mask := (T(1) << width) - 1
	poly := l.field.Polynomial()
	x := l.state.Get()

	var q T
	for i := 0; i < bits; i++ {
		msb := (x >> (width - 1)) & 1
		q = (q << 1) | msb
		x = (x << 1) & mask
		if msb != 0 {
			x ^= poly
		}
	}
	l.state = gf.New(l.field, x)
	return q
}

// PrevBits is NextBits run backwards: it undoes bits worth of NextBits
// steps, returning the bits that a forward NextBits(bits) call would
// have consumed to reach the current state.
func (l *LFSR[T]) PrevBits(bits int) T {
	width := uint(l.field.Width())
	poly := l.field.Polynomial()
	invMask := (T(1) << (width - 1)) | (poly >> 1)
	x := l.state.Get()

	var q T
	for i := 0; i < bits; i++ {
		lsb := x & 1
		q = (q >> 1) | (lsb << uint(bits-1))
		x >>= 1
		if lsb != 0 {
			x ^= invMask
		}
	}
	l.state = gf.New(l.field, x)
	return q
}
