package gf

import "fmt"

// Elem is a GF(2^n) element: a P_n value of degree < n, paired with
// the Field that owns its arithmetic (g, alpha, and the resolved ×
// strategy). It is a plain value type -- copy-by-value, no heap, no
// shared ownership -- per §3's lifecycle rules.
type Elem[T word] struct {
	field *Field[T]
	v     T
}

// NewChecked wraps a raw word as an element of f, or returns
// ErrValueOutOfField when v sets a bit at or above position f.Width()
// -- unreachable when f occupies its whole word (T's native width
// always equals n) but real for a Config.Width narrower than T, per
// §6's fallible construction.
func NewChecked[T word](f *Field[T], v T) (Elem[T], error) {
	if f.width < bitlen[T]() && v>>uint(f.width) != 0 {
		return Elem[T]{}, ErrValueOutOfField
	}
	return Elem[T]{field: f, v: v}, nil
}

// New is NewChecked without the error return; it panics when v is out
// of range for f.
func New[T word](f *Field[T], v T) Elem[T] {
	e, err := NewChecked(f, v)
	if err != nil {
		panic(err)
	}
	return e
}

// Get returns the element's underlying word.
func (e Elem[T]) Get() T { return e.v }

// Field returns the field e belongs to.
func (e Elem[T]) Field() *Field[T] { return e.field }

// Add returns e+other, which over GF(2^n) is xor.
func (e Elem[T]) Add(other Elem[T]) Elem[T] {
	return Elem[T]{field: e.field, v: e.v ^ other.v}
}

// Sub returns e-other, which over GF(2^n) is also xor.
func (e Elem[T]) Sub(other Elem[T]) Elem[T] {
	return Elem[T]{field: e.field, v: e.v ^ other.v}
}

// Mul returns e*other via the field's resolved × strategy.
func (e Elem[T]) Mul(other Elem[T]) Elem[T] {
	return Elem[T]{field: e.field, v: e.field.mul(e.field, e.v, other.v)}
}

// Pow raises e to a non-negative integer exponent. Table fields use the
// log/antilog tables; every other strategy runs square-and-multiply over
// the bits of exp, stopping after its highest set bit, so the number of
// iterations is not fixed. Not constant-time in the exponent --
// exponentiation is not a cryptographic primitive here.
func (e Elem[T]) Pow(exp uint64) Elem[T] {
	if e.field.strategy == Table && e.v != 0 {
		if exp == 0 {
			return Elem[T]{field: e.field, v: 1}
		}
		l := e.field.logTable[e.v]
		x := (l * (exp % e.field.nonzero)) % e.field.nonzero
		return Elem[T]{field: e.field, v: e.field.expTable[x]}
	}

	if exp == 0 {
		return Elem[T]{field: e.field, v: 1}
	}
	if e.v == 0 {
		return Elem[T]{field: e.field, v: 0}
	}

	a := e.v
	result := T(1)
	for exp > 0 {
		if exp&1 == 1 {
			result = e.field.mul(e.field, result, a)
		}
		exp >>= 1
		if exp == 0 {
			break
		}
		a = e.field.mul(e.field, a, a)
	}
	return Elem[T]{field: e.field, v: result}
}

// CheckedInverse returns e's multiplicative inverse, or ErrDivByZero
// when e is zero. Uses the log/antilog tables when budgeted (§4.4's
// table realization); otherwise a^(Nonzero-1) by square-and-multiply.
func (e Elem[T]) CheckedInverse() (Elem[T], error) {
	if e.v == 0 {
		return Elem[T]{}, ErrDivByZero
	}
	if e.field.strategy == Table {
		l := e.field.logTable[e.v]
		idx := (e.field.nonzero - l) % e.field.nonzero
		return Elem[T]{field: e.field, v: e.field.expTable[idx]}, nil
	}
	return e.Pow(e.field.nonzero - 1), nil
}

// Inverse is CheckedInverse without the error return; it panics on a
// zero element, matching the source's "recip" naming for the
// unchecked form.
func (e Elem[T]) Inverse() Elem[T] {
	inv, err := e.CheckedInverse()
	if err != nil {
		panic(err)
	}
	return inv
}

// CheckedDiv returns e/other, or ErrDivByZero when other is zero.
func (e Elem[T]) CheckedDiv(other Elem[T]) (Elem[T], error) {
	inv, err := other.CheckedInverse()
	if err != nil {
		return Elem[T]{}, fmt.Errorf("gf: div: %w", err)
	}
	return e.Mul(inv), nil
}

// Div is CheckedDiv without the error return; it panics on division
// by zero.
func (e Elem[T]) Div(other Elem[T]) Elem[T] {
	result, err := e.CheckedDiv(other)
	if err != nil {
		panic(err)
	}
	return result
}

// Equal reports whether e and other hold the same word.
func (e Elem[T]) Equal(other Elem[T]) bool {
	return e.v == other.v
}

// Compare orders e and other by their underlying word: -1, 0 or 1.
func (e Elem[T]) Compare(other Elem[T]) int {
	switch {
	case e.v < other.v:
		return -1
	case e.v > other.v:
		return 1
	default:
		return 0
	}
}

// String renders the element's underlying word in hexadecimal.
func (e Elem[T]) String() string {
	return fmt.Sprintf("0x%x", uint64(e.v))
}
