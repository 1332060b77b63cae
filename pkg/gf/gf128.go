package gf

import (
	"fmt"

	"github.com/holiman/uint256"
)

// Config128 declares a 128-bit field. Width 128 is not in factor.go's
// table (§4.5), so construction trusts the caller's polynomial and
// generator rather than running the irreducibility/primitivity checks
// the generic Field[T] performs -- the documented narrower safety net
// for this one width (see DESIGN.md's Open Question resolution).
type Config128 struct {
	Polynomial P128 // low 128 bits of g
	Generator  P128
	Mode       Strategy // Naive, RemTable or Barret only
	UseXMUL    *bool
}

// GF128 is the non-generic 128-bit counterpart to Field[T]; it backs
// GF128Elem the way Field[T] backs Elem[T], but only ever resolves to
// the naive, rem_table or Barret strategy since log/antilog tables are
// never practical at this width.
type GF128 struct {
	g, mu, generator P128
	strategy         Strategy
	remTable         []P128
}

// NewGF128 builds a 128-bit field from cfg. Mode Auto resolves to
// Barret when hardware xmul is available, naive otherwise, matching
// §4.3 rule 2's "too wide for log/antilog" branch, which always applies
// at this width.
func NewGF128(cfg Config128) (*GF128, error) {
	mode := cfg.Mode
	hasXMUL := HasXMUL
	if cfg.UseXMUL != nil {
		hasXMUL = *cfg.UseXMUL && HasXMUL
	}
	if mode == Auto {
		if hasXMUL {
			mode = Barret
		} else {
			mode = Naive
		}
	}
	if mode != Naive && mode != RemTable && mode != Barret {
		return nil, fmt.Errorf("%w: width 128 supports only naive, rem_table and barret", ErrBadConfig)
	}

	f := &GF128{
		g:         cfg.Polynomial,
		generator: cfg.Generator,
		strategy:  mode,
	}
	f.mu = computeBarretMu128(f.g)

	if mode == RemTable {
		f.remTable = buildRemTable128(f.g, 256)
	}
	return f, nil
}

// Strategy reports the resolved × adapter.
func (f *GF128) Strategy() Strategy { return f.strategy }

// Generator returns alpha as an element of f.
func (f *GF128) Generator() GF128Elem { return GF128Elem{field: f, v: f.generator} }

func degree256(x *uint256.Int) int {
	if x.IsZero() {
		return -1
	}
	return x.BitLen() - 1
}

// reduceNaive128 reduces the 256-bit polynomial (hi,lo) modulo g_full
// by repeated shift-and-xor, the 128-bit analogue of reduceNaive.
func reduceNaive128(hi, lo P128, g P128) P128 {
	total := new(uint256.Int).Lsh(hi.v, 128)
	total.Or(total, lo.v)
	gFull := new(uint256.Int).Lsh(uint256.NewInt(1), 128)
	gFull.Or(gFull, g.v)

	for {
		dr := degree256(total)
		if dr < 128 {
			break
		}
		shifted := new(uint256.Int).Lsh(gFull, uint(dr-128))
		total.Xor(total, shifted)
	}
	return P128{v: total}
}

func (f *GF128) mulNaive(a, b P128) P128 {
	hi, lo := a.WideningMul(b)
	return reduceNaive128(hi, lo, f.g)
}

// computeBarretMu128 is computeBarretMu's 128-bit analogue: mu's low
// bits equal floor((g * x^128) / g_full).
func computeBarretMu128(g P128) P128 {
	num := P128{v: new(uint256.Int).Lsh(g.v, 128)}
	gFull := P128{v: new(uint256.Int).Or(new(uint256.Int).Lsh(uint256.NewInt(1), 128), g.v)}
	quo, _ := num.DivMod(gFull)
	return quo
}

func (f *GF128) mulBarret(a, b P128) P128 {
	hi, lo := a.WideningMul(b)
	w := hi
	h2, _ := w.WideningMul(f.mu)
	t := w.Add(h2)
	h3, l3 := t.WideningMul(f.g)
	rhi := hi.Add(t).Add(h3)
	rlo := lo.Add(l3)
	return reduceNaive128(rhi, rlo, f.g)
}

func buildRemTable128(g P128, size int) []P128 {
	table := make([]P128, size)
	for i := 0; i < size; i++ {
		table[i] = reduceNaive128(NewP128(0, uint64(i)), P128{v: new(uint256.Int)}, g)
	}
	return table
}

func (f *GF128) mulRemTable(a, b P128) P128 {
	hi, lo := a.WideningMul(b)
	var x P128 = P128{v: new(uint256.Int)}
	for shift := 128 - 8; shift >= 0; shift -= 8 {
		piece := hi.Shr(shift)
		pieceByte := new(uint256.Int).And(piece.v, uint256.NewInt(0xff))
		idx := new(uint256.Int).And(x.Shr(128-8).v, uint256.NewInt(0xff))
		idx.Xor(idx, pieceByte)
		x = P128{v: new(uint256.Int).Lsh(x.v, 8)}
		x.v.And(x.v, mask128)
		x = P128{v: new(uint256.Int).Xor(x.v, f.remTable[idx.Uint64()].v)}
	}
	return x.Add(lo)
}

func (f *GF128) mul(a, b P128) P128 {
	switch f.strategy {
	case RemTable:
		return f.mulRemTable(a, b)
	case Barret:
		return f.mulBarret(a, b)
	default:
		return f.mulNaive(a, b)
	}
}

// GF128Elem is a 128-bit field element, the GF128 counterpart to
// Elem[T].
type GF128Elem struct {
	field *GF128
	v     P128
}

// NewGF128Elem wraps a raw 128-bit value as an element of f.
func NewGF128Elem(f *GF128, v P128) GF128Elem {
	return GF128Elem{field: f, v: v}
}

// Get returns the element's underlying 128-bit word.
func (e GF128Elem) Get() P128 { return e.v }

// Add returns e+other, which over GF(2) is xor.
func (e GF128Elem) Add(other GF128Elem) GF128Elem {
	return GF128Elem{field: e.field, v: e.v.Add(other.v)}
}

// Sub returns e-other, which over GF(2) is also xor.
func (e GF128Elem) Sub(other GF128Elem) GF128Elem {
	return GF128Elem{field: e.field, v: e.v.Sub(other.v)}
}

// Mul returns e*other via the field's resolved × strategy.
func (e GF128Elem) Mul(other GF128Elem) GF128Elem {
	return GF128Elem{field: e.field, v: e.field.mul(e.v, other.v)}
}

// Pow raises e to a non-negative integer exponent by fixed-iteration
// square-and-multiply over 128 bits of exponent.
func (e GF128Elem) Pow(exp P128) GF128Elem {
	result := NewP128(0, 1)
	a := e.v
	expHi, expLo := exp.Uint64Halves()
	bits := [2]uint64{expLo, expHi}
	for word := 0; word < 2; word++ {
		w := bits[word]
		for i := 0; i < 64; i++ {
			if w&1 == 1 {
				result = e.field.mul(result, a)
			}
			w >>= 1
			a = e.field.mul(a, a)
		}
	}
	return GF128Elem{field: e.field, v: result}
}

// CheckedInverse returns e's multiplicative inverse by exponentiation
// to 2^128-2, or ErrDivByZero when e is zero.
func (e GF128Elem) CheckedInverse() (GF128Elem, error) {
	if e.v.Degree() < 0 {
		return GF128Elem{}, ErrDivByZero
	}
	allOnes := mask128
	expMinus1 := new(uint256.Int).Sub(allOnes, uint256.NewInt(1))
	exp := P128{v: expMinus1}
	return e.Pow(exp), nil
}

// Inverse is CheckedInverse without the error return.
func (e GF128Elem) Inverse() GF128Elem {
	inv, err := e.CheckedInverse()
	if err != nil {
		panic(err)
	}
	return inv
}

// CheckedDiv returns e/other, or ErrDivByZero when other is zero.
func (e GF128Elem) CheckedDiv(other GF128Elem) (GF128Elem, error) {
	inv, err := other.CheckedInverse()
	if err != nil {
		return GF128Elem{}, fmt.Errorf("gf: div: %w", err)
	}
	return e.Mul(inv), nil
}

// Equal reports whether e and other hold the same word.
func (e GF128Elem) Equal(other GF128Elem) bool {
	return e.v.v.Eq(other.v.v)
}
