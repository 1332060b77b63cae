// Package rs implements a systematic Reed-Solomon block code over
// GF(256), built directly on pkg/gf's field element type: syndromes,
// error locators and error magnitudes are all just GF(256) arithmetic
// evaluated at powers of the field's generator.
package rs

import (
	"errors"
	"fmt"

	"github.com/Davincible/gf256/pkg/gf"
)

var (
	// ErrInvalidSize is returned by New for a nonsensical block/data pair.
	ErrInvalidSize = errors.New("rs: invalid block/data size")
	// ErrCodewordSize is returned when a codeword's length doesn't match the codec.
	ErrCodewordSize = errors.New("rs: codeword has the wrong length")
	// ErrTooManyErrors is returned when a codeword has more errors or
	// erasures than the code's parity can correct.
	ErrTooManyErrors = errors.New("rs: too many errors to correct")
)

// Codec is a systematic Reed-Solomon(block, data) code: block-data
// parity symbols are appended to each data message, computed as the
// remainder of message(x)*x^parity divided by a generator polynomial
// whose roots are alpha^1..alpha^parity.
type Codec struct {
	field     *gf.Field[uint8]
	block     int
	data      int
	parity    int
	generator []gf.Elem[uint8] // degree parity, monic, low-to-high coefficients
}

// Option configures a Codec at construction time.
type Option func(*Codec)

// WithField overrides the default GF(256) field (polynomial 0x11d,
// generator 0x02), for callers who need a different primitive
// polynomial to interoperate with another system.
func WithField(field *gf.Field[uint8]) Option {
	return func(c *Codec) { c.field = field }
}

// New builds a Codec for the given total block size and data size;
// block-data symbols are parity. block must fit in a byte and exceed
// data.
func New(block, data int, opts ...Option) (*Codec, error) {
	if data <= 0 || block <= data || block > 255 {
		return nil, fmt.Errorf("%w: block=%d data=%d", ErrInvalidSize, block, data)
	}
	c := &Codec{block: block, data: data, parity: block - data}
	for _, opt := range opts {
		opt(c)
	}
	if c.field == nil {
		field, err := gf.NewField[uint8](gf.Config{Polynomial: 0x1d, Generator: 0x02})
		if err != nil {
			return nil, fmt.Errorf("rs: building GF(256): %w", err)
		}
		c.field = field
	}
	c.generator = c.buildGenerator()
	return c, nil
}

// buildGenerator computes the product (x + alpha^1)(x + alpha^2)...(x
// + alpha^parity), returned as coefficients from x^0 up to x^parity.
func (c *Codec) buildGenerator() []gf.Elem[uint8] {
	one := gf.New(c.field, uint8(1))
	zero := gf.New(c.field, uint8(0))
	poly := []gf.Elem[uint8]{one}
	for i := 1; i <= c.parity; i++ {
		root := c.field.Generator().Pow(uint64(i))
		next := make([]gf.Elem[uint8], len(poly)+1)
		for i := range next {
			next[i] = zero
		}
		for j, coeff := range poly {
			next[j+1] = next[j+1].Add(coeff)
			next[j] = next[j].Add(coeff.Mul(root))
		}
		poly = next
	}
	return poly
}

// Encode appends parity symbols to msg (which must be exactly c.data
// bytes) and returns the block-length codeword.
func (c *Codec) Encode(msg []byte) ([]byte, error) {
	if len(msg) != c.data {
		return nil, fmt.Errorf("%w: got %d want %d", ErrInvalidSize, len(msg), c.data)
	}
	remainder := make([]gf.Elem[uint8], c.parity)
	zero := gf.New(c.field, uint8(0))
	for i := range remainder {
		remainder[i] = zero
	}

	for _, b := range msg {
		feedback := gf.New(c.field, b).Add(remainder[c.parity-1])
		for i := c.parity - 1; i > 0; i-- {
			remainder[i] = remainder[i-1].Add(feedback.Mul(c.generator[i]))
		}
		remainder[0] = feedback.Mul(c.generator[0])
	}

	out := make([]byte, c.block)
	copy(out, msg)
	for i := 0; i < c.parity; i++ {
		out[c.data+c.parity-1-i] = remainder[i].Get()
	}
	return out, nil
}

// syndromes evaluates codeword(alpha^i) for i in [1, parity], treating
// codeword[0] as the highest-order coefficient.
func (c *Codec) syndromes(codeword []byte) []gf.Elem[uint8] {
	s := make([]gf.Elem[uint8], c.parity)
	for i := 0; i < c.parity; i++ {
		point := c.field.Generator().Pow(uint64(i + 1))
		acc := gf.New(c.field, uint8(0))
		for _, b := range codeword {
			acc = acc.Mul(point).Add(gf.New(c.field, b))
		}
		s[i] = acc
	}
	return s
}

// IsCorrect reports whether codeword has all-zero syndromes, i.e.
// carries no detectable error.
func (c *Codec) IsCorrect(codeword []byte) (bool, error) {
	if len(codeword) != c.block {
		return false, ErrCodewordSize
	}
	for _, s := range c.syndromes(codeword) {
		if s.Get() != 0 {
			return false, nil
		}
	}
	return true, nil
}

// CorrectErasures repairs codeword in place given the positions (as
// indices into codeword, 0 = first/highest-order byte) of up to
// c.parity known-bad symbols, using the syndromes and the standard
// erasure-locator linear system. Returns the number of erasures
// corrected.
func (c *Codec) CorrectErasures(codeword []byte, erasurePositions []int) (int, error) {
	if len(codeword) != c.block {
		return 0, ErrCodewordSize
	}
	if len(erasurePositions) > c.parity {
		return 0, fmt.Errorf("%w: %d erasures, parity is %d", ErrTooManyErrors, len(erasurePositions), c.parity)
	}
	if len(erasurePositions) == 0 {
		return 0, nil
	}

	s := c.syndromes(codeword)
	allZero := true
	for _, v := range s {
		if v.Get() != 0 {
			allZero = false
		}
	}
	if allZero {
		return 0, nil
	}

	n := len(erasurePositions)
	xs := make([]gf.Elem[uint8], n)
	for i, pos := range erasurePositions {
		exp := c.block - 1 - pos
		xs[i] = c.field.Generator().Pow(uint64(exp))
	}

	matrix := make([][]gf.Elem[uint8], n)
	for r := 0; r < n; r++ {
		row := make([]gf.Elem[uint8], n)
		for col := 0; col < n; col++ {
			row[col] = xs[col].Pow(uint64(r + 1))
		}
		matrix[r] = row
	}
	rhs := make([]gf.Elem[uint8], n)
	copy(rhs, s[:n])

	magnitudes, err := solveLinear(c.field, matrix, rhs)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrTooManyErrors, err)
	}

	for i, pos := range erasurePositions {
		codeword[pos] ^= magnitudes[i].Get()
	}
	return n, nil
}

// CorrectErrors repairs codeword in place with no prior knowledge of
// which symbols are bad, correcting up to floor(c.parity/2) errors via
// Berlekamp-Massey, Chien search and the Forney algorithm. Returns the
// number of errors corrected.
func (c *Codec) CorrectErrors(codeword []byte) (int, error) {
	if len(codeword) != c.block {
		return 0, ErrCodewordSize
	}

	s := c.syndromes(codeword)
	allZero := true
	for _, v := range s {
		if v.Get() != 0 {
			allZero = false
		}
	}
	if allZero {
		return 0, nil
	}

	locator := berlekampMassey(c.field, s)
	numErrors := len(locator) - 1
	if numErrors <= 0 || numErrors > c.parity/2 {
		return 0, ErrTooManyErrors
	}

	positions, err := chienSearch(c.field, locator, c.block)
	if err != nil || len(positions) != numErrors {
		return 0, ErrTooManyErrors
	}

	magnitudes := forney(c.field, s, locator, positions, c.block)
	for i, pos := range positions {
		codeword[pos] ^= magnitudes[i].Get()
	}
	return numErrors, nil
}

// solveLinear solves m*x = rhs over field by Gauss-Jordan elimination.
func solveLinear(field *gf.Field[uint8], m [][]gf.Elem[uint8], rhs []gf.Elem[uint8]) ([]gf.Elem[uint8], error) {
	n := len(m)
	aug := make([][]gf.Elem[uint8], n)
	for i := 0; i < n; i++ {
		row := make([]gf.Elem[uint8], n+1)
		copy(row, m[i])
		row[n] = rhs[i]
		aug[i] = row
	}

	for col := 0; col < n; col++ {
		pivot := -1
		for r := col; r < n; r++ {
			if aug[r][col].Get() != 0 {
				pivot = r
				break
			}
		}
		if pivot < 0 {
			return nil, errors.New("rs: singular erasure matrix")
		}
		aug[col], aug[pivot] = aug[pivot], aug[col]

		invPivot := aug[col][col].Inverse()
		for c := col; c <= n; c++ {
			aug[col][c] = aug[col][c].Mul(invPivot)
		}
		for r := 0; r < n; r++ {
			if r == col {
				continue
			}
			factor := aug[r][col]
			if factor.Get() == 0 {
				continue
			}
			for c := col; c <= n; c++ {
				aug[r][c] = aug[r][c].Sub(factor.Mul(aug[col][c]))
			}
		}
	}

	result := make([]gf.Elem[uint8], n)
	for i := 0; i < n; i++ {
		result[i] = aug[i][n]
	}
	return result, nil
}

// berlekampMassey finds the shortest linear feedback register (error
// locator polynomial, low-to-high coefficients, constant term 1) that
// generates the syndrome sequence.
func berlekampMassey(field *gf.Field[uint8], syndromes []gf.Elem[uint8]) []gf.Elem[uint8] {
	one := gf.New(field, uint8(1))
	zero := gf.New(field, uint8(0))

	c := []gf.Elem[uint8]{one}
	b := []gf.Elem[uint8]{one}
	l := 0
	m := 1
	bCoeff := one

	for n := 0; n < len(syndromes); n++ {
		delta := syndromes[n]
		for i := 1; i <= l; i++ {
			if i < len(c) {
				delta = delta.Add(c[i].Mul(syndromes[n-i]))
			}
		}

		if delta.Get() == 0 {
			m++
			continue
		}

		t := make([]gf.Elem[uint8], len(c))
		copy(t, c)

		coeff := delta.Div(bCoeff)
		shifted := make([]gf.Elem[uint8], len(b)+m)
		for i := range shifted {
			shifted[i] = zero
		}
		for i, v := range b {
			shifted[i+m] = v.Mul(coeff)
		}
		c = polyAdd(field, c, shifted)

		if 2*l <= n {
			l = n + 1 - l
			b = t
			bCoeff = delta
			m = 1
		} else {
			m++
		}
	}
	return c
}

func polyAdd(field *gf.Field[uint8], a, b []gf.Elem[uint8]) []gf.Elem[uint8] {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	out := make([]gf.Elem[uint8], n)
	for i := 0; i < n; i++ {
		av, bv := gf.New(field, uint8(0)), gf.New(field, uint8(0))
		if i < len(a) {
			av = a[i]
		}
		if i < len(b) {
			bv = b[i]
		}
		out[i] = av.Add(bv)
	}
	return out
}

// chienSearch finds the roots of locator by brute-force evaluation at
// every non-zero field element, returning the corresponding codeword
// byte positions (0 = highest order).
func chienSearch(field *gf.Field[uint8], locator []gf.Elem[uint8], blockLen int) ([]int, error) {
	var positions []int
	for i := 0; i < blockLen; i++ {
		exp := blockLen - 1 - i
		x := field.Generator().Pow(uint64(exp)).Inverse()
		acc := gf.New(field, uint8(0))
		for j, coeff := range locator {
			acc = acc.Add(coeff.Mul(x.Pow(uint64(j))))
		}
		if acc.Get() == 0 {
			positions = append(positions, i)
		}
	}
	return positions, nil
}

// forney computes the error magnitude at each located position using
// the syndrome polynomial and the error locator's formal derivative.
func forney(field *gf.Field[uint8], syndromes, locator []gf.Elem[uint8], positions []int, blockLen int) []gf.Elem[uint8] {
	zero := gf.New(field, uint8(0))

	// Error evaluator omega(x) = S(x)*locator(x) mod x^parity, S(x)
	// taken low-to-high with S[0] (the syndrome at alpha^1) as the
	// constant coefficient.
	sPoly := make([]gf.Elem[uint8], len(syndromes))
	copy(sPoly, syndromes)

	omegaFull := make([]gf.Elem[uint8], len(sPoly)+len(locator)-1)
	for i := range omegaFull {
		omegaFull[i] = zero
	}
	for i, sv := range sPoly {
		for j, lv := range locator {
			omegaFull[i+j] = omegaFull[i+j].Add(sv.Mul(lv))
		}
	}
	omega := omegaFull
	if len(omega) > len(syndromes) {
		omega = omega[:len(syndromes)]
	}

	locatorDeriv := make([]gf.Elem[uint8], len(locator)-1)
	for i := 1; i < len(locator); i++ {
		if i%2 == 1 {
			locatorDeriv[i-1] = locator[i]
		} else {
			locatorDeriv[i-1] = zero
		}
	}

	magnitudes := make([]gf.Elem[uint8], len(positions))
	for k, pos := range positions {
		x := field.Generator().Pow(uint64(blockLen - 1 - pos))
		xInv := x.Inverse()

		omegaAtXInv := evalPoly(field, omega, xInv)
		derivAtXInv := evalPoly(field, locatorDeriv, xInv)

		if derivAtXInv.Get() == 0 {
			magnitudes[k] = zero
			continue
		}
		magnitudes[k] = omegaAtXInv.Div(derivAtXInv)
	}
	return magnitudes
}

func evalPoly(field *gf.Field[uint8], poly []gf.Elem[uint8], x gf.Elem[uint8]) gf.Elem[uint8] {
	acc := gf.New(field, uint8(0))
	for i := len(poly) - 1; i >= 0; i-- {
		acc = acc.Mul(x).Add(poly[i])
	}
	return acc
}
