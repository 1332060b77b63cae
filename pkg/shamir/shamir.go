// Package shamir implements Shamir secret sharing directly on
// pkg/gf's GF(256) element type: split generates a random degree-
// (threshold-1) polynomial with the secret as its constant term and
// evaluates it at x = 1..shares, one point per share; combine reconstructs
// the constant term by Lagrange interpolation at x=0. This supersedes
// the source's delegation to hashicorp/vault/shamir, folding secret
// sharing into the same field machinery the rest of the module uses.
package shamir

import (
	"errors"
	"fmt"
	"io"

	"github.com/Davincible/gf256/pkg/gf"
	"github.com/Davincible/gf256/pkg/secure"
)

var (
	// ErrInvalidConfig is returned by Split for a nonsensical
	// shares/threshold pair.
	ErrInvalidConfig = errors.New("shamir: invalid shares/threshold configuration")
	// ErrTooFewShares is returned by Combine when no shares are
	// supplied, or when shares disagree on secret length. Combine does
	// not know the threshold: fewer shares than it yield a wrong value,
	// not this error.
	ErrTooFewShares = errors.New("shamir: not enough shares to reconstruct")
	// ErrDuplicateShare is returned by Combine when two shares carry
	// the same index.
	ErrDuplicateShare = errors.New("shamir: duplicate share index")
)

// Share is one point on the secret's sharing polynomial: an index in
// [1,255] and the corresponding byte-wise polynomial evaluation.
type Share struct {
	Index byte
	Data  []byte
}

var field = mustField()

func mustField() *gf.Field[uint8] {
	f, err := gf.NewField[uint8](gf.Config{Polynomial: 0x1d, Generator: 0x02})
	if err != nil {
		panic(err)
	}
	return f
}

// Split divides secret into the given number of shares, any threshold
// of which reconstruct it. rnd supplies the random polynomial
// coefficients; pass crypto/rand.Reader in production.
func Split(secret []byte, shares, threshold int, rnd io.Reader) ([]Share, error) {
	if threshold < 1 || shares < threshold || shares > 255 {
		return nil, fmt.Errorf("%w: shares=%d threshold=%d", ErrInvalidConfig, shares, threshold)
	}
	if len(secret) == 0 {
		return nil, errors.New("shamir: secret must not be empty")
	}

	coeffs := make([][]byte, threshold-1)
	for i := range coeffs {
		buf := make([]byte, len(secret))
		if _, err := io.ReadFull(rnd, buf); err != nil {
			return nil, fmt.Errorf("shamir: generating polynomial coefficients: %w", err)
		}
		coeffs[i] = buf
	}
	defer func() {
		for _, c := range coeffs {
			secure.Zero(c)
		}
	}()

	result := make([]Share, shares)
	for s := 0; s < shares; s++ {
		x := byte(s + 1)
		xElem := gf.New(field, x)
		data := make([]byte, len(secret))
		for k := range secret {
			acc := gf.New(field, secret[k])
			power := gf.New(field, uint8(1))
			for _, coeff := range coeffs {
				power = power.Mul(xElem)
				acc = acc.Add(gf.New(field, coeff[k]).Mul(power))
			}
			data[k] = acc.Get()
		}
		result[s] = Share{Index: x, Data: data}
	}
	return result, nil
}

// Combine reconstructs the secret from shares via Lagrange
// interpolation at x=0. Every share must carry the same length of
// data and a unique, non-zero index.
func Combine(shares []Share) ([]byte, error) {
	if len(shares) == 0 {
		return nil, ErrTooFewShares
	}
	size := len(shares[0].Data)
	seen := make(map[byte]bool, len(shares))
	for _, s := range shares {
		if len(s.Data) != size {
			return nil, fmt.Errorf("%w: shares carry different lengths", ErrTooFewShares)
		}
		if seen[s.Index] {
			return nil, fmt.Errorf("%w: index %d", ErrDuplicateShare, s.Index)
		}
		seen[s.Index] = true
	}

	secret := make([]byte, size)
	for k := 0; k < size; k++ {
		secret[k] = interpolateAtZero(shares, k)
	}
	return secret, nil
}

// interpolateAtZero evaluates the Lagrange interpolation polynomial
// through (share.Index, share.Data[byteIdx]) points at x=0, which
// recovers the sharing polynomial's constant term -- the secret byte.
func interpolateAtZero(shares []Share, byteIdx int) byte {
	sum := gf.New(field, uint8(0))
	for i, si := range shares {
		yi := gf.New(field, si.Data[byteIdx])
		xi := gf.New(field, si.Index)

		num := gf.New(field, uint8(1))
		den := gf.New(field, uint8(1))
		for j, sj := range shares {
			if i == j {
				continue
			}
			xj := gf.New(field, sj.Index)
			num = num.Mul(xj) // (0 - xj) == xj over GF(2^n)
			den = den.Mul(xi.Sub(xj))
		}
		term := yi.Mul(num).Div(den)
		sum = sum.Add(term)
	}
	return sum.Get()
}
