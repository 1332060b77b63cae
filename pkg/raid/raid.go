// Package raid implements single/dual/triple-parity RAID-style block
// arrays over GF(256), the byte-oriented instance of pkg/gf's field
// machinery. Data blocks are stored verbatim; parity blocks hold
// Vandermonde-weighted sums of the data blocks, so that any subset of
// blocks up to the parity count can be reconstructed from the rest.
package raid

import (
	"errors"
	"fmt"

	"github.com/Davincible/gf256/pkg/gf"
)

// MaxParity is the largest parity count this package supports (§9).
const MaxParity = 3

var (
	// ErrInvalidParity is returned when Parity is outside [0, MaxParity].
	ErrInvalidParity = errors.New("raid: parity must be between 0 and 3")
	// ErrBlockSizeMismatch is returned when blocks have inconsistent lengths.
	ErrBlockSizeMismatch = errors.New("raid: block size mismatch")
	// ErrTooFewBlocks is returned when there are not enough surviving
	// blocks to reconstruct the missing ones.
	ErrTooFewBlocks = errors.New("raid: too many missing blocks to repair")
)

// Array describes a RAID-style block set: of the block slices passed to
// Format and Repair, the last parity entries are parity blocks and the
// rest are data.
type Array struct {
	field  *gf.Field[uint8]
	parity int
}

// New builds an Array with the given parity count (0, 1, 2 or 3) over
// GF(256) with the common Reed-Solomon field (polynomial 0x11d,
// generator 0x02).
func New(parity int) (*Array, error) {
	if parity < 0 || parity > MaxParity {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidParity, parity)
	}
	field, err := gf.NewField[uint8](gf.Config{Polynomial: 0x1d, Generator: 0x02})
	if err != nil {
		return nil, fmt.Errorf("raid: building GF(256): %w", err)
	}
	return &Array{field: field, parity: parity}, nil
}

// coeff returns the Vandermonde coefficient alpha^(row*col) used by
// parity row `row` for data column `col`.
func (a *Array) coeff(row, col int) gf.Elem[uint8] {
	return a.field.Generator().Pow(uint64(row) * uint64(col))
}

// Format computes the parity blocks from the data blocks. blocks must
// have at least Parity+1 entries, all the same length, with the last
// Parity slices used as output for the parity data.
func (a *Array) Format(blocks [][]byte) error {
	if len(blocks) <= a.parity {
		return fmt.Errorf("%w: need more than %d blocks", ErrTooFewBlocks, a.parity)
	}
	size, err := uniformSize(blocks)
	if err != nil {
		return err
	}
	dataCount := len(blocks) - a.parity

	for p := 0; p < a.parity; p++ {
		parityBlock := blocks[dataCount+p]
		for j := 0; j < size; j++ {
			acc := gf.New(a.field, uint8(0))
			for i := 0; i < dataCount; i++ {
				term := a.coeff(p, i).Mul(gf.New(a.field, blocks[i][j]))
				acc = acc.Add(term)
			}
			parityBlock[j] = acc.Get()
		}
	}
	return nil
}

// Repair reconstructs the blocks named in missing (up to Parity of
// them) from the rest, overwriting them in place.
func (a *Array) Repair(blocks [][]byte, missing []int) error {
	if len(missing) > a.parity {
		return fmt.Errorf("%w: %d missing, parity is %d", ErrTooFewBlocks, len(missing), a.parity)
	}
	if len(missing) == 0 {
		return nil
	}
	size, err := uniformSize(blocks)
	if err != nil {
		return err
	}
	n := len(blocks)
	dataCount := n - a.parity

	isMissing := make(map[int]bool, len(missing))
	for _, m := range missing {
		if m < 0 || m >= n {
			return fmt.Errorf("raid: missing index %d out of range", m)
		}
		isMissing[m] = true
	}

	missingData := []int{}
	missingParity := []int{}
	for _, m := range missing {
		if m < dataCount {
			missingData = append(missingData, m)
		} else {
			missingParity = append(missingParity, m)
		}
	}

	if len(missingData) > 0 {
		// Build a system of len(missingData) equations (one per
		// surviving parity row) in len(missingData) unknowns (the
		// missing data blocks), holding surviving data blocks fixed.
		survivingParityRows := []int{}
		for p := 0; p < a.parity; p++ {
			if !isMissing[dataCount+p] {
				survivingParityRows = append(survivingParityRows, p)
			}
		}
		if len(survivingParityRows) < len(missingData) {
			return fmt.Errorf("%w: not enough parity to recover %d data blocks", ErrTooFewBlocks, len(missingData))
		}
		rows := survivingParityRows[:len(missingData)]

		matrix := make([][]gf.Elem[uint8], len(rows))
		for r, p := range rows {
			row := make([]gf.Elem[uint8], len(missingData))
			for c, dcol := range missingData {
				row[c] = a.coeff(p, dcol)
			}
			matrix[r] = row
		}
		inv, err := invertMatrix(a.field, matrix)
		if err != nil {
			return fmt.Errorf("raid: %w", err)
		}

		for j := 0; j < size; j++ {
			rhs := make([]gf.Elem[uint8], len(rows))
			for r, p := range rows {
				acc := gf.New(a.field, blocks[dataCount+p][j])
				for i := 0; i < dataCount; i++ {
					if isMissing[i] {
						continue
					}
					term := a.coeff(p, i).Mul(gf.New(a.field, blocks[i][j]))
					acc = acc.Sub(term)
				}
				rhs[r] = acc
			}
			solved := matVec(inv, rhs)
			for c, dcol := range missingData {
				blocks[dcol][j] = solved[c].Get()
			}
		}
	}

	if len(missingParity) > 0 {
		for j := 0; j < size; j++ {
			for _, p := range missingParity {
				pRow := p - dataCount
				acc := gf.New(a.field, 0)
				for i := 0; i < dataCount; i++ {
					term := a.coeff(pRow, i).Mul(gf.New(a.field, blocks[i][j]))
					acc = acc.Add(term)
				}
				blocks[p][j] = acc.Get()
			}
		}
	}

	return nil
}

func uniformSize(blocks [][]byte) (int, error) {
	if len(blocks) == 0 {
		return 0, ErrBlockSizeMismatch
	}
	size := len(blocks[0])
	for _, b := range blocks {
		if len(b) != size {
			return 0, ErrBlockSizeMismatch
		}
	}
	return size, nil
}

// invertMatrix inverts a square matrix over field by Gauss-Jordan
// elimination, used to solve the small Vandermonde systems that arise
// when reconstructing up to MaxParity missing data blocks.
func invertMatrix(field *gf.Field[uint8], m [][]gf.Elem[uint8]) ([][]gf.Elem[uint8], error) {
	n := len(m)
	aug := make([][]gf.Elem[uint8], n)
	for i := 0; i < n; i++ {
		row := make([]gf.Elem[uint8], 2*n)
		for c := range row {
			row[c] = gf.New(field, 0)
		}
		copy(row, m[i])
		row[n+i] = gf.New(field, 1)
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
			return nil, errors.New("matrix is singular")
		}
		aug[col], aug[pivot] = aug[pivot], aug[col]

		invPivot := aug[col][col].Inverse()
		for c := 0; c < 2*n; c++ {
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
			for c := 0; c < 2*n; c++ {
				aug[r][c] = aug[r][c].Sub(factor.Mul(aug[col][c]))
			}
		}
	}

	inv := make([][]gf.Elem[uint8], n)
	for i := 0; i < n; i++ {
		inv[i] = aug[i][n:]
	}
	return inv, nil
}

func matVec(m [][]gf.Elem[uint8], v []gf.Elem[uint8]) []gf.Elem[uint8] {
	n := len(m)
	result := make([]gf.Elem[uint8], n)
	for i := 0; i < n; i++ {
		acc := v[0].Sub(v[0]) // zero element, same field
		for j := 0; j < n; j++ {
			acc = acc.Add(m[i][j].Mul(v[j]))
		}
		result[i] = acc
	}
	return result
}
