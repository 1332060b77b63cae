// Package crc implements configurable width-8/16/32/64 CRCs built on
// the same byte remainder-table construction as pkg/gf's rem_table
// strategy: the checksum register is treated as a GF(2^width) element
// and each input byte is folded in through a precomputed table of
// (b << width) mod polynomial, computed by pkg/gf's naive polynomial
// remainder rather than a hand-rolled reduction loop -- a CRC
// polynomial is not generally irreducible, so table construction goes
// around NewField's validated Field rather than through it.
package crc

import (
	"errors"
	"fmt"
	"hash"

	"github.com/Davincible/gf256/pkg/gf"
)

// ErrInvalidWidth is returned by New when Width is not one of the
// supported register sizes.
var ErrInvalidWidth = errors.New("crc: invalid width")

// Params fully describes a CRC algorithm, in the style most CRC
// catalogs (e.g. the "CRC Catalogue") use to name one.
type Params struct {
	Width  int    // register width in bits: 8, 16, 32 or 64
	Poly   uint64 // polynomial, top bit (degree Width) omitted
	Init   uint64 // initial register value
	RefIn  bool   // reflect each input byte before processing
	RefOut bool   // reflect the final register before XorOut
	XorOut uint64 // value xored with the final register
}

// Table is a constructed CRC algorithm: Params plus its derived
// 256-entry remainder table, ready to compute checksums.
type Table struct {
	params Params
	mask   uint64
	table  [256]uint64
}

// New validates params and builds the byte remainder table.
func New(params Params) (*Table, error) {
	switch params.Width {
	case 8, 16, 32, 64:
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidWidth, params.Width)
	}

	t := &Table{params: params}
	if params.Width == 64 {
		t.mask = ^uint64(0)
	} else {
		t.mask = (uint64(1) << uint(params.Width)) - 1
	}

	rem := byteRemainderTable(params.Width, params.Poly)
	for i, v := range rem {
		t.table[i] = v & t.mask
	}
	return t, nil
}

// byteRemainderTable builds table[i] = (i << width) mod (x^width +
// poly) by calling straight into pkg/gf's naive polynomial-remainder
// construction, the same one NewField uses to seed its own rem_table
// strategy. width has already been validated by New.
func byteRemainderTable(width int, poly uint64) []uint64 {
	switch width {
	case 8:
		return widenRemTable(gf.BuildRemTable(uint8(poly), 256, width))
	case 16:
		return widenRemTable(gf.BuildRemTable(uint16(poly), 256, width))
	case 32:
		return widenRemTable(gf.BuildRemTable(uint32(poly), 256, width))
	default:
		return widenRemTable(gf.BuildRemTable(uint64(poly), 256, width))
	}
}

func widenRemTable[T gf.Word](table []T) []uint64 {
	out := make([]uint64, len(table))
	for i, v := range table {
		out[i] = uint64(v)
	}
	return out
}

func reflect(v uint64, bits int) uint64 {
	var r uint64
	for i := 0; i < bits; i++ {
		r <<= 1
		r |= v & 1
		v >>= 1
	}
	return r
}

// Checksum computes the CRC of data according to t's Params.
func (t *Table) Checksum(data []byte) uint64 {
	reg := t.params.Init
	width := t.params.Width

	for _, b := range data {
		in := b
		if t.params.RefIn {
			in = byte(reflect(uint64(b), 8))
		}
		idx := byte(reg>>uint(width-8)) ^ in
		reg = ((reg << 8) ^ t.table[idx]) & t.mask
	}

	if t.params.RefOut {
		reg = reflect(reg, width)
	}
	return (reg ^ t.params.XorOut) & t.mask
}

// Hasher wraps t as a standard library hash.Hash, for use with
// io.Writer-oriented streaming checksums.
func (t *Table) Hasher() hash.Hash {
	return &hasher{table: t}
}

type hasher struct {
	table *Table
	buf   []byte
}

func (h *hasher) Write(p []byte) (int, error) {
	h.buf = append(h.buf, p...)
	return len(p), nil
}

func (h *hasher) Sum(b []byte) []byte {
	sum := h.table.Checksum(h.buf)
	width := h.table.params.Width
	out := make([]byte, width/8)
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = byte(sum)
		sum >>= 8
	}
	return append(b, out...)
}

func (h *hasher) Reset()         { h.buf = h.buf[:0] }
func (h *hasher) Size() int      { return h.table.params.Width / 8 }
func (h *hasher) BlockSize() int { return 1 }

// Predeclared catalog entries, matching common CRC use cases.
var (
	CRC8   = mustNew(Params{Width: 8, Poly: 0x07, Init: 0x00, RefIn: true, RefOut: true, XorOut: 0x00})
	CRC16  = mustNew(Params{Width: 16, Poly: 0x1021, Init: 0xffff, RefIn: true, RefOut: true, XorOut: 0x0000})
	CRC32  = mustNew(Params{Width: 32, Poly: 0x04c11db7, Init: 0xffffffff, RefIn: true, RefOut: true, XorOut: 0xffffffff})
	CRC32C = mustNew(Params{Width: 32, Poly: 0x1edc6f41, Init: 0xffffffff, RefIn: true, RefOut: true, XorOut: 0xffffffff})
	CRC64  = mustNew(Params{Width: 64, Poly: 0x42f0e1eba9ea3693, Init: 0xffffffffffffffff, RefIn: true, RefOut: true, XorOut: 0xffffffffffffffff})
)

func mustNew(p Params) *Table {
	t, err := New(p)
	if err != nil {
		panic(err)
	}
	return t
}
