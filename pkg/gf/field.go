package gf

import "fmt"

// Config declares a GF(2^n) field per §6: the irreducible polynomial,
// generator, strategy hint, and constant-time/hardware overrides.
// Polynomial and Generator are given as plain integers; the implicit
// top bit of the polynomial (degree exactly n) is never set in the
// literal -- it is supplied by T's width, matching the "is_pw256p2"
// fields the source macro emits by default.
type Config struct {
	// Polynomial is the low n bits of the field's irreducible
	// polynomial g = x^n + Polynomial(x).
	Polynomial uint64

	// Generator is a candidate primitive element alpha.
	Generator uint64

	// Mode pins a strategy; Auto lets NewField choose per §4.3.
	Mode Strategy

	// ConstantTime forces the Barret strategy: under Auto it selects
	// Barret, and NewField reports ErrBadConfig when Mode pins any other
	// strategy or a narrow Width leaves Barret unavailable.
	ConstantTime bool

	// NoTables rules out the log/antilog table under Auto, per rule 2
	// of §4.3: Barret when hardware xmul is available, else the byte
	// remainder table for width <= 16, else naive. A pinned Mode is not
	// checked against it.
	NoTables bool

	// FullTables budgets the full log/antilog table when width <= 16.
	FullTables bool

	// SmallTables prefers the 16-entry nibble remainder table over the
	// 256-entry byte remainder table.
	SmallTables bool

	// UseXMUL, when explicitly set, overrides hardware detection for
	// strategy selection: false makes NewField choose as if no hardware
	// carry-less multiply were present. The multiplies of the RemTable,
	// SmallRemTable and Barret strategies still use the hardware
	// instruction whenever HasXMUL is true.
	UseXMUL *bool

	// Width declares the field's degree n when it is narrower than T's
	// native bit length -- e.g. GF(2^4) realized over a uint8, one of
	// §8's concrete test scenarios. Zero defaults to bitlen(T), the
	// common case where the field occupies the whole word. A narrower
	// Width disallows the RemTable, SmallRemTable and Barret strategies
	// (they assume the word's native width is the field's degree);
	// NewField reports ErrBadConfig if Mode pins one of them anyway.
	Width int
}

func (c Config) useXMUL() bool {
	if c.UseXMUL != nil {
		return *c.UseXMUL && HasXMUL
	}
	return HasXMUL
}

// Field is the immutable set of constants and derived tables backing a
// declared GF(2^n) field, per §3. It is built once by NewField and is
// safe for concurrent reads for the remainder of the process.
type Field[T word] struct {
	width     int
	g         T // low n bits of the irreducible polynomial
	mu        T // low n bits of the Barret constant
	generator T
	nonzero   uint64 // 2^n - 1

	strategy Strategy
	hasXMUL  bool

	// logTable[x] = L[x] for x in [1, nonzero]; logTable[0] is the
	// Nonzero sentinel, log of zero being undefined.
	logTable []uint64
	// expTable[i] = E[i] = alpha^i for i in [0, nonzero).
	expTable []T

	// remTable[b] = (b << n) mod g_full for b in [0, 256).
	remTable []T
	// nibbleTable[b] = (b << n) mod g_full for b in [0, 16).
	nibbleTable []T

	mul func(f *Field[T], a, b T) T
}

// Width returns n, the field's bit width.
func (f *Field[T]) Width() int { return f.width }

// Strategy reports which × adapter this field resolved to.
func (f *Field[T]) Strategy() Strategy { return f.strategy }

// Nonzero returns 2^n - 1, the order of the multiplicative group.
func (f *Field[T]) Nonzero() uint64 { return f.nonzero }

// Polynomial returns g's low n bits.
func (f *Field[T]) Polynomial() T { return f.g }

// Generator returns alpha as a field element.
func (f *Field[T]) Generator() Elem[T] { return Elem[T]{field: f, v: f.generator} }

// NewField validates cfg and builds a Field per §4.5. Validation
// failures wrap ErrInvalidPolynomial or ErrInvalidGenerator; an
// unsupported width wraps ErrUnsupportedWidth.
func NewField[T word](cfg Config) (*Field[T], error) {
	native := bitlen[T]()
	n := cfg.Width
	if n == 0 {
		n = native
	}
	if n < 1 || n > native || (n != native && 2*n-2 >= native) {
		return nil, fmt.Errorf("%w: width %d does not fit a %d-bit word", ErrUnsupportedWidth, n, native)
	}
	factors, ok := primeFactors[n]
	if !ok {
		return nil, fmt.Errorf("%w: width %d", ErrUnsupportedWidth, n)
	}

	if cfg.Polynomial>>uint(n) != 0 {
		return nil, fmt.Errorf("%w: polynomial exceeds width %d", ErrInvalidPolynomial, n)
	}
	g := T(cfg.Polynomial)

	var nonzero uint64
	if n == 64 {
		nonzero = ^uint64(0)
	} else {
		nonzero = (uint64(1) << uint(n)) - 1
	}

	if !checkIrreducible(g, nonzero, factors, n) {
		return nil, fmt.Errorf("%w: polynomial 0x%x is not irreducible of degree %d", ErrInvalidPolynomial, cfg.Polynomial, n)
	}

	if cfg.Generator == 0 || cfg.Generator > nonzero {
		return nil, fmt.Errorf("%w: generator out of range", ErrInvalidGenerator)
	}
	alpha := T(cfg.Generator)
	if !checkPrimitive(alpha, g, nonzero, factors, n) {
		return nil, fmt.Errorf("%w: 0x%x is not primitive", ErrInvalidGenerator, cfg.Generator)
	}

	f := &Field[T]{
		width:     n,
		g:         g,
		generator: alpha,
		nonzero:   nonzero,
		hasXMUL:   cfg.useXMUL(),
	}
	f.mu = computeBarretMu(g, n)
	strategy := selectStrategy(cfg, n, f.hasXMUL)
	if n != native {
		switch strategy {
		case RemTable, SmallRemTable, Barret:
			if cfg.Mode != Auto {
				return nil, fmt.Errorf("%w: strategy %s requires field width %d to match the %d-bit word it is hosted in", ErrBadConfig, strategy, n, native)
			}
			strategy = Table
		}
	}
	if strategy == Table && n > 16 {
		return nil, fmt.Errorf("%w: the table strategy needs width <= 16, got %d", ErrBadConfig, n)
	}
	if cfg.ConstantTime && strategy != Barret {
		return nil, fmt.Errorf("%w: constant_time needs the barret strategy, got %s", ErrBadConfig, strategy)
	}
	f.strategy = strategy

	switch f.strategy {
	case Table:
		f.buildLogTables()
		f.mul = (*Field[T]).mulTable
	case RemTable:
		f.remTable = buildRemTableConsts(g, 256, n)
		f.mul = (*Field[T]).mulRemTable
	case SmallRemTable:
		f.nibbleTable = buildRemTableConsts(g, 16, n)
		f.mul = (*Field[T]).mulNibbleTable
	case Barret:
		f.mul = (*Field[T]).mulBarret
	case Naive:
		f.mul = (*Field[T]).mulNaive
	default:
		return nil, fmt.Errorf("%w: unresolved strategy", ErrBadConfig)
	}

	return f, nil
}

// reduceNaive reduces the 2n-bit polynomial (hi,lo) modulo g_full by
// repeated shift-and-xor, per §4.2. At native width (width ==
// bitlen(T)) this goes through the general pair division; at a
// narrower declared width (GF(2^4) hosted in a uint8, say) the product
// of two width-bit operands never sets a bit past position 2*width-2,
// which NewField has already checked is below bitlen(T), so the whole
// value lives in lo and a single-width division against the
// width-degree g_full suffices.
func reduceNaive[T word](hi, lo, g T, width int) T {
	if width == bitlen[T]() {
		_, _, _, rlo := pairDivMod(hi, lo, 1, g)
		return rlo
	}
	gFull := g | (T(1) << uint(width))
	_, r := divMod(lo, gFull)
	return r
}

// ReduceNaive is reduceNaive exported for collaborator packages (e.g.
// pkg/crc) that need the same polynomial-remainder construction
// described in §4.2/§4.5 without going through NewField's
// irreducibility/primitivity validation -- a CRC polynomial is, in
// general, neither irreducible nor primitive.
func ReduceNaive[T Word](hi, lo, g T, width int) T {
	return reduceNaive(hi, lo, g, width)
}

// BuildRemTable is buildRemTableConsts exported for the same reason as
// ReduceNaive: table[i] = (i << width) mod (x^width + g), for i in
// [0, size).
func BuildRemTable[T Word](g T, size int, width int) []T {
	return buildRemTableConsts(g, size, width)
}

func (f *Field[T]) mulNaive(a, b T) T {
	hi, lo := xmulNaive(a, b)
	return reduceNaive(hi, lo, f.g, f.width)
}

// mulBarret realizes §4.3's Barret strategy: z = xmul(a,b); t =
// xmul(z>>n, mu)>>n; r = z xor xmul(t, g_full), finished by a bounded
// fold that clears any bits Barret's single pass left above n (the
// "one conditional xor" the design calls for, generalized to a loop
// that is always correct and a no-op beyond the first iteration in
// the common case).
func (f *Field[T]) mulBarret(a, b T) T {
	hi, lo := xmul(a, b)
	w := hi
	h2, _ := xmul(w, f.mu)
	t := w ^ h2
	h3, l3 := xmul(t, f.g)
	rhi := hi ^ t ^ h3
	rlo := lo ^ l3
	return reduceNaive(rhi, rlo, f.g, f.width)
}

func (f *Field[T]) buildLogTables() {
	f.logTable = make([]uint64, f.nonzero+1)
	f.expTable = make([]T, f.nonzero)
	x := T(1)
	for i := uint64(0); i < f.nonzero; i++ {
		f.expTable[i] = x
		f.logTable[x] = i
		x = f.mulNaive(x, f.generator)
	}
	f.logTable[0] = f.nonzero
}

func (f *Field[T]) mulTable(a, b T) T {
	if a == 0 || b == 0 {
		return 0
	}
	sum := f.logTable[a] + f.logTable[b]
	if sum >= f.nonzero {
		sum -= f.nonzero
	}
	return f.expTable[sum]
}

// buildRemTableConsts builds a remainder table of the requested size
// (256 for the byte table, 16 for the nibble table): table[i] = (i <<
// n) mod g_full, per §4.5 step 4. Only built at native width -- see
// NewField's strategy override for narrower declared widths.
func buildRemTableConsts[T word](g T, size int, width int) []T {
	table := make([]T, size)
	for i := 0; i < size; i++ {
		table[i] = reduceNaive(T(i), 0, g, width)
	}
	return table
}

// remTableFold implements the byte/nibble remainder-table strategies
// of §4.3 uniformly: chunk is 8 for the byte table, 4 for the nibble
// table. Folding chunk-sized slices of hi through table, most
// significant first, leaves a value that only needs xor-ing with lo.
func remTableFold[T word](hi, lo T, table []T, width, chunk int) T {
	mask := T((1 << uint(chunk)) - 1)
	var x T
	for shift := width - chunk; shift >= 0; shift -= chunk {
		piece := (hi >> uint(shift)) & mask
		idx := ((x >> uint(width-chunk)) & mask) ^ piece
		x = (x << uint(chunk)) ^ table[idx]
	}
	return x ^ lo
}

func (f *Field[T]) mulRemTable(a, b T) T {
	hi, lo := xmul(a, b)
	return remTableFold(hi, lo, f.remTable, f.width, 8)
}

func (f *Field[T]) mulNibbleTable(a, b T) T {
	hi, lo := xmul(a, b)
	return remTableFold(hi, lo, f.nibbleTable, f.width, 4)
}
