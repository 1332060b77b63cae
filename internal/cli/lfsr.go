package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Davincible/gf256/pkg/gf"
	"github.com/Davincible/gf256/pkg/lfsr"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// NewLFSRCommand steps a Galois-style LFSR over a declared field and
// prints the resulting sequence.
func NewLFSRCommand() *cobra.Command {
	var (
		widthStr string
		polyStr  string
		genStr   string
		seedStr  string
		steps    int
		reverse  bool
	)

	cmd := &cobra.Command{
		Use:   "lfsr",
		Short: "Step a Galois-style LFSR over a GF(2^n) field",
		Example: `  gf256 lfsr --width 16 --seed 0x0001 --steps 4
  gf256 lfsr --width 16 --seed 0xbdad --steps 4 --reverse`,
		RunE: func(cmd *cobra.Command, args []string) error {
			width, poly, gen, err := parseFieldFlags(widthStr, polyStr, genStr)
			if err != nil {
				return err
			}
			seed, err := strconv.ParseUint(strings.TrimPrefix(seedStr, "0x"), 16, 64)
			if err != nil {
				return fmt.Errorf("invalid seed %q: %w", seedStr, err)
			}

			values, err := runLFSR(width, poly, gen, seed, steps, reverse)
			if err != nil {
				return err
			}

			cyan := color.New(color.FgCyan, color.Bold)
			cyan.Println("LFSR sequence:")
			for _, v := range values {
				fmt.Printf("  0x%x\n", v)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&widthStr, "width", "w", "16", "Field width in bits")
	cmd.Flags().StringVarP(&polyStr, "polynomial", "p", "0x002d", "Irreducible polynomial, low n bits (hex)")
	cmd.Flags().StringVarP(&genStr, "generator", "g", "0x0003", "Primitive element alpha (hex)")
	cmd.Flags().StringVarP(&seedStr, "seed", "s", "0x0001", "Initial register state (hex)")
	cmd.Flags().IntVarP(&steps, "steps", "n", 4, "Number of pulls to print")
	cmd.Flags().BoolVar(&reverse, "reverse", false, "Step the register backwards")

	return cmd
}

func runLFSR(width int, poly, gen, seed uint64, steps int, reverse bool) ([]uint64, error) {
	switch width {
	case 8:
		return stepLFSR[uint8](poly, gen, seed, steps, reverse)
	case 16:
		return stepLFSR[uint16](poly, gen, seed, steps, reverse)
	case 32:
		return stepLFSR[uint32](poly, gen, seed, steps, reverse)
	case 64:
		return stepLFSR[uint64](poly, gen, seed, steps, reverse)
	default:
		return nil, fmt.Errorf("unsupported width %d for lfsr", width)
	}
}

func stepLFSR[T gf.Word](poly, gen, seed uint64, steps int, reverse bool) ([]uint64, error) {
	field, err := gf.NewField[T](gf.Config{Polynomial: poly, Generator: gen})
	if err != nil {
		return nil, err
	}
	reg := lfsr.New(field, T(seed))

	values := make([]uint64, steps)
	for i := 0; i < steps; i++ {
		var v T
		if reverse {
			v = reg.Prev()
		} else {
			v = reg.Next()
		}
		values[i] = uint64(v)
	}
	return values, nil
}
