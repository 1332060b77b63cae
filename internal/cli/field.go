package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Davincible/gf256/internal/validation"
	"github.com/Davincible/gf256/pkg/gf"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// NewFieldCommand builds the "field" command group: inspecting a
// declared GF(2^n) field and listing the strategies available to it.
func NewFieldCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "field",
		Short: "Inspect and validate GF(2^n) field declarations",
	}

	cmd.AddCommand(newFieldInspectCommand(), newFieldStrategiesCommand())
	return cmd
}

func parseFieldFlags(widthStr, polyStr, genStr string) (int, uint64, uint64, error) {
	width, err := strconv.Atoi(widthStr)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid width %q: %w", widthStr, err)
	}
	if err := validation.ValidateWidth(width); err != nil {
		return 0, 0, 0, err
	}

	poly, err := strconv.ParseUint(strings.TrimPrefix(polyStr, "0x"), 16, 64)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid polynomial %q: %w", polyStr, err)
	}
	if err := validation.ValidatePolynomial(poly, width); err != nil {
		return 0, 0, 0, err
	}

	gen, err := strconv.ParseUint(strings.TrimPrefix(genStr, "0x"), 16, 64)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid generator %q: %w", genStr, err)
	}

	return width, poly, gen, nil
}

func newFieldInspectCommand() *cobra.Command {
	var widthStr, polyStr, genStr string

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Validate a field declaration and report its resolved strategy",
		Example: `  gf256 field inspect --width 8 --polynomial 0x1d --generator 0x02
  gf256 field inspect --width 16 --polynomial 0x002d --generator 0x0003`,
		RunE: func(cmd *cobra.Command, args []string) error {
			width, poly, gen, err := parseFieldFlags(widthStr, polyStr, genStr)
			if err != nil {
				return err
			}

			green := color.New(color.FgGreen, color.Bold)
			cyan := color.New(color.FgCyan)

			return withFieldOfWidth(width, poly, gen, func(width int, strategy gf.Strategy, nonzero uint64) {
				green.Println("Field is valid.")
				cyan.Printf("  Width:      %d\n", width)
				cyan.Printf("  Nonzero:    %d\n", nonzero)
				cyan.Printf("  Strategy:   %s\n", strategy)
			})
		},
	}

	cmd.Flags().StringVarP(&widthStr, "width", "w", "8", "Field width in bits (4, 8, 16, 32, 64)")
	cmd.Flags().StringVarP(&polyStr, "polynomial", "p", "0x1d", "Irreducible polynomial, low n bits (hex)")
	cmd.Flags().StringVarP(&genStr, "generator", "g", "0x02", "Primitive element alpha (hex)")

	return cmd
}

func newFieldStrategiesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "strategies",
		Short: "List the multiplication strategies this build can select",
		RunE: func(cmd *cobra.Command, args []string) error {
			cyan := color.New(color.FgCyan, color.Bold)
			cyan.Println("Available strategies:")
			for _, s := range []gf.Strategy{gf.Naive, gf.Table, gf.RemTable, gf.SmallRemTable, gf.Barret} {
				fmt.Printf("  %s\n", s)
			}
			fmt.Printf("\nHardware carry-less multiply detected: %v\n", gf.HasXMUL)
			return nil
		},
	}
	return cmd
}

// withFieldOfWidth constructs a field of the requested width over the
// smallest native word that can host it, then hands the result to fn.
func withFieldOfWidth(width int, poly, gen uint64, fn func(width int, strategy gf.Strategy, nonzero uint64)) error {
	switch {
	case width <= 4:
		f, err := gf.NewField[uint8](gf.Config{Polynomial: poly, Generator: gen, Width: width})
		if err != nil {
			return err
		}
		fn(f.Width(), f.Strategy(), f.Nonzero())
	case width == 8:
		f, err := gf.NewField[uint8](gf.Config{Polynomial: poly, Generator: gen})
		if err != nil {
			return err
		}
		fn(f.Width(), f.Strategy(), f.Nonzero())
	case width == 16:
		f, err := gf.NewField[uint16](gf.Config{Polynomial: poly, Generator: gen})
		if err != nil {
			return err
		}
		fn(f.Width(), f.Strategy(), f.Nonzero())
	case width == 32:
		f, err := gf.NewField[uint32](gf.Config{Polynomial: poly, Generator: gen})
		if err != nil {
			return err
		}
		fn(f.Width(), f.Strategy(), f.Nonzero())
	case width == 64:
		f, err := gf.NewField[uint64](gf.Config{Polynomial: poly, Generator: gen})
		if err != nil {
			return err
		}
		fn(f.Width(), f.Strategy(), f.Nonzero())
	default:
		return fmt.Errorf("unsupported width %d", width)
	}
	return nil
}
