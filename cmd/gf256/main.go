package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/Davincible/gf256/internal/cli"
	"github.com/spf13/cobra"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	slog.SetDefault(logger)

	rootCmd := &cobra.Command{
		Use:   "gf256",
		Short: "GF(2^n) finite-field arithmetic, and what's built on it",
		Long: `gf256 implements binary-extension finite field arithmetic GF(2^n) for
small machine words, plus the classic constructions built on top of it:
CRC checksums, Galois-style LFSRs, RAID-style parity over GF(256),
Reed-Solomon block coding, and Shamir's Secret Sharing.

Field declarations (width, polynomial, generator) are validated up
front; 'field inspect' reports which multiplication strategy a given
declaration resolves to, and 'bench' times every applicable strategy
on the running machine.`,
		Version: fmt.Sprintf("%s (built %s, commit %s)", Version, BuildTime, GitCommit),
	}

	rootCmd.AddCommand(
		cli.NewFieldCommand(),
		cli.NewBenchCommand(),
		cli.NewCRCCommand(),
		cli.NewLFSRCommand(),
		cli.NewRAIDCommand(),
		cli.NewRSCommand(),
		cli.NewShamirCommand(),
	)

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	if err := rootCmd.Execute(); err != nil {
		slog.Error("command execution failed", "error", err)
		os.Exit(1)
	}
}
