package cli

import (
	"bufio"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/Davincible/gf256/internal/validation"
	"github.com/Davincible/gf256/pkg/secure"
	"github.com/Davincible/gf256/pkg/shamir"
	"github.com/Davincible/gf256/pkg/storage"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// NewShamirCommand builds the "shamir" command group: splitting a
// secret into shares and combining shares back into the secret.
func NewShamirCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shamir",
		Short: "Split and combine secrets with Shamir's Secret Sharing over GF(256)",
	}
	cmd.AddCommand(newShamirSplitCommand(), newShamirCombineCommand())
	return cmd
}

func newShamirSplitCommand() *cobra.Command {
	var (
		parts      int
		threshold  int
		useStdin   bool
		outputFile string
	)

	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split a secret into multiple shares",
		Long: `Split a secret into parts shares, any threshold of which reconstruct
it via Lagrange interpolation over GF(256).`,
		Example: `  gf256 shamir split --parts 5 --threshold 3
  echo -n "secret data" | gf256 shamir split --parts 3 --threshold 2 --stdin
  gf256 shamir split --parts 5 --threshold 3 --output shares.enc`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validation.ValidateSplitParams(parts, threshold); err != nil {
				return err
			}

			var secret []byte
			var err error
			if useStdin {
				secret, err = readSecretFromStdin()
			} else {
				secret, err = readSecretFromTerminal()
			}
			if err != nil {
				return fmt.Errorf("failed to read secret: %w", err)
			}
			defer secure.Zero(secret)

			shares, err := shamir.Split(secret, parts, threshold, rand.Reader)
			if err != nil {
				return fmt.Errorf("failed to split secret: %w", err)
			}

			if outputFile != "" {
				password, err := readPassphraseTwice("Enter a passphrase to encrypt the share file: ")
				if err != nil {
					return err
				}
				defer secure.Zero(password)

				store := storage.NewShareStorage(outputFile)
				if err := store.SaveShares(shares, threshold, parts, password); err != nil {
					return fmt.Errorf("failed to save shares: %w", err)
				}
				color.New(color.FgGreen, color.Bold).Printf("Shares saved to %s\n", outputFile)
				return nil
			}

			printShares(shares, threshold, parts)
			return nil
		},
	}

	cmd.Flags().IntVarP(&parts, "parts", "n", 5, "Total number of shares to create")
	cmd.Flags().IntVarP(&threshold, "threshold", "t", 3, "Minimum shares needed to reconstruct")
	cmd.Flags().BoolVar(&useStdin, "stdin", false, "Read secret from stdin instead of the terminal")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Encrypt and write shares to this file instead of printing them")

	return cmd
}

func newShamirCombineCommand() *cobra.Command {
	var (
		inputFile string
		hexShares []string
	)

	cmd := &cobra.Command{
		Use:   "combine",
		Short: "Combine shares to recover a secret",
		Example: `  gf256 shamir combine --share 01:a1b2... --share 02:c3d4... --share 03:e5f6...
  gf256 shamir combine --input shares.enc`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var shares []shamir.Share
			var err error

			if inputFile != "" {
				password, err := readPassphraseOnce("Enter passphrase to decrypt the share file: ")
				if err != nil {
					return err
				}
				defer secure.Zero(password)

				store := storage.NewShareStorage(inputFile)
				stored, err := store.LoadShares(password)
				if err != nil {
					return fmt.Errorf("failed to load shares: %w", err)
				}
				shares = stored.Shares
			} else {
				shares, err = parseHexShares(hexShares)
				if err != nil {
					return err
				}
			}

			if len(shares) == 0 {
				return fmt.Errorf("no shares provided")
			}

			secretBytes, err := shamir.Combine(shares)
			if err != nil {
				return fmt.Errorf("failed to combine shares: %w", err)
			}
			defer secure.Zero(secretBytes)

			green := color.New(color.FgGreen, color.Bold)
			cyan := color.New(color.FgCyan, color.Bold)
			green.Println("Secret recovered.")
			cyan.Println("Hex:")
			fmt.Println(hex.EncodeToString(secretBytes))
			cyan.Println("Text:")
			fmt.Println(string(secretBytes))
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputFile, "input", "i", "", "Encrypted share file produced by split --output")
	cmd.Flags().StringArrayVar(&hexShares, "share", nil, `Share in "index:hexdata" form (repeatable)`)

	return cmd
}

func printShares(shares []shamir.Share, threshold, total int) {
	yellow := color.New(color.FgYellow, color.Bold)
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed, color.Bold)
	cyan := color.New(color.FgCyan, color.Bold)

	fmt.Println()
	yellow.Println("=== SHAMIR SECRET SHARES ===")
	fmt.Println()
	green.Printf("Created %d shares with threshold %d\n", total, threshold)
	fmt.Printf("Any %d shares can reconstruct the original secret\n\n", threshold)
	red.Println("Store each share in a different location; never store shares together.")
	fmt.Println()

	for _, s := range shares {
		cyan.Printf("Share %02x: ", s.Index)
		fmt.Printf("%02x:%s\n", s.Index, hex.EncodeToString(s.Data))
	}
	fmt.Println()
	yellow.Println("=== END OF SHARES ===")
}

func parseHexShares(raw []string) ([]shamir.Share, error) {
	shares := make([]shamir.Share, 0, len(raw))
	for _, entry := range raw {
		parts := strings.SplitN(entry, ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("malformed share %q, expected index:hexdata", entry)
		}
		idx, err := hex.DecodeString(parts[0])
		if err != nil || len(idx) != 1 {
			return nil, fmt.Errorf("malformed share index in %q", entry)
		}
		data, err := hex.DecodeString(parts[1])
		if err != nil {
			return nil, fmt.Errorf("malformed share data in %q: %w", entry, err)
		}
		shares = append(shares, shamir.Share{Index: idx[0], Data: data})
	}
	return shares, nil
}

func readSecretFromStdin() ([]byte, error) {
	scanner := bufio.NewScanner(os.Stdin)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return []byte(strings.Join(lines, "\n")), nil
}

func readSecretFromTerminal() ([]byte, error) {
	fmt.Print("Enter your secret: ")
	secret, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return nil, err
	}
	fmt.Println()
	if len(secret) == 0 {
		return nil, fmt.Errorf("secret cannot be empty")
	}
	return secret, nil
}

func readPassphraseOnce(prompt string) ([]byte, error) {
	fmt.Print(prompt)
	pass, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return nil, err
	}
	return pass, nil
}

func readPassphraseTwice(prompt string) ([]byte, error) {
	pass, err := readPassphraseOnce(prompt)
	if err != nil {
		return nil, err
	}
	confirm, err := readPassphraseOnce("Confirm passphrase: ")
	if err != nil {
		secure.Zero(pass)
		return nil, err
	}
	if !secure.ConstantTimeCompare(pass, confirm) {
		secure.Zero(pass)
		secure.Zero(confirm)
		return nil, fmt.Errorf("passphrases do not match")
	}
	secure.Zero(confirm)
	return pass, nil
}
