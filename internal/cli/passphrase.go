package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/stashlog/internal/security"
)

const generatedPassphraseLength = 20

func hashPassphraseCommand(runner Runner) *cobra.Command {
	var generate bool

	cmd := &cobra.Command{
		Use:         "hash-passphrase [passphrase]",
		Short:       "Print the bcrypt hash for STASHLOG_ACCESS_PASSPHRASE_HASH",
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{annotationSkipConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			var passphrase string
			switch {
			case generate && len(args) > 0:
				return errors.New("--generate cannot be combined with a passphrase argument")
			case generate:
				generated, err := security.GeneratePassphrase(generatedPassphraseLength)
				if err != nil {
					return fmt.Errorf("generate passphrase: %w", err)
				}
				passphrase = generated
				fmt.Fprintf(out, "Passphrase: %s\n", passphrase)
			case len(args) == 1:
				passphrase = args[0]
			default:
				fmt.Fprint(cmd.ErrOrStderr(), "Passphrase: ")
				prompted, err := readPassphrase(runner.Stdin)
				fmt.Fprintln(cmd.ErrOrStderr())
				if err != nil {
					return fmt.Errorf("read passphrase: %w", err)
				}
				passphrase = prompted
			}

			hash, err := security.HashPassphrase(passphrase)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Hash: %s\n", hash)
			return nil
		},
	}
	cmd.Flags().BoolVar(&generate, "generate", false, "Generate a random passphrase")
	return cmd
}

// readPassphrase disables echo on terminals and reads a plain line otherwise.
func readPassphrase(stdin *os.File) (string, error) {
	if secret, err := readNoEcho(stdin); err == nil {
		return secret, nil
	}
	if stdin == nil {
		return "", errors.New("stdin unavailable")
	}

	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
