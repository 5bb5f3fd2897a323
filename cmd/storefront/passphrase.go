package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/shreejewels/storefront/internal/auth"
)

var hashPassphraseCmd = &cobra.Command{
	Use:   "hash-passphrase [passphrase]",
	Short: "Print a bcrypt hash for admin.passphrase_hash",
	Long: `hash-passphrase prints the bcrypt hash of the given passphrase. Without an
argument the passphrase is read from the first line of stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHashPassphrase,
}

func runHashPassphrase(cmd *cobra.Command, args []string) error {
	var passphrase string
	if len(args) == 1 {
		passphrase = args[0]
	} else {
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && line == "" {
			return errors.Wrap(err, "read passphrase")
		}
		passphrase = strings.TrimRight(line, "\r\n")
	}
	if passphrase == "" {
		return errors.New("passphrase is empty")
	}
	hash, err := auth.HashPassphrase(passphrase)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), hash)
	return nil
}
