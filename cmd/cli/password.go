package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/akeren/teamup-site/internal/auth"
	"github.com/spf13/cobra"
)

// newHashPasswordCommand prints a bcrypt hash suitable for ADMIN_PASSWORD_HASH.
// The password is read from the first line of stdin so it stays out of shell
// history.
func newHashPasswordCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password",
		Short: "Read a password from stdin and print its bcrypt hash",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && line == "" {
				return errors.New("no password on stdin")
			}

			hash, err := auth.HashPassword(strings.TrimRight(line, "\r\n"))
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), hash)
			return err
		},
	}
}
