package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

func newHashPINCmd() *cobra.Command {
	var cost int

	cmd := &cobra.Command{
		Use:   "hash-pin PIN",
		Short: "Print the bcrypt hash of a PIN for seeding owners and staff",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pin := strings.TrimSpace(args[0])
			if pin == "" {
				return errors.New("hash-pin: empty pin")
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(pin), cost)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(hash))
			return nil
		},
	}

	cmd.Flags().IntVar(&cost, "cost", bcrypt.DefaultCost, "bcrypt cost")

	return cmd
}
