package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var hashPasswordCmd = &cobra.Command{
	Use:     "hash-password [password]",
	Short:   "Imprime el hash bcrypt para AUTH_PASSWORD_HASH",
	Example: `  racunkoctl hash-password 'geslo123'`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if args[0] == "" {
			return errors.New("la contraseña no puede estar vacía")
		}
		cost, _ := cmd.Flags().GetInt("cost")
		h, err := bcrypt.GenerateFromPassword([]byte(args[0]), cost)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(h))
		return nil
	},
}

func init() {
	hashPasswordCmd.Flags().Int("cost", bcrypt.DefaultCost, "coste bcrypt")
}
