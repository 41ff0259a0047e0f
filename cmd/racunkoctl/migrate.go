package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/racunko-api/internal/infrastructure/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Aplica las migraciones SQL pendientes",
	Example: `  racunkoctl migrate
  racunkoctl migrate --list`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if list, _ := cmd.Flags().GetBool("list"); list {
			names, err := postgres.MigrationNames()
			if err != nil {
				return err
			}
			for _, n := range names {
				fmt.Fprintln(cmd.OutOrStdout(), n)
			}
			return nil
		}

		e, err := openEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer e.close()

		applied, err := postgres.Migrate(cmd.Context(), e.pool)
		if err != nil {
			return err
		}
		for _, n := range applied {
			e.log.Info().Str("migration", n).Msg("migración aplicada")
		}
		e.log.Info().Int("applied", len(applied)).Msg("migraciones al día")
		return nil
	},
}

func init() {
	migrateCmd.Flags().Bool("list", false, "solo listar las migraciones embebidas")
}
