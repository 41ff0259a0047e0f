package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jhoicas/racunko-api/internal/domain/document"
)

var pdfCmd = &cobra.Command{
	Use:   "pdf [id]",
	Short: "Genera el PDF de un documento en disco",
	Example: `  racunkoctl pdf --kind invoice 6f1c1a52-5b7e-4f1e-9d7a-2b1f0c3d4e5f
  racunkoctl pdf --kind credit_note -o ./out 6f1c1a52-5b7e-4f1e-9d7a-2b1f0c3d4e5f`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		code, _ := cmd.Flags().GetString("kind")
		if _, ok := document.KindByCode(code); !ok {
			return fmt.Errorf("tipo desconocido %q (invoice, quote, offer, credit_note)", code)
		}
		dir, _ := cmd.Flags().GetString("output")

		e, err := openEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer e.close()

		b, name, err := e.documentUseCases()[code].PDF(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, b, 0o644); err != nil {
			return fmt.Errorf("escribir %s: %w", path, err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	pdfCmd.Flags().StringP("kind", "k", "invoice", "tipo de documento")
	pdfCmd.Flags().StringP("output", "o", ".", "directorio de salida")
}
