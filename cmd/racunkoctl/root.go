package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/jhoicas/racunko-api/internal/application/billing"
	"github.com/jhoicas/racunko-api/internal/domain/document"
	"github.com/jhoicas/racunko-api/internal/domain/entity"
	"github.com/jhoicas/racunko-api/internal/infrastructure/eslog"
	infrapdf "github.com/jhoicas/racunko-api/internal/infrastructure/pdf"
	"github.com/jhoicas/racunko-api/internal/infrastructure/postgres"
	"github.com/jhoicas/racunko-api/internal/infrastructure/xlsx"
	"github.com/jhoicas/racunko-api/pkg/config"
	"github.com/jhoicas/racunko-api/pkg/logger"
)

var version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "racunkoctl",
	Short:         "Herramientas de operación de Računko",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute ejecuta el comando raíz.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.New(logger.Config{Env: "development"}).WithComponent("cmd").
			Error().Err(err).Msg("falló la ejecución del comando")
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(migrateCmd, workerCmd, pdfCmd, hashPasswordCmd)
}

// env configuración, logger y pool compartidos por los subcomandos que tocan la base.
type env struct {
	cfg  *config.Config
	log  *logger.Logger
	pool *pgxpool.Pool
}

func openEnv(ctx context.Context) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, log: log, pool: pool}, nil
}

func (e *env) close() { e.pool.Close() }

func (e *env) issuer() entity.Issuer {
	c := e.cfg.Company
	return entity.Issuer{Name: c.Name, Address: c.Address, TaxID: c.TaxID, IBAN: c.IBAN, Email: c.Email}
}

// documentUseCases un caso de uso por tipo, indexado por Kind.Code. Sin cola de correo.
func (e *env) documentUseCases() map[string]*billing.DocumentUseCase {
	customers := postgres.NewCustomerRepository(e.pool)
	tx := postgres.NewTxRunner(e.pool)
	pdf := infrapdf.NewMarotoPDFGenerator()
	sheets := xlsx.NewExporter()
	builder := eslog.NewBuilder()

	out := make(map[string]*billing.DocumentUseCase)
	for _, kind := range document.Kinds() {
		out[kind.Code] = billing.NewDocumentUseCase(kind, billing.DocumentDeps{
			Repo:      postgres.NewDocumentRepository(e.pool, kind),
			Customers: customers,
			Tx:        tx,
			PDF:       pdf,
			Sheets:    sheets,
			ESLOG:     builder,
			Issuer:    e.issuer(),
			Log:       e.log,
		})
	}
	return out
}
