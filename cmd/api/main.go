package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/hibiken/asynq"

	"github.com/jhoicas/racunko-api/internal/application/auth"
	"github.com/jhoicas/racunko-api/internal/application/billing"
	"github.com/jhoicas/racunko-api/internal/domain/document"
	"github.com/jhoicas/racunko-api/internal/domain/entity"
	"github.com/jhoicas/racunko-api/internal/infrastructure/eslog"
	"github.com/jhoicas/racunko-api/internal/infrastructure/mail"
	infrapdf "github.com/jhoicas/racunko-api/internal/infrastructure/pdf"
	"github.com/jhoicas/racunko-api/internal/infrastructure/postgres"
	"github.com/jhoicas/racunko-api/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/racunko-api/internal/interfaces/http"
	"github.com/jhoicas/racunko-api/pkg/config"
	"github.com/jhoicas/racunko-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	applied, err := postgres.Migrate(ctx, pool)
	if err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
	for _, name := range applied {
		log.Info().Str("migration", name).Msg("migración aplicada")
	}

	authUC, err := auth.NewAuthUseCase(auth.Credentials{
		Username:     cfg.Auth.Username,
		Password:     cfg.Auth.Password,
		PasswordHash: cfg.Auth.PasswordHash,
	}, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("configuración de auth")
	}

	// Cola de correos: solo con Redis configurado. Sin cola /send devuelve únicamente el mailto.
	var mailQueue billing.MailQueue
	if cfg.Redis.Enabled() {
		q := mail.NewAsynqQueue(asynq.RedisClientOpt{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		defer q.Close()
		mailQueue = q
		log.Info().Str("redis", cfg.Redis.Addr).Msg("cola de correos habilitada")
	}

	customerRepo := postgres.NewCustomerRepository(pool)
	txRunner := postgres.NewTxRunner(pool)
	sheets := xlsx.NewExporter()
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	eslogBuilder := eslog.NewBuilder()
	issuer := entity.Issuer{
		Name:    cfg.Company.Name,
		Address: cfg.Company.Address,
		TaxID:   cfg.Company.TaxID,
		IBAN:    cfg.Company.IBAN,
		Email:   cfg.Company.Email,
	}

	customerUC := billing.NewCustomerUseCase(customerRepo, sheets, log)
	var documentUCs []*billing.DocumentUseCase
	for _, kind := range document.Kinds() {
		documentUCs = append(documentUCs, billing.NewDocumentUseCase(kind, billing.DocumentDeps{
			Repo:      postgres.NewDocumentRepository(pool, kind),
			Customers: customerRepo,
			Tx:        txRunner,
			PDF:       pdfGenerator,
			Sheets:    sheets,
			ESLOG:     eslogBuilder,
			Mail:      mailQueue,
			Issuer:    issuer,
			Log:       log,
		}))
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Računko API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		CustomerUC: customerUC,
		Documents:  documentUCs,
		Log:        log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
