package main

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/spf13/cobra"

	"github.com/jhoicas/racunko-api/internal/infrastructure/mail"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Procesa la cola de correos (PDF adjunto vía SMTP)",
	Long: `Consume las tareas encoladas por POST /api/<tipo>/:id/send, genera el PDF
del documento y lo envía por SMTP.

Variables requeridas: REDIS_ADDR, SMTP_HOST, SMTP_FROM (y SMTP_USER/SMTP_PASSWORD si aplica).`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		e, err := openEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer e.close()

		if !e.cfg.Redis.Enabled() {
			return errors.New("worker: REDIS_ADDR es obligatorio")
		}
		sender, err := mail.NewSMTPSender(mail.SMTPConfig{
			Host:     e.cfg.SMTP.Host,
			Port:     e.cfg.SMTP.Port,
			User:     e.cfg.SMTP.User,
			Password: e.cfg.SMTP.Password,
			From:     e.cfg.SMTP.From,
		})
		if err != nil {
			return err
		}

		sources := make(map[string]mail.PDFSource)
		for code, uc := range e.documentUseCases() {
			sources[code] = uc
		}
		concurrency, _ := cmd.Flags().GetInt("concurrency")
		w := mail.NewWorker(
			asynq.RedisClientOpt{Addr: e.cfg.Redis.Addr, Password: e.cfg.Redis.Password, DB: e.cfg.Redis.DB},
			mail.NewDeliveryHandler(sources, sender, e.log),
			concurrency,
		)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		e.log.Info().Str("redis", e.cfg.Redis.Addr).Int("concurrency", concurrency).Msg("worker de correos iniciado")
		return w.Run(ctx)
	},
}

func init() {
	workerCmd.Flags().Int("concurrency", 5, "tareas simultáneas")
}
