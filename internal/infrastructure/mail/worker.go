package mail

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"

	appbilling "github.com/jhoicas/racunko-api/internal/application/billing"
	"github.com/jhoicas/racunko-api/internal/domain"
	"github.com/jhoicas/racunko-api/pkg/logger"
)

// PDFSource genera el PDF de un documento por id (lo cumple billing.DocumentUseCase).
type PDFSource interface {
	PDF(ctx context.Context, id string) ([]byte, string, error)
}

// DeliveryHandler procesa TaskTypeDeliverDocument: genera el PDF y lo envía.
type DeliveryHandler struct {
	sources map[string]PDFSource // por Kind.Code
	sender  Sender
	log     *logger.Logger
}

// NewDeliveryHandler construye el handler.
func NewDeliveryHandler(sources map[string]PDFSource, sender Sender, log *logger.Logger) *DeliveryHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &DeliveryHandler{sources: sources, sender: sender, log: log.WithComponent("mail")}
}

// ProcessTask implementa asynq.Handler. Errores permanentes se marcan con SkipRetry.
func (h *DeliveryHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var req appbilling.DeliveryRequest
	if err := json.Unmarshal(t.Payload(), &req); err != nil {
		return fmt.Errorf("payload inválido: %v: %w", err, asynq.SkipRetry)
	}
	src, ok := h.sources[req.KindCode]
	if !ok {
		return fmt.Errorf("tipo %q desconocido: %w", req.KindCode, asynq.SkipRetry)
	}

	pdf, filename, err := src.PDF(ctx, req.DocumentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.log.Warn().Str("id", req.DocumentID).Msg("documento eliminado antes del envío")
			return fmt.Errorf("documento %s: %v: %w", req.DocumentID, err, asynq.SkipRetry)
		}
		return err
	}

	err = h.sender.Send(ctx, Message{
		To:             req.To,
		Subject:        req.Subject,
		Body:           req.Body,
		AttachmentName: filename,
		Attachment:     pdf,
	})
	if err != nil {
		h.log.Error().Err(err).Str("id", req.DocumentID).Str("to", req.To).Msg("envío fallido")
		return err
	}
	h.log.Info().Str("id", req.DocumentID).Str("to", req.To).Str("kind", req.KindCode).Msg("documento enviado")
	return nil
}

// Worker servidor asynq con el handler de envíos.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
}

// NewWorker registra el handler en un servidor asynq.
func NewWorker(opt asynq.RedisClientOpt, handler *DeliveryHandler, concurrency int) *Worker {
	if concurrency <= 0 {
		concurrency = 5
	}
	srv := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues:      map[string]int{QueueDefault: 1},
	})
	mux := asynq.NewServeMux()
	mux.Handle(TaskTypeDeliverDocument, handler)
	return &Worker{server: srv, mux: mux}
}

// Run procesa tareas hasta que ctx se cancele.
func (w *Worker) Run(ctx context.Context) error {
	if err := w.server.Start(w.mux); err != nil {
		return fmt.Errorf("worker: start: %w", err)
	}
	<-ctx.Done()
	w.server.Shutdown()
	return nil
}
