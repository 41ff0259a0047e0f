// Package mail entrega documentos por correo: cola asynq, worker y envío SMTP con gomail.
package mail

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	appbilling "github.com/jhoicas/racunko-api/internal/application/billing"
)

const (
	// QueueDefault cola de los envíos de documentos.
	QueueDefault = "default"
	// TaskTypeDeliverDocument envío de un documento con su PDF adjunto.
	TaskTypeDeliverDocument = "document:deliver"
)

var _ appbilling.MailQueue = (*AsynqQueue)(nil)

// NewDeliveryTask construye la tarea asynq para req.
func NewDeliveryTask(req appbilling.DeliveryRequest) (*asynq.Task, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeDeliverDocument, data,
		asynq.Queue(QueueDefault),
		asynq.MaxRetry(5),
		asynq.Timeout(2*time.Minute),
	), nil
}

// AsynqQueue implementa billing.MailQueue sobre Redis.
type AsynqQueue struct {
	client *asynq.Client
}

// NewAsynqQueue crea el cliente de la cola.
func NewAsynqQueue(opt asynq.RedisClientOpt) *AsynqQueue {
	return &AsynqQueue{client: asynq.NewClient(opt)}
}

// EnqueueDelivery encola el envío.
func (q *AsynqQueue) EnqueueDelivery(ctx context.Context, req appbilling.DeliveryRequest) error {
	task, err := NewDeliveryTask(req)
	if err != nil {
		return fmt.Errorf("mail: construir tarea: %w", err)
	}
	if _, err := q.client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("mail: encolar: %w", err)
	}
	return nil
}

// Close libera la conexión a Redis.
func (q *AsynqQueue) Close() error { return q.client.Close() }
