package mail

import (
	"context"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appbilling "github.com/jhoicas/racunko-api/internal/application/billing"
	"github.com/jhoicas/racunko-api/internal/domain"
)

type fakeSource struct {
	err error
}

func (f fakeSource) PDF(_ context.Context, id string) ([]byte, string, error) {
	if f.err != nil {
		return nil, "", f.err
	}
	return []byte("%PDF-1.3"), "racun_" + id + ".pdf", nil
}

type fakeSender struct {
	sent []Message
	err  error
}

func (f *fakeSender) Send(_ context.Context, msg Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func task(t *testing.T, req appbilling.DeliveryRequest) *asynq.Task {
	t.Helper()
	task, err := NewDeliveryTask(req)
	require.NoError(t, err)
	return task
}

func TestProcessTask_EnviaConAdjunto(t *testing.T) {
	sender := &fakeSender{}
	h := NewDeliveryHandler(map[string]PDFSource{"invoice": fakeSource{}}, sender, nil)

	err := h.ProcessTask(context.Background(), task(t, appbilling.DeliveryRequest{
		KindCode: "invoice", DocumentID: "2024-001", To: "kupec@example.si", Subject: "Račun 2024-001", Body: "...",
	}))
	require.NoError(t, err)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "kupec@example.si", sender.sent[0].To)
	assert.Equal(t, "racun_2024-001.pdf", sender.sent[0].AttachmentName)
	assert.NotEmpty(t, sender.sent[0].Attachment)
}

func TestProcessTask_TipoDesconocidoNoReintenta(t *testing.T) {
	h := NewDeliveryHandler(map[string]PDFSource{}, &fakeSender{}, nil)
	err := h.ProcessTask(context.Background(), task(t, appbilling.DeliveryRequest{KindCode: "x"}))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestProcessTask_DocumentoBorradoNoReintenta(t *testing.T) {
	h := NewDeliveryHandler(map[string]PDFSource{"invoice": fakeSource{err: domain.ErrNotFound}}, &fakeSender{}, nil)
	err := h.ProcessTask(context.Background(), task(t, appbilling.DeliveryRequest{KindCode: "invoice", DocumentID: "d"}))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestProcessTask_FalloSMTPSeReintenta(t *testing.T) {
	boom := errors.New("smtp caído")
	h := NewDeliveryHandler(map[string]PDFSource{"invoice": fakeSource{}}, &fakeSender{err: boom}, nil)
	err := h.ProcessTask(context.Background(), task(t, appbilling.DeliveryRequest{KindCode: "invoice", DocumentID: "d"}))
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, asynq.SkipRetry)
}

func TestNewDeliveryTask(t *testing.T) {
	tk := task(t, appbilling.DeliveryRequest{KindCode: "quote", DocumentID: "d1"})
	assert.Equal(t, TaskTypeDeliverDocument, tk.Type())
	assert.Contains(t, string(tk.Payload()), `"kind":"quote"`)
}

func TestBuildMessage(t *testing.T) {
	m := buildMessage("info@racunko.si", Message{To: "a@b.si", Subject: "Račun 1", Body: "x", AttachmentName: "racun_1.pdf", Attachment: []byte("pdf")})
	assert.Equal(t, []string{"a@b.si"}, m.GetHeader("To"))
	assert.Equal(t, []string{"info@racunko.si"}, m.GetHeader("From"))
}

func TestNewSMTPSender_Validacion(t *testing.T) {
	_, err := NewSMTPSender(SMTPConfig{Host: "smtp.example.si"})
	assert.Error(t, err)
}
