package billing

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/jhoicas/racunko-api/internal/application/dto"
	"github.com/jhoicas/racunko-api/internal/domain"
	"github.com/jhoicas/racunko-api/internal/domain/entity"
	"github.com/jhoicas/racunko-api/pkg/money"
)

// Send prepara el correo del documento y, si estaba en draft, lo pasa a sent mediante
// MarkSentIfDraft. Con cola configurada además encola el envío real con el PDF adjunto.
func (uc *DocumentUseCase) Send(ctx context.Context, id string, in dto.SendRequest) (*dto.SendResponse, error) {
	doc, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}

	to := strings.TrimSpace(in.To)
	if to == "" && doc.Customer != nil {
		to = strings.TrimSpace(doc.Customer.Email)
	}
	if to == "" {
		return nil, fmt.Errorf("%w: el cliente no tiene email; indique el destinatario", domain.ErrInvalidInput)
	}

	subject, body := uc.composeMessage(doc)

	status, err := uc.MarkSentIfDraft(ctx, doc)
	if err != nil {
		return nil, err
	}

	queued := false
	if uc.mail != nil {
		err := uc.mail.EnqueueDelivery(ctx, DeliveryRequest{
			KindCode:   uc.kind.Code,
			DocumentID: doc.ID,
			To:         to,
			Subject:    subject,
			Body:       body,
		})
		if err != nil {
			// El mailto sigue siendo válido; el envío automático se puede reintentar.
			uc.log.Error().Err(err).Str("id", doc.ID).Msg("encolar correo")
		} else {
			queued = true
		}
	}

	return &dto.SendResponse{
		To:      to,
		Subject: subject,
		Body:    body,
		Mailto:  BuildMailto(to, subject, body),
		Status:  status,
		Queued:  queued,
	}, nil
}

func (uc *DocumentUseCase) composeMessage(doc *entity.Document) (subject, body string) {
	subject = fmt.Sprintf("%s %s", uc.kind.Title, doc.Number)

	var b strings.Builder
	b.WriteString("Spoštovani,\n\n")
	fmt.Fprintf(&b, "v priponki vam pošiljamo dokument %s št. %s v skupnem znesku %s.\n",
		strings.ToLower(uc.kind.Title), doc.Number, money.FormatEUR(doc.TotalPayable))
	if doc.DueDate != nil {
		fmt.Fprintf(&b, "Rok plačila: %s.\n", doc.DueDate.Format("02.01.2006"))
	}
	if uc.issuer.IBAN != "" {
		fmt.Fprintf(&b, "IBAN: %s, sklic: %s.\n", uc.issuer.IBAN, doc.Number)
	}
	b.WriteString("\nLep pozdrav,\n")
	b.WriteString(uc.issuer.Name)
	return subject, b.String()
}

// BuildMailto construye un enlace mailto (RFC 6068) con asunto y cuerpo codificados.
func BuildMailto(to, subject, body string) string {
	return "mailto:" + mailtoEscape(to) + "?subject=" + mailtoEscape(subject) + "&body=" + mailtoEscape(body)
}

func mailtoEscape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
