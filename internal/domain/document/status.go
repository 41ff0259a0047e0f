package document

import (
	"fmt"

	"github.com/jhoicas/racunko-api/internal/domain"
	"github.com/jhoicas/racunko-api/internal/domain/entity"
)

// AllowsStatus informa si status pertenece a la lista permitida del tipo.
func (k Kind) AllowsStatus(status string) bool {
	for _, s := range k.Statuses {
		if s == status {
			return true
		}
	}
	return false
}

// ValidateStatus valida solo pertenencia: no existe guarda de transición,
// cualquier estado permitido puede fijarse desde cualquier otro.
func (k Kind) ValidateStatus(status string) error {
	if !k.AllowsStatus(status) {
		return fmt.Errorf("%w: %q no es válido para %s (permitidos: %v)", domain.ErrInvalidStatus, status, k.Code, k.Statuses)
	}
	return nil
}

// ShouldMarkSent la única transición implícita: enviar por correo pasa draft → sent.
func ShouldMarkSent(current string) bool {
	return current == entity.StatusDraft
}
