package document_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/racunko-api/internal/domain"
	"github.com/jhoicas/racunko-api/internal/domain/document"
	"github.com/jhoicas/racunko-api/internal/domain/entity"
)

func TestValidateStatus_ListasPorTipo(t *testing.T) {
	cases := []struct {
		kind    document.Kind
		allowed []string
		denied  []string
	}{
		{document.Invoice, []string{"draft", "sent", "paid", "cancelled"}, []string{"accepted", "rejected", "processed", "", "PAID"}},
		{document.Quote, []string{"draft", "sent", "accepted", "rejected"}, []string{"paid", "cancelled", "processed"}},
		{document.Offer, []string{"draft", "sent", "accepted", "rejected"}, []string{"paid", "processed"}},
		{document.CreditNote, []string{"draft", "sent", "processed", "cancelled"}, []string{"paid", "accepted", "rejected"}},
	}
	for _, tc := range cases {
		t.Run(tc.kind.Code, func(t *testing.T) {
			for _, s := range tc.allowed {
				assert.NoError(t, tc.kind.ValidateStatus(s), s)
			}
			for _, s := range tc.denied {
				err := tc.kind.ValidateStatus(s)
				require.Error(t, err, s)
				assert.ErrorIs(t, err, domain.ErrInvalidStatus)
			}
		})
	}
}

func TestInitialStatus_EsDraft(t *testing.T) {
	for _, k := range document.Kinds() {
		assert.Equal(t, entity.StatusDraft, k.InitialStatus(), k.Code)
	}
}

func TestShouldMarkSent_SoloDesdeDraft(t *testing.T) {
	assert.True(t, document.ShouldMarkSent(entity.StatusDraft))
	for _, s := range []string{"sent", "paid", "cancelled", "accepted", "rejected", "processed"} {
		assert.False(t, document.ShouldMarkSent(s), s)
	}
}

func TestKindByCode(t *testing.T) {
	k, ok := document.KindByCode("credit_note")
	require.True(t, ok)
	assert.Equal(t, "credit-notes", k.Path)
	assert.True(t, k.SupportsESLOG())

	_, ok = document.KindByCode("receipt")
	assert.False(t, ok)
	assert.False(t, document.Quote.SupportsESLOG())
}
