package taxid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/racunko-api/pkg/taxid"
)

func TestValidate(t *testing.T) {
	for _, ok := range []string{"12345679", "SI15012557", "si 8765 4326", "99999994"} {
		assert.NoError(t, taxid.Validate(ok), ok)
	}
	for _, bad := range []string{"", "12345678", "SI8765432", "123456790"} {
		assert.Error(t, taxid.Validate(bad), bad)
	}
}

func TestCheckDigit(t *testing.T) {
	d, err := taxid.CheckDigit("1501255")
	require.NoError(t, err)
	assert.Equal(t, byte('7'), d)

	_, err = taxid.CheckDigit("123")
	assert.Error(t, err)
}

func TestVATNumber(t *testing.T) {
	assert.Equal(t, "SI12345679", taxid.VATNumber(" 1234-5679 "))
	assert.Equal(t, "HR123", taxid.VATNumber(" HR123 "))
}
