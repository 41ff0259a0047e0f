package entity

// Issuer datos del emisor (la propia empresa) impresos en PDF, e-SLOG y correos.
type Issuer struct {
	Name    string
	Address string
	TaxID   string
	IBAN    string
	Email   string
}
