package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/racunko-api/internal/application/dto"
	"github.com/jhoicas/racunko-api/internal/domain"
	"github.com/jhoicas/racunko-api/internal/domain/customer"
	"github.com/jhoicas/racunko-api/internal/domain/entity"
	"github.com/jhoicas/racunko-api/internal/domain/repository"
	"github.com/jhoicas/racunko-api/pkg/logger"
	"github.com/jhoicas/racunko-api/pkg/taxid"
)

// CustomerUseCase casos de uso para clientes (stranke).
type CustomerUseCase struct {
	repo   repository.CustomerRepository
	sheets SpreadsheetExporter
	log    *logger.Logger
	now    func() time.Time
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository, sheets SpreadsheetExporter, log *logger.Logger) *CustomerUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &CustomerUseCase{repo: repo, sheets: sheets, log: log.WithComponent("customers"), now: time.Now}
}

// Create crea un cliente con los derivados recalculados.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CustomerRequest) (*dto.CustomerResponse, error) {
	if strings.TrimSpace(in.Stranka) == "" {
		return nil, fmt.Errorf("%w: Stranka es obligatorio", domain.ErrInvalidInput)
	}
	now := uc.now()
	c := fromCustomerRequest(in)
	c.ID = uuid.New().String()
	c.CreatedAt = now
	c.UpdatedAt = now
	customer.Recalculate(c)
	uc.checkTaxID(c)

	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	uc.log.Info().Str("id", c.ID).Str("stranka", c.Stranka).Msg("cliente creado")
	return toCustomerResponse(c), nil
}

// Get devuelve un cliente.
func (uc *CustomerUseCase) Get(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	c, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCustomerResponse(c), nil
}

// List lista clientes por nombre; q filtra por Stranka o email.
func (uc *CustomerUseCase) List(ctx context.Context, q string, page dto.PageRequest) ([]*dto.CustomerResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, repository.CustomerFilter{Query: strings.TrimSpace(q), Limit: page.Limit, Offset: page.Offset})
	if err != nil {
		return nil, fmt.Errorf("listar clientes: %w", err)
	}
	out := make([]*dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCustomerResponse(c))
	}
	return out, nil
}

// Update reemplaza todas las columnas del cliente y recalcula los derivados.
func (uc *CustomerUseCase) Update(ctx context.Context, id string, in dto.CustomerRequest) (*dto.CustomerResponse, error) {
	if strings.TrimSpace(in.Stranka) == "" {
		return nil, fmt.Errorf("%w: Stranka es obligatorio", domain.ErrInvalidInput)
	}
	current, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	c := fromCustomerRequest(in)
	c.ID = current.ID
	c.CreatedAt = current.CreatedAt
	c.UpdatedAt = uc.now()
	customer.Recalculate(c)
	uc.checkTaxID(c)

	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return toCustomerResponse(c), nil
}

// Delete elimina el cliente. Los documentos que lo referencian se conservan.
func (uc *CustomerUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Str("id", id).Msg("cliente eliminado")
	return nil
}

// ExportXLSX exporta todos los clientes a una hoja de cálculo.
func (uc *CustomerUseCase) ExportXLSX(ctx context.Context) ([]byte, string, error) {
	list, err := uc.repo.List(ctx, repository.CustomerFilter{Limit: exportLimit})
	if err != nil {
		return nil, "", fmt.Errorf("listar clientes: %w", err)
	}
	b, err := uc.sheets.CustomersXLSX(list)
	if err != nil {
		return nil, "", fmt.Errorf("xlsx: %w", err)
	}
	return b, "stranke.xlsx", nil
}

// checkTaxID solo advierte: hay clientes extranjeros o sin davčna številka verificada.
func (uc *CustomerUseCase) checkTaxID(c *entity.Customer) {
	if c.Davcna == "" {
		return
	}
	if err := taxid.Validate(c.Davcna); err != nil {
		uc.log.Warn().Str("stranka", c.Stranka).Str("davcna", c.Davcna).Err(err).Msg("davčna številka no verificada")
	}
}

func (uc *CustomerUseCase) load(ctx context.Context, id string) (*entity.Customer, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener cliente: %w", err)
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func fromCustomerRequest(in dto.CustomerRequest) *entity.Customer {
	c := &entity.Customer{
		Stranka: strings.TrimSpace(in.Stranka),
		Naslov:  strings.TrimSpace(in.Naslov),
		Posta:   strings.TrimSpace(in.Posta),
		Kraj:    strings.TrimSpace(in.Kraj),
		Davcna:  strings.TrimSpace(in.Davcna),
		Telefon: strings.TrimSpace(in.Telefon),
		Email:   strings.TrimSpace(in.Email),
		Opombe:  in.Opombe,
	}
	for i, st := range in.Stages {
		c.Stages[i] = entity.Stage{
			Amount:        st.Amount,
			Received:      st.Received,
			Status:        strings.TrimSpace(st.Status),
			InvoiceIssued: st.InvoiceIssued,
		}
	}
	return c
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	resp := &dto.CustomerResponse{
		ID:        c.ID,
		Stranka:   c.Stranka,
		Naslov:    c.Naslov,
		Posta:     c.Posta,
		Kraj:      c.Kraj,
		Davcna:    c.Davcna,
		Telefon:   c.Telefon,
		Email:     c.Email,
		Opombe:    c.Opombe,
		Skupaj:    c.Skupaj,
		Izplacano: c.Izplacano,
		Kontrola:  c.Kontrola,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	for i, st := range c.Stages {
		resp.Stages[i] = dto.StageFields{
			Amount:        st.Amount,
			WithVAT:       st.WithVAT,
			Received:      st.Received,
			Status:        st.Status,
			InvoiceIssued: st.InvoiceIssued,
		}
	}
	return resp
}
