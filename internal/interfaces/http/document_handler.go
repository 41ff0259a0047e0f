package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/racunko-api/internal/application/billing"
	"github.com/jhoicas/racunko-api/internal/application/dto"
	"github.com/jhoicas/racunko-api/pkg/logger"
)

const (
	mimePDF  = "application/pdf"
	mimeXML  = "application/xml"
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// DocumentHandler rutas de un tipo de documento. Se registra una instancia por tipo
// bajo /api/<tipo>s; la anotación swagger usa {kind} = invoices | quotes | offers | credit-notes.
type DocumentHandler struct {
	uc  *billing.DocumentUseCase
	log *logger.Logger
}

// NewDocumentHandler construye el handler.
func NewDocumentHandler(uc *billing.DocumentUseCase, log *logger.Logger) *DocumentHandler {
	return &DocumentHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Listar documentos (más recientes primero)
// @Tags         documents
// @Produce      json
// @Security     BearerAuth
// @Param        kind    path   string  true   "invoices | quotes | offers | credit-notes"
// @Param        status  query  string  false  "filtrar por estado"
// @Param        limit   query  int     false  "máximo 500"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {array}   dto.DocumentResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/{kind} [get]
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "limit y offset deben ser enteros"})
	}
	list, err := h.uc.List(c.UserContext(), c.Query("status"), page)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(list)
}

// Create godoc
// @Summary      Crear documento (estado inicial draft)
// @Tags         documents
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        kind  path  string               true  "invoices | quotes | offers | credit-notes"
// @Param        body  body  dto.DocumentRequest  true  "cabecera y líneas"
// @Success      201   {object}  dto.DocumentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/{kind} [post]
func (h *DocumentHandler) Create(c *fiber.Ctx) error {
	var in dto.DocumentRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener documento con cliente y líneas
// @Tags         documents
// @Produce      json
// @Security     BearerAuth
// @Param        kind  path  string  true  "invoices | quotes | offers | credit-notes"
// @Param        id    path  string  true  "ID"
// @Success      200  {object}  dto.DocumentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/{kind}/{id} [get]
func (h *DocumentHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Reemplazar cabecera y líneas (transaccional)
// @Tags         documents
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        kind  path  string               true  "invoices | quotes | offers | credit-notes"
// @Param        id    path  string               true  "ID"
// @Param        body  body  dto.DocumentRequest  true  "cabecera y líneas"
// @Success      200   {object}  dto.DocumentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/{kind}/{id} [put]
func (h *DocumentHandler) Update(c *fiber.Ctx) error {
	var in dto.DocumentRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar documento y sus líneas
// @Tags         documents
// @Security     BearerAuth
// @Param        kind  path  string  true  "invoices | quotes | offers | credit-notes"
// @Param        id    path  string  true  "ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/{kind}/{id} [delete]
func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UpdateStatus godoc
// @Summary      Cambiar estado (lista permitida por tipo, idempotente)
// @Tags         documents
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        kind  path  string                   true  "invoices | quotes | offers | credit-notes"
// @Param        id    path  string                   true  "ID"
// @Param        body  body  dto.UpdateStatusRequest  true  "status"
// @Success      200   {object}  dto.DocumentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/{kind}/{id}/status [put]
func (h *DocumentHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateStatusRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.UpdateStatus(c.UserContext(), c.Params("id"), in.Status)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// PDF godoc
// @Summary      Descargar PDF
// @Tags         documents
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        kind  path  string  true  "invoices | quotes | offers | credit-notes"
// @Param        id    path  string  true  "ID"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/{kind}/{id}/pdf [get]
func (h *DocumentHandler) PDF(c *fiber.Ctx) error {
	b, filename, err := h.uc.PDF(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return sendFile(c, b, filename, mimePDF)
}

// Send godoc
// @Summary      Preparar envío por correo (draft → sent)
// @Tags         documents
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        kind  path  string           true   "invoices | quotes | offers | credit-notes"
// @Param        id    path  string           true   "ID"
// @Param        body  body  dto.SendRequest  false  "destinatario opcional"
// @Success      200   {object}  dto.SendResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/{kind}/{id}/send [post]
func (h *DocumentHandler) Send(c *fiber.Ctx) error {
	var in dto.SendRequest
	if len(c.Body()) > 0 {
		if ok, err := parseAndValidate(c, &in); !ok {
			return err
		}
	}
	out, err := h.uc.Send(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar documentos a XLSX
// @Tags         documents
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Param        kind  path  string  true  "invoices | quotes | offers | credit-notes"
// @Success      200  {file}  binary
// @Router       /api/{kind}/export [get]
func (h *DocumentHandler) Export(c *fiber.Ctx) error {
	b, filename, err := h.uc.ExportXLSX(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return sendFile(c, b, filename, mimeXLSX)
}

// ESLOG godoc
// @Summary      Exportar e-SLOG 2.0 (solo invoices y credit-notes)
// @Tags         documents
// @Produce      application/xml
// @Security     BearerAuth
// @Param        kind  path  string  true  "invoices | credit-notes"
// @Param        id    path  string  true  "ID"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/{kind}/{id}/eslog [get]
func (h *DocumentHandler) ESLOG(c *fiber.Ctx) error {
	b, filename, err := h.uc.ESLOG(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return sendFile(c, b, filename, mimeXML)
}

func sendFile(c *fiber.Ctx, b []byte, filename, contentType string) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(b)
}
