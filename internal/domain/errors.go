package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound      = errors.New("recurso no encontrado")
	ErrInvalidInput  = errors.New("entrada inválida")
	ErrDuplicate     = errors.New("recurso duplicado")
	ErrInvalidStatus = errors.New("estado no permitido para este tipo de documento")
	ErrUnauthorized  = errors.New("no autorizado")
	ErrNotSupported  = errors.New("operación no soportada para este tipo de documento")
)
