package domain

import "github.com/cockroachdb/errors"

// Errores de dominio del acceso a datos de clientes y facturas.
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	// ErrWriteFailed indica que una inserción no afectó ninguna fila dentro de una transacción.
	ErrWriteFailed = errors.New("escritura fallida")
)
