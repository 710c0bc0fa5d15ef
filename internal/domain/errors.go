package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrMissingColumns    = errors.New("no se detectaron las columnas requeridas en el archivo")
	ErrInsufficientStock = errors.New("stock insuficiente")
)
