package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los fallos de la capa de persistencia NO se modelan aquí: los repositorios
// los envuelven con fmt.Errorf y el borde HTTP los reporta como error genérico.
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
)
