package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrInvalidConversion   = errors.New("factor de conversión o capacidad no positivos")
	ErrUnknownMovementType = errors.New("tipo de movimiento desconocido")

	// ErrTableNotFound indica que la tabla de respaldo aún no existe.
	// Es distinto de una tabla legítimamente vacía y distinto de un fallo
	// real del almacenamiento (que se propaga tal cual).
	ErrTableNotFound = errors.New("tabla no inicializada en el almacenamiento")
)
