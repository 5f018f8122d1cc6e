package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrPersistence       = errors.New("error de persistencia")
)

// Error es el error estructurado del núcleo: Kind es uno de los sentinelas de arriba,
// Message el texto para el usuario y Cause el error original (si lo hay).
type Error struct {
	Kind    error
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap expone Kind y Cause para que errors.Is funcione con ambos.
func (e *Error) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}

// Validation construye un error de validación (entrada inválida).
func Validation(msg string) error {
	return &Error{Kind: ErrInvalidInput, Message: msg}
}

// NotFound construye un error de recurso inexistente.
func NotFound(msg string) error {
	return &Error{Kind: ErrNotFound, Message: msg}
}

// InsufficientStock construye el error de stock insuficiente.
func InsufficientStock(msg string) error {
	return &Error{Kind: ErrInsufficientStock, Message: msg}
}

// Conflict construye un error de conflicto (estado cambiado o no permitido).
func Conflict(msg string) error {
	return &Error{Kind: ErrConflict, Message: msg}
}

// Persistence envuelve un error del almacenamiento conservando la causa original.
func Persistence(op string, cause error) error {
	return &Error{Kind: ErrPersistence, Message: op, Cause: cause}
}

// KindOf devuelve el sentinela que clasifica err. Errores no clasificados se tratan como persistencia.
func KindOf(err error) error {
	for _, k := range []error{ErrInvalidInput, ErrNotFound, ErrInsufficientStock, ErrConflict, ErrUnauthorized, ErrForbidden, ErrUserNotFound, ErrPersistence} {
		if errors.Is(err, k) {
			return k
		}
	}
	return ErrPersistence
}

// MessageOf devuelve el mensaje legible del error estructurado, o err.Error() si no lo es.
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return err.Error()
}
