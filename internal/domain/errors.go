package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInvalidState       = errors.New("transición de estado inválida")
	ErrInternal           = errors.New("error interno")
)

// Kind clasifica un error para la capa de transporte.
type Kind string

const (
	KindValidation   Kind = "VALIDATION"
	KindConflict     Kind = "CONFLICT"
	KindNotFound     Kind = "NOT_FOUND"
	KindInvalidState Kind = "INVALID_STATE"
	KindInternal     Kind = "INTERNAL"
)

// Subtipos de validación.
const (
	CodeInvalidFormat      = "INVALID_FORMAT"
	CodeInvalidEnumValue   = "INVALID_ENUM_VALUE"
	CodeInvalidCombination = "INVALID_COMBINATION"
	CodeMissingField       = "MISSING_FIELD"
	CodeCheckDigitMismatch = "CHECK_DIGIT_MISMATCH"
)

// Error es el error tipado del dominio. Code solo aplica a KindValidation.
type Error struct {
	Kind    Kind
	Code    string
	Field   string
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is permite errors.Is(err, domain.ErrNotFound) y similares según el Kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrInvalidInput:
		return e.Kind == KindValidation
	case ErrConflict, ErrDuplicate:
		return e.Kind == KindConflict
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrInvalidState:
		return e.Kind == KindInvalidState
	case ErrInternal:
		return e.Kind == KindInternal
	}
	return false
}

// Validation crea un error de validación sobre un campo.
func Validation(code, field, message string) *Error {
	return &Error{Kind: KindValidation, Code: code, Field: field, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func InvalidState(message string) *Error {
	return &Error{Kind: KindInvalidState, Message: message}
}

// Internal envuelve una falla de almacenamiento u otra dependencia.
func Internal(err error, message string) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// KindOf devuelve el Kind de err. Los sentinelas sueltos se mapean a su Kind;
// cualquier otro error es KindInternal.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	switch {
	case errors.Is(err, ErrInvalidInput):
		return KindValidation
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrUserNotFound):
		return KindNotFound
	case errors.Is(err, ErrConflict), errors.Is(err, ErrDuplicate), errors.Is(err, ErrEmailAlreadyExists):
		return KindConflict
	case errors.Is(err, ErrInvalidState):
		return KindInvalidState
	}
	return KindInternal
}
