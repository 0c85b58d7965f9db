package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/contacts-api/internal/application/dto"
	"github.com/jhoicas/contacts-api/internal/domain"
	"github.com/rs/zerolog/log"
)

// statusByKind traduce la clasificación del dominio a HTTP.
var statusByKind = map[domain.Kind]int{
	domain.KindValidation:   fiber.StatusBadRequest,
	domain.KindNotFound:     fiber.StatusNotFound,
	domain.KindConflict:     fiber.StatusConflict,
	domain.KindInvalidState: fiber.StatusUnprocessableEntity,
	domain.KindInternal:     fiber.StatusInternalServerError,
}

// writeError responde con el status y cuerpo que corresponden a err.
// Los errores internos no exponen el detalle al cliente.
func writeError(c *fiber.Ctx, err error) error {
	kind := domain.KindOf(err)
	status := statusByKind[kind]
	body := dto.ErrorResponse{Code: string(kind), Message: err.Error()}

	var de *domain.Error
	if errors.As(err, &de) {
		body.Message = de.Message
		body.Field = de.Field
		if de.Code != "" {
			body.Code = de.Code
		}
	}
	if kind == domain.KindInternal {
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
		body.Message = "error interno del servidor"
	}
	return c.Status(status).JSON(body)
}

// abort corta la cadena de middlewares con un ErrorResponse.
func abort(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: message})
}

// ErrorHandler manejador global de Fiber para errores no tratados por los handlers.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return abort(c, fe.Code, "HTTP_ERROR", fe.Message)
	}
	return writeError(c, err)
}
