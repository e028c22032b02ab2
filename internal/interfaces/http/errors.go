package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/pkg/logger"
)

// writeError traduce los errores de dominio a status + ErrorResponse.
// Los errores de almacenamiento no exponen el detalle del driver.
func writeError(c *fiber.Ctx, log *logger.Logger, err error) error {
	status, code := fiber.StatusInternalServerError, "INTERNAL"
	message := "error interno"
	switch {
	case errors.Is(err, domain.ErrInvalidMovement), errors.Is(err, domain.ErrInvalidInput):
		status, code, message = fiber.StatusBadRequest, "VALIDATION", detail(err)
	case errors.Is(err, domain.ErrNotFound):
		status, code, message = fiber.StatusNotFound, "NOT_FOUND", detail(err)
	case errors.Is(err, domain.ErrInsufficientStock):
		status, code, message = fiber.StatusConflict, "INSUFFICIENT_STOCK", detail(err)
	case errors.Is(err, domain.ErrDuplicate):
		status, code, message = fiber.StatusConflict, "DUPLICATE", detail(err)
	case errors.Is(err, domain.ErrConflict):
		status, code, message = fiber.StatusConflict, "CONFLICT", detail(err)
	case errors.Is(err, domain.ErrForbidden):
		status, code, message = fiber.StatusForbidden, "FORBIDDEN", detail(err)
	case errors.Is(err, domain.ErrUnauthorized):
		status, code, message = fiber.StatusUnauthorized, "UNAUTHORIZED", detail(err)
	case errors.Is(err, domain.ErrStoreUnavailable):
		status, code, message = fiber.StatusServiceUnavailable, "STORE_UNAVAILABLE", domain.ErrStoreUnavailable.Error()
	}
	if status >= fiber.StatusInternalServerError && log != nil {
		log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: message})
}

// detail quita la cadena de contexto de almacenamiento y deja el mensaje de dominio.
func detail(err error) string {
	msg := err.Error()
	if strings.Contains(msg, domain.ErrStoreUnavailable.Error()) {
		return domain.ErrStoreUnavailable.Error()
	}
	return msg
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

func badQuery(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
}
