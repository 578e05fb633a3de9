package serverutils

import (
	"errors"

	"niv-scholar-be/internal/pkg/logger"
	"niv-scholar-be/pkg/llm"

	"github.com/gofiber/fiber/v2"
)

const UnexpectedErrorMessage = "Unexpected server error"

// ErrorHandler maps errors returned by handlers onto status codes and the
// {"error", "details"} body.
func ErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		status, body := classify(err)

		if status >= fiber.StatusInternalServerError {
			log.Error("HTTP", body.Error, map[string]interface{}{
				"method": ctx.Method(),
				"path":   ctx.Path(),
				"status": status,
				"error":  err.Error(),
			})
		}

		return ctx.Status(status).JSON(body)
	}
}

func classify(err error) (int, ErrorBody) {
	var (
		validationErr *ValidationError
		upstreamErr   *llm.UpstreamError
		fiberErr      *fiber.Error
	)

	switch {
	case errors.Is(err, llm.ErrMissingCredential):
		return fiber.StatusInternalServerError, ErrorBody{Error: llm.ErrMissingCredential.Error()}
	case errors.Is(err, ErrInvalidBody):
		return fiber.StatusBadRequest, ErrorBody{Error: ErrInvalidBody.Error()}
	case errors.As(err, &validationErr):
		return fiber.StatusBadRequest, ErrorBody{Error: validationErr.Message}
	case errors.As(err, &upstreamErr):
		return upstreamErr.Status, ErrorBody{Error: upstreamErr.Error(), Details: upstreamErr.Body}
	case errors.As(err, &fiberErr):
		return fiberErr.Code, ErrorBody{Error: fiberErr.Message}
	default:
		return fiber.StatusInternalServerError, ErrorBody{Error: UnexpectedErrorMessage, Details: err.Error()}
	}
}
