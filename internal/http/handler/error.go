package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"surveyapi/internal/errs"
	"surveyapi/internal/http/middleware"
	"surveyapi/internal/service"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "INVALID_ID", "NOT_FOUND", "INTERNAL_ERROR")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return writeErrorDetails(c, status, code, message, nil)
}

func writeErrorDetails(c *fiber.Ctx, status int, code, message string, details map[string]any) error {
	res := errorPayload{
		RequestID: middleware.RequestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
	return c.Status(status).JSON(res)
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
// Domain errors keep their message; anything unrecognized is logged and reported as a 500.
func ErrorHandler(log zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var (
			reqErr   *errs.RequestError
			valErr   *validationError
			notFound *errs.ResourceNotFoundError
			invalid  *errs.InvalidInputError
			fiberErr *fiber.Error
		)

		switch {
		case errors.As(err, &reqErr):
			return writeErrorDetails(c, reqErr.Status, reqErr.Code, reqErr.Message, reqErr.Details)
		case errors.As(err, &valErr):
			return writeErrorDetails(c, fiber.StatusBadRequest, "VALIDATION_FAILED", "validation failed", valErr.details())
		case errors.As(err, &notFound):
			return writeErrorDetails(c, fiber.StatusNotFound, "NOT_FOUND", notFound.Error(), map[string]any{
				"resource_type": notFound.Resource,
				"resource_id":   notFound.ID,
			})
		case errors.As(err, &invalid):
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", invalid.Message)
		case errors.Is(err, service.ErrReaderNil):
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		case errors.As(err, &fiberErr):
			switch fiberErr.Code {
			case fiber.StatusBadRequest:
				return writeError(c, fiberErr.Code, "BAD_REQUEST", "bad request")
			case fiber.StatusNotFound:
				return writeError(c, fiberErr.Code, "NOT_FOUND", "resource not found")
			case fiber.StatusMethodNotAllowed:
				return writeError(c, fiberErr.Code, "METHOD_NOT_ALLOWED", "method not allowed")
			case fiber.StatusRequestEntityTooLarge:
				return writeError(c, fiberErr.Code, "REQUEST_TOO_LARGE", "request entity too large")
			}
		}

		log.Error().Err(err).
			Str("request_id", middleware.RequestIDFromCtx(c)).
			Str("path", c.Path()).
			Msg("unhandled error")
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}
