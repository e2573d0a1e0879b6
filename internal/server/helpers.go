package server

import (
	"errors"
	"log/slog"

	"postboard/internal/middleware"
	"postboard/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parseID extracts a route parameter as a positive uint. Anything else cannot
// name a stored row, so it writes the resource's 404 body and returns
// errResponseWritten. Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param, resource string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusNotFound, models.NewNotFoundError(resource))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// parsePayload decodes the request body as a JSON object. An empty body is an
// empty payload; anything that is not a JSON object is a 400.
func (s *Server) parsePayload(c *fiber.Ctx) (map[string]any, error) {
	payload := map[string]any{}

	body := c.Body()
	if len(body) == 0 {
		return payload, nil
	}

	if err := c.App().Config().JSONDecoder(body, &payload); err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewBadRequestError("Invalid request body"))
		return nil, errResponseWritten
	}
	if payload == nil {
		payload = map[string]any{}
	}
	return payload, nil
}

// respondServiceError maps a service error to its status code and writes the
// JSON error body.
func (s *Server) respondServiceError(c *fiber.Ctx, err error) error {
	status := mapServiceError(err)
	if status >= fiber.StatusInternalServerError {
		middleware.Logger.ErrorContext(c.UserContext(), "Request failed",
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.String("error", err.Error()),
		)
	}
	return models.RespondWithError(c, status, err)
}

func mapServiceError(err error) int {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		return fiber.StatusInternalServerError
	}

	switch appErr.Code {
	case models.CodeNotFound:
		return fiber.StatusNotFound
	case models.CodeValidation:
		return fiber.StatusUnprocessableEntity
	case models.CodeBadRequest:
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}
