package serverutils

import (
	"errors"

	"mindwel-be/pkg/analyzer"
	"mindwel-be/pkg/classifier"
	"mindwel-be/pkg/conversation"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts engine errors that bubble out of handlers
// into consistent JSON bodies. Handlers normally map errors themselves; this
// is the safety net.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		status := fiber.StatusInternalServerError
		switch {
		case errors.Is(err, conversation.ErrSessionNotFound):
			status = fiber.StatusNotFound
		case errors.Is(err, analyzer.ErrInvalidInput):
			status = fiber.StatusBadRequest
		case errors.Is(err, classifier.ErrUnavailable):
			status = fiber.StatusServiceUnavailable
		default:
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}

		return ctx.Status(status).JSON(ErrorResponse(status, err.Error()))
	}
}
