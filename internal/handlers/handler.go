package handlers

import (
	"context"
	"time"

	"github.com/arzan03/BookNook/internal/apperr"
	"github.com/arzan03/BookNook/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
)

const requestTimeout = 10 * time.Second

// Handler serves the REST API on top of the services.
type Handler struct {
	auth     *services.AuthService
	books    *services.BookService
	comments *services.CommentService
	contacts *services.ContactService
	exports  *services.ExportService
	ping     func(ctx context.Context) error
	logger   *zap.Logger
}

// requestContext bounds store calls made on behalf of c.
func requestContext(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.UserContext(), requestTimeout)
}

func requestID(c *fiber.Ctx) string {
	id, _ := c.Locals(requestid.ConfigDefault.ContextKey).(string)
	return id
}

func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.Validation, apperr.Conflict, apperr.Expired:
		return fiber.StatusBadRequest
	case apperr.Unauthorized:
		return fiber.StatusUnauthorized
	case apperr.NotFound:
		return fiber.StatusNotFound
	case apperr.Unavailable:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError writes err as {"message": ...}. Internal causes are logged, never returned.
func (h *Handler) respondError(c *fiber.Ctx, err error) error {
	status := statusFor(apperr.KindOf(err))
	if status >= fiber.StatusInternalServerError {
		h.logger.Error("Request failed",
			zap.Error(err),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("request_id", requestID(c)),
		)
	}
	return c.Status(status).JSON(fiber.Map{"message": apperr.Message(err, "Internal server error")})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
}

// Health reports whether the database answers.
func (h *Handler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	if err := h.ping(ctx); err != nil {
		h.logger.Warn("Health check failed", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
