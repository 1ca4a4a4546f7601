package middleware

import (
	"strings"

	"github.com/arzan03/BookNook/internal/apperr"
	"github.com/gofiber/fiber/v2"
)

// UserIDKey is the c.Locals key holding the authenticated user id.
const UserIDKey = "user_id"

// SessionVerifier resolves a session token to a user id.
type SessionVerifier interface {
	VerifySession(token string) (string, error)
}

// AuthMiddleware validates the bearer token and stores the user id for the next handlers.
func AuthMiddleware(verifier SessionVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Get the Authorization header
		header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
		if header == "" {
			return unauthorized(c, "Missing token")
		}

		// Ensure it's a Bearer token
		scheme, tokenString, found := strings.Cut(header, " ")
		tokenString = strings.TrimSpace(tokenString)
		if !found || !strings.EqualFold(scheme, "Bearer") || tokenString == "" {
			return unauthorized(c, "Invalid token format")
		}

		userID, err := verifier.VerifySession(tokenString)
		if err != nil {
			if apperr.KindOf(err) == apperr.Expired {
				return unauthorized(c, "Token has expired, please log in again")
			}
			return unauthorized(c, "Invalid token")
		}

		c.Locals(UserIDKey, userID)
		return c.Next()
	}
}

// UserID returns the id stored by AuthMiddleware, or "" on unprotected routes.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(UserIDKey).(string)
	return id
}

func unauthorized(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": msg})
}
