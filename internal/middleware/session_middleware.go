package middleware

import (
	"log"
	"strings"

	"plantlog/internal/services"

	"github.com/gofiber/fiber/v2"
)

// SessionKey is the fiber locals key under which the authenticated session
// is stored for downstream handlers.
const SessionKey = "session"

// SessionRequired is a Fiber middleware that turns a bearer token back into
// the session it was issued for and stores it in the request locals.
func SessionRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header is required",
			})
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		session, err := authService.ParseToken(parts[1])
		if err != nil {
			log.Printf("Token validation failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid token",
				"error":   err.Error(),
			})
		}

		c.Locals(SessionKey, session)
		return c.Next()
	}
}

// SessionFromCtx returns the session stored by SessionRequired.
func SessionFromCtx(c *fiber.Ctx) *services.Session {
	session, _ := c.Locals(SessionKey).(*services.Session)
	return session
}
