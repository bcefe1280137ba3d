package middleware

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"faculty-hub/services"
)

// ActorLocal is the fiber locals key the authenticated actor is stored under.
const ActorLocal = "actor"

// RequireAuth rejects requests without a valid session cookie.
func RequireAuth(c *fiber.Ctx) error {
	sessionID := c.Cookies(services.SessionCookieName)
	if sessionID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	session, err := services.GetSessionByID(c.Context(), sessionID)
	if err != nil {
		slog.Error("Failed to get session", "error", err)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	if session == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid or expired session",
		})
	}

	c.Locals(ActorLocal, session.Actor())
	c.Locals("session_id", session.SessionID)

	// Extend session expiration on activity
	services.ExtendSession(c.Context(), sessionID)

	return c.Next()
}

// OptionalAuth attaches the session actor when a valid session cookie is
// present and continues anonymously otherwise. The session identity always
// overrides any actor the request body claims.
func OptionalAuth(c *fiber.Ctx) error {
	sessionID := c.Cookies(services.SessionCookieName)
	if sessionID == "" {
		return c.Next()
	}

	session, err := services.GetSessionByID(c.Context(), sessionID)
	if err != nil {
		slog.Error("Failed to get session", "error", err)
		return c.Next()
	}
	if session == nil {
		return c.Next()
	}

	c.Locals(ActorLocal, session.Actor())
	c.Locals("session_id", session.SessionID)

	return c.Next()
}
