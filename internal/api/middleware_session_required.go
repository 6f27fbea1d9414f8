package api

import (
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) SessionRequired(c *fiber.Ctx) error {
	token, err := handler.sessionTokenFromRequest(c)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "session_required")
	}
	sessionID, err := handler.parseSessionToken(token)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "session_required")
	}

	c.Locals(contextSessionKey, sessionID)
	return c.Next()
}

// CSRFExempt lets bearer-token clients skip the CSRF check; they do not rely
// on ambient cookies.
func CSRFExempt(c *fiber.Ctx) bool {
	return hasBearerToken(c)
}
