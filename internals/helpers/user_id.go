package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// LocUserID is the Locals key the auth guard fills.
const LocUserID = "user_id"

// GetUserID returns the authenticated user id set by the auth guard.
// User ids are opaque strings issued by the session provider.
func GetUserID(c *fiber.Ctx) (string, error) {
	v, ok := c.Locals(LocUserID).(string)
	if !ok || strings.TrimSpace(v) == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Authentication required")
	}
	return v, nil
}
