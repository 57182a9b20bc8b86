package middleware

import (
	"iq-admin/internal/domain"
	"iq-admin/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ValidateSessionID rejects malformed import session ids before they reach
// a handler. Malformed ids are reported exactly like unknown ones.
func ValidateSessionID(param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params(param)
		if !validation.IsValidULID(id) {
			return domain.NewSessionNotFoundError(id)
		}
		return c.Next()
	}
}
