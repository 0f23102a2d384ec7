package middleware

import "github.com/gofiber/fiber/v2"

// Noop is a pass-through middleware, useful as a placeholder in wiring and
// tests.
func Noop() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Next()
	}
}
