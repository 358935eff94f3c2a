// Package middleware provides authentication, logging, and rate limiting
// middleware for the application.
package middleware

import (
	"warbler/internal/flash"
	"warbler/internal/session"

	"github.com/gofiber/fiber/v2"
)

// SessionAuth resolves the session cookie on every request. When the
// cookie carries a valid signed token for a live session, the acting user
// id is stored in c.Locals("userID"); otherwise the request proceeds as
// Anonymous. It never rejects by itself — RequireLogin does that.
func SessionAuth(sessions *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(session.CookieName)
		if token != "" {
			if userID, ok := sessions.Resolve(c.Context(), token); ok {
				c.Locals("userID", userID)
			}
		}
		return c.Next()
	}
}

// RequireLogin enforces the single cross-cutting authorization rule: every
// mutating or member-only route requires an Authenticated session. In the
// Anonymous state the client is redirected home with the standard flash.
// Must run after SessionAuth.
func RequireLogin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := c.Locals("userID").(uint); !ok {
			flash.Set(c, flash.CategoryDanger, "Access unauthorized.")
			return c.Redirect("/", fiber.StatusFound)
		}
		return c.Next()
	}
}

// CurrentUserID returns the acting user id set by SessionAuth. ok is false
// in the Anonymous state.
func CurrentUserID(c *fiber.Ctx) (uint, bool) {
	userID, ok := c.Locals("userID").(uint)
	return userID, ok
}
