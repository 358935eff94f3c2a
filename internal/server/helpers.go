package server

import (
	"warbler/internal/flash"
	"warbler/internal/middleware"
	"warbler/internal/models"
	"warbler/internal/session"

	"github.com/gofiber/fiber/v2"
)

// render draws a view inside the main layout, attaching the acting user and
// any pending flash message.
func (s *Server) render(c *fiber.Ctx, name string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}

	if _, present := data["CurrentUser"]; !present {
		if userID, ok := middleware.CurrentUserID(c); ok {
			if user, err := s.userRepo.GetByID(c.Context(), userID); err == nil {
				data["CurrentUser"] = user
			}
		}
	}

	if msg, ok := flash.Pop(c); ok {
		data["Flash"] = msg
	}

	return c.Render(name, data, "layouts/main")
}

// renderNotFound draws the 404 page.
func (s *Server) renderNotFound(c *fiber.Ctx) error {
	c.Status(fiber.StatusNotFound)
	return s.render(c, "404", nil)
}

// NotFound is the terminal handler for unmatched routes.
func (s *Server) NotFound(c *fiber.Ctx) error {
	return s.renderNotFound(c)
}

// parseID extracts a route parameter as a positive uint. Malformed and
// non-positive ids render the 404 page, matching unknown-resource behavior.
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, bool) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}

// handleError maps a service error onto the right HTML response.
func (s *Server) handleError(c *fiber.Ctx, err error) error {
	switch {
	case models.IsNotFound(err):
		return s.renderNotFound(c)
	case models.IsForbidden(err):
		flash.Set(c, flash.CategoryDanger, "Access unauthorized.")
		return c.Redirect("/", fiber.StatusFound)
	default:
		middleware.Logger.ErrorContext(c.Context(), "request failed", "error", err)
		c.Status(fiber.StatusInternalServerError)
		return s.render(c, "404", fiber.Map{})
	}
}

// setSessionCookie issues a session for the user and attaches the signed
// token cookie to the response.
func (s *Server) setSessionCookie(c *fiber.Ctx, userID uint) error {
	token, err := s.sessions.Issue(c.Context(), userID)
	if err != nil {
		return err
	}
	c.Cookie(&fiber.Cookie{
		Name:     session.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.sessions.TTL().Seconds()),
		HTTPOnly: true,
		Secure:   s.config.Env == "production",
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return nil
}

// clearSessionCookie destroys the server-side session and expires the cookie.
func (s *Server) clearSessionCookie(c *fiber.Ctx) {
	if token := c.Cookies(session.CookieName); token != "" {
		_ = s.sessions.Destroy(c.Context(), token)
	}
	c.Cookie(&fiber.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
