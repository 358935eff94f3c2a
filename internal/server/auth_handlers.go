package server

import (
	"errors"

	"warbler/internal/flash"
	"warbler/internal/middleware"
	"warbler/internal/models"
	"warbler/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ShowSignup handles GET /signup.
func (s *Server) ShowSignup(c *fiber.Ctx) error {
	return s.render(c, "users/signup", fiber.Map{})
}

// Signup handles POST /signup: create the account, start a session, and send
// the new user to their feed. Taken usernames or emails re-render the form.
func (s *Server) Signup(c *fiber.Ctx) error {
	username := c.FormValue("username")
	email := c.FormValue("email")
	password := c.FormValue("password")
	imageURL := c.FormValue("image_url")

	user, err := s.userService.Signup(c.Context(), service.SignupInput{
		Username: username,
		Email:    email,
		Password: password,
		ImageURL: imageURL,
	})
	if err != nil {
		if models.IsConflict(err) || models.IsValidation(err) {
			var appErr *models.AppError
			message := "Could not create account"
			if errors.As(err, &appErr) {
				message = appErr.Message
			}
			c.Status(fiber.StatusOK)
			return s.render(c, "users/signup", fiber.Map{
				"Error":    message,
				"Username": username,
				"Email":    email,
				"ImageURL": imageURL,
			})
		}
		return s.handleError(c, err)
	}

	if err := s.setSessionCookie(c, user.ID); err != nil {
		return s.handleError(c, err)
	}
	return c.Redirect("/", fiber.StatusFound)
}

// ShowLogin handles GET /login.
func (s *Server) ShowLogin(c *fiber.Ctx) error {
	return s.render(c, "users/login", fiber.Map{})
}

// Login handles POST /login. Bad credentials re-render the form with the
// standard message and no session is created.
func (s *Server) Login(c *fiber.Ctx) error {
	username := c.FormValue("username")
	password := c.FormValue("password")

	user, err := s.userService.Authenticate(c.Context(), username, password)
	if err != nil {
		return s.handleError(c, err)
	}
	if user == nil {
		c.Status(fiber.StatusOK)
		return s.render(c, "users/login", fiber.Map{
			"Error":    "Invalid credentials.",
			"Username": username,
		})
	}

	if err := s.setSessionCookie(c, user.ID); err != nil {
		return s.handleError(c, err)
	}
	flash.Set(c, flash.CategorySuccess, "Hello, "+user.Username+"!")
	return c.Redirect("/", fiber.StatusFound)
}

// Logout handles POST /logout.
func (s *Server) Logout(c *fiber.Ctx) error {
	s.clearSessionCookie(c)
	flash.Set(c, flash.CategoryInfo, "You have successfully logged out.")
	return c.Redirect("/login", fiber.StatusFound)
}

// Home handles GET /. Authenticated users see their feed; anonymous visitors
// get the landing page.
func (s *Server) Home(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return s.render(c, "home_anon", fiber.Map{})
	}

	messages, err := s.messageService.Feed(c.Context(), userID, 100)
	if err != nil {
		return s.handleError(c, err)
	}
	return s.render(c, "home", fiber.Map{
		"Messages": messages,
	})
}
