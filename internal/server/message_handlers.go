package server

import (
	"errors"
	"fmt"

	"warbler/internal/middleware"
	"warbler/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ShowNewMessage handles GET /messages/new.
func (s *Server) ShowNewMessage(c *fiber.Ctx) error {
	return s.render(c, "messages/new", fiber.Map{})
}

// CreateMessage handles POST /messages/new, landing on the author's profile.
func (s *Server) CreateMessage(c *fiber.Ctx) error {
	userID, _ := middleware.CurrentUserID(c)
	text := c.FormValue("text")

	_, err := s.messageService.CreateMessage(c.Context(), userID, text)
	if err != nil {
		if models.IsValidation(err) {
			var appErr *models.AppError
			message := "Could not post message"
			if errors.As(err, &appErr) {
				message = appErr.Message
			}
			c.Status(fiber.StatusOK)
			return s.render(c, "messages/new", fiber.Map{
				"Error": message,
				"Text":  text,
			})
		}
		return s.handleError(c, err)
	}

	return c.Redirect(fmt.Sprintf("/users/%d", userID), fiber.StatusFound)
}

// ShowMessage handles GET /messages/:id.
func (s *Server) ShowMessage(c *fiber.Ctx) error {
	id, ok := s.parseID(c, "id")
	if !ok {
		return s.renderNotFound(c)
	}

	message, err := s.messageService.GetMessageByID(c.Context(), id)
	if err != nil {
		return s.handleError(c, err)
	}

	currentID, _ := middleware.CurrentUserID(c)
	return s.render(c, "messages/show", fiber.Map{
		"Message": message,
		"IsOwner": currentID != 0 && currentID == message.UserID,
	})
}

// DeleteMessage handles POST /messages/:id/delete. Only the author may
// delete; anyone else is treated as unauthorized.
func (s *Server) DeleteMessage(c *fiber.Ctx) error {
	id, ok := s.parseID(c, "id")
	if !ok {
		return s.renderNotFound(c)
	}
	userID, _ := middleware.CurrentUserID(c)

	if err := s.messageService.DeleteMessage(c.Context(), id, userID); err != nil {
		return s.handleError(c, err)
	}

	return c.Redirect(fmt.Sprintf("/users/%d", userID), fiber.StatusFound)
}
