package server

import (
	"errors"
	"fmt"
	"strings"

	"warbler/internal/flash"
	"warbler/internal/middleware"
	"warbler/internal/models"
	"warbler/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListUsers handles GET /users with an optional username LIKE filter.
func (s *Server) ListUsers(c *fiber.Ctx) error {
	filter := strings.TrimSpace(c.Query("username"))

	users, err := s.userService.SearchUsers(c.Context(), filter, 0, 0)
	if err != nil {
		return s.handleError(c, err)
	}
	return s.render(c, "users/index", fiber.Map{
		"Users":  users,
		"Filter": filter,
	})
}

// ShowUser handles GET /users/:id: the profile page with the user's own
// messages, newest first.
func (s *Server) ShowUser(c *fiber.Ctx) error {
	id, ok := s.parseID(c, "id")
	if !ok {
		return s.renderNotFound(c)
	}

	user, err := s.userService.GetUserByID(c.Context(), id)
	if err != nil {
		return s.handleError(c, err)
	}

	messages, err := s.messageService.ListForUser(c.Context(), id, 100)
	if err != nil {
		return s.handleError(c, err)
	}

	currentID, _ := middleware.CurrentUserID(c)
	isFollowing := false
	if currentID != 0 && currentID != id {
		isFollowing, err = s.followService.IsFollowing(c.Context(), currentID, id)
		if err != nil {
			return s.handleError(c, err)
		}
	}

	return s.render(c, "users/show", fiber.Map{
		"User":        user,
		"Messages":    messages,
		"IsSelf":      currentID == id,
		"IsFollowing": isFollowing,
	})
}

// ShowFollowing handles GET /users/:id/following.
func (s *Server) ShowFollowing(c *fiber.Ctx) error {
	id, ok := s.parseID(c, "id")
	if !ok {
		return s.renderNotFound(c)
	}

	user, err := s.userService.GetUserByID(c.Context(), id)
	if err != nil {
		return s.handleError(c, err)
	}

	following, err := s.followService.Following(c.Context(), id)
	if err != nil {
		return s.handleError(c, err)
	}

	currentID, _ := middleware.CurrentUserID(c)
	return s.render(c, "users/following", fiber.Map{
		"User":      user,
		"Following": following,
		"IsSelf":    currentID == id,
	})
}

// ShowFollowers handles GET /users/:id/followers.
func (s *Server) ShowFollowers(c *fiber.Ctx) error {
	id, ok := s.parseID(c, "id")
	if !ok {
		return s.renderNotFound(c)
	}

	user, err := s.userService.GetUserByID(c.Context(), id)
	if err != nil {
		return s.handleError(c, err)
	}

	followers, err := s.followService.Followers(c.Context(), id)
	if err != nil {
		return s.handleError(c, err)
	}

	return s.render(c, "users/followers", fiber.Map{
		"User":      user,
		"Followers": followers,
	})
}

// FollowUser handles POST /users/follow/:id.
func (s *Server) FollowUser(c *fiber.Ctx) error {
	id, ok := s.parseID(c, "id")
	if !ok {
		return s.renderNotFound(c)
	}
	userID, _ := middleware.CurrentUserID(c)

	if err := s.followService.Follow(c.Context(), userID, id); err != nil {
		// Re-following is harmless; land back on the list either way.
		if !models.IsConflict(err) && !models.IsValidation(err) {
			return s.handleError(c, err)
		}
	}
	return c.Redirect(fmt.Sprintf("/users/%d/following", userID), fiber.StatusFound)
}

// StopFollowingUser handles POST /users/stop-following/:id.
func (s *Server) StopFollowingUser(c *fiber.Ctx) error {
	id, ok := s.parseID(c, "id")
	if !ok {
		return s.renderNotFound(c)
	}
	userID, _ := middleware.CurrentUserID(c)

	if err := s.followService.Unfollow(c.Context(), userID, id); err != nil {
		return s.handleError(c, err)
	}
	return c.Redirect(fmt.Sprintf("/users/%d/following", userID), fiber.StatusFound)
}

// ShowEditProfile handles GET /users/profile.
func (s *Server) ShowEditProfile(c *fiber.Ctx) error {
	userID, _ := middleware.CurrentUserID(c)

	user, err := s.userService.GetUserByID(c.Context(), userID)
	if err != nil {
		return s.handleError(c, err)
	}
	return s.render(c, "users/edit", fiber.Map{
		"User": user,
	})
}

// UpdateProfile handles POST /users/profile. The submitted password must
// match before any field changes.
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	userID, _ := middleware.CurrentUserID(c)

	user, err := s.userService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID:         userID,
		Username:       c.FormValue("username"),
		Email:          c.FormValue("email"),
		ImageURL:       c.FormValue("image_url"),
		HeaderImageURL: c.FormValue("header_image_url"),
		Bio:            c.FormValue("bio"),
		Location:       c.FormValue("location"),
		Password:       c.FormValue("password"),
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && (appErr.Code == "UNAUTHORIZED" || models.IsValidation(err) || models.IsConflict(err)) {
			current, getErr := s.userService.GetUserByID(c.Context(), userID)
			if getErr != nil {
				return s.handleError(c, getErr)
			}
			c.Status(fiber.StatusOK)
			return s.render(c, "users/edit", fiber.Map{
				"Error": appErr.Message,
				"User":  current,
			})
		}
		return s.handleError(c, err)
	}

	flash.Set(c, flash.CategorySuccess, "Profile updated.")
	return c.Redirect(fmt.Sprintf("/users/%d", user.ID), fiber.StatusFound)
}

// DeleteUser handles POST /users/delete: remove the acting user's account
// and everything attached to it, then end the session.
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	userID, _ := middleware.CurrentUserID(c)

	if err := s.userService.DeleteUser(c.Context(), userID); err != nil {
		return s.handleError(c, err)
	}

	s.clearSessionCookie(c)
	return c.Redirect("/signup", fiber.StatusFound)
}
