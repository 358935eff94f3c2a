package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"warbler/internal/auth"
	"warbler/internal/config"
	"warbler/internal/models"
	"warbler/internal/repository"
	"warbler/internal/service"
	"warbler/internal/session"
	"warbler/web"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestServer(t *testing.T) (*fiber.App, *Server, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Message{}, &models.Follow{}))

	cfg := &config.Config{
		Env:             "test",
		Port:            "8253",
		SessionSecret:   "handler-test-session-secret",
		SessionTTLHours: 1,
	}

	userRepo := repository.NewUserRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	followRepo := repository.NewFollowRepository(db)

	s := &Server{
		config:      cfg,
		db:          db,
		sessions:    session.NewManager(session.NewMemoryStore(), cfg.SessionSecret, time.Hour),
		userRepo:    userRepo,
		messageRepo: messageRepo,
		followRepo:  followRepo,
	}
	s.userService = service.NewUserService(userRepo)
	s.messageService = service.NewMessageService(messageRepo)
	s.followService = service.NewFollowService(followRepo, userRepo)

	app := fiber.New(fiber.Config{Views: web.NewEngine()})
	app.Use(func(c *fiber.Ctx) error {
		token := c.Cookies(session.CookieName)
		if token != "" {
			if userID, ok := s.sessions.Resolve(c.Context(), token); ok {
				c.Locals("userID", userID)
			}
		}
		return c.Next()
	})
	s.SetupRoutes(app)

	return app, s, db
}

func createUser(t *testing.T, db *gorm.DB, username, password string) *models.User {
	t.Helper()
	hashed, err := auth.HashPassword(password)
	require.NoError(t, err)
	user := &models.User{
		Username: username,
		Email:    fmt.Sprintf("%s@test.com", username),
		Password: hashed,
		ImageURL: models.DefaultImageURL,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// sessionCookie issues a real session for the user and returns the cookie
// header value to attach to requests.
func sessionCookie(t *testing.T, s *Server, userID uint) string {
	t.Helper()
	token, err := s.sessions.Issue(context.Background(), userID)
	require.NoError(t, err)
	return session.CookieName + "=" + token
}

func doRequest(t *testing.T, app *fiber.App, method, target, cookie string, form url.Values) *http.Response {
	t.Helper()

	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()
	return string(body)
}

// followRedirect performs a GET on the redirect target carrying over both the
// original request cookie and any cookies the redirect response set (e.g. a
// pending flash message).
func followRedirect(t *testing.T, app *fiber.App, resp *http.Response, cookie string) *http.Response {
	t.Helper()

	location := resp.Header.Get("Location")
	require.NotEmpty(t, location, "expected a redirect Location header")

	var parts []string
	if cookie != "" {
		parts = append(parts, cookie)
	}
	for _, sc := range resp.Header.Values("Set-Cookie") {
		if pair, _, ok := strings.Cut(sc, ";"); ok {
			parts = append(parts, pair)
		} else {
			parts = append(parts, sc)
		}
	}

	return doRequest(t, app, http.MethodGet, location, strings.Join(parts, "; "), nil)
}
