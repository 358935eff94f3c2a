// Package flash carries one-time user-visible status messages across a
// redirect. The pending message rides in its own short-lived cookie so it
// works for anonymous visitors who have no session yet.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
)

const cookieName = "warbler_flash"

// Categories mirror the bootstrap alert classes the templates use.
const (
	CategorySuccess = "success"
	CategoryDanger  = "danger"
	CategoryInfo    = "info"
)

// Message is a one-time status string attached to the next rendered page.
type Message struct {
	Category string `json:"category"`
	Text     string `json:"text"`
}

// Set queues a flash message for the next request.
func Set(c *fiber.Ctx, category, text string) {
	payload, err := json.Marshal(Message{Category: category, Text: text})
	if err != nil {
		return
	}
	c.Cookie(&fiber.Cookie{
		Name:     cookieName,
		Value:    base64.RawURLEncoding.EncodeToString(payload),
		Path:     "/",
		MaxAge:   300,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// Pop returns the pending flash message, if any, and clears it so it is
// shown exactly once.
func Pop(c *fiber.Ctx) (Message, bool) {
	raw := c.Cookies(cookieName)
	if raw == "" {
		return Message{}, false
	}

	c.Cookie(&fiber.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	payload, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return Message{}, false
	}
	var msg Message
	if err := json.Unmarshal(payload, &msg); err != nil {
		return Message{}, false
	}
	return msg, true
}
