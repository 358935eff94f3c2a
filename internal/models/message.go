// Package models contains data structures for the application's domain models.
package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// MaxMessageLength bounds warble text, matching the new-message form limit.
const MaxMessageLength = 140

// Message represents a single warble: a short text post owned by a user.
// Messages are immutable once created except for deletion.
type Message struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Text      string    `gorm:"size:140;not null" json:"text"`
	Timestamp time.Time `gorm:"not null;index" json:"timestamp"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
}

// BeforeCreate stamps the creation time in UTC when the caller did not
// supply one.
func (m *Message) BeforeCreate(_ *gorm.DB) error {
	if m.Timestamp.IsZero() {
		m.Timestamp = time.Now().UTC()
	}
	return nil
}

// String renders the diagnostic representation used in logs and tests.
func (m *Message) String() string {
	return fmt.Sprintf("<Message #%d created at %s by User #%d with message: %s>",
		m.ID, m.Timestamp, m.UserID, m.Text)
}
