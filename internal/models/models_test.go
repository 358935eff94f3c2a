package models

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserString(t *testing.T) {
	u := &User{ID: 42, Username: "testuser", Email: "test@test.com"}
	assert.Equal(t, "<User #42: testuser, test@test.com>", u.String())
}

func TestMessageString(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	m := &Message{ID: 7, Text: "Comment", Timestamp: ts, UserID: 1}
	expected := fmt.Sprintf("<Message #7 created at %s by User #1 with message: Comment>", ts)
	assert.Equal(t, expected, m.String())
}

func TestMessageBeforeCreate_DefaultsTimestamp(t *testing.T) {
	m := &Message{Text: "Hello", UserID: 1}
	require.NoError(t, m.BeforeCreate(nil))
	assert.False(t, m.Timestamp.IsZero())
	assert.Equal(t, time.UTC, m.Timestamp.Location())

	// An explicit timestamp is preserved.
	ts := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	m2 := &Message{Text: "Hello", UserID: 1, Timestamp: ts}
	require.NoError(t, m2.BeforeCreate(nil))
	assert.Equal(t, ts, m2.Timestamp)
}

func TestAppErrorPredicates(t *testing.T) {
	assert.True(t, IsNotFound(NewNotFoundError("User", 1)))
	assert.True(t, IsConflict(NewConflictError("User already exists", nil)))
	assert.True(t, IsValidation(NewValidationError("missing field")))
	assert.True(t, IsForbidden(NewForbiddenError("not the owner")))
	assert.False(t, IsNotFound(NewValidationError("missing field")))
	assert.False(t, IsConflict(nil))
}

func TestAppErrorUnwrap(t *testing.T) {
	inner := fmt.Errorf("duplicate key value violates unique constraint")
	err := NewConflictError("User already exists", inner)
	assert.ErrorContains(t, err, "User already exists")
	assert.Equal(t, inner, err.Unwrap())
}
