package server

import (
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"warbler/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListUsers(t *testing.T) {
	t.Parallel()
	app, s, db := setupTestServer(t)

	alice := createUser(t, db, "alice", "password")
	createUser(t, db, "bob", "password")
	cookie := sessionCookie(t, s, alice.ID)

	t.Run("lists everyone", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodGet, "/users", cookie, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body := readBody(t, resp)
		assert.Contains(t, body, "@alice")
		assert.Contains(t, body, "@bob")
	})

	t.Run("filters by username", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodGet, "/users?username=ali", cookie, nil)
		body := readBody(t, resp)
		assert.Contains(t, body, "@alice")
		assert.NotContains(t, body, "@bob")
	})

	t.Run("empty result shows apology", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodGet, "/users?username=penguin", cookie, nil)
		body := readBody(t, resp)
		assert.Contains(t, body, "Sorry, no users found")
	})

	t.Run("anonymous is redirected with flash", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodGet, "/users", "", nil)
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/", resp.Header.Get("Location"))

		home := followRedirect(t, app, resp, "")
		assert.Contains(t, readBody(t, home), "Access unauthorized.")
	})
}

func TestShowUser(t *testing.T) {
	t.Parallel()
	app, s, db := setupTestServer(t)

	alice := createUser(t, db, "alice", "password")
	bob := createUser(t, db, "bob", "password")
	require.NoError(t, db.Create(&models.Message{Text: "bob's warble", UserID: bob.ID}).Error)
	cookie := sessionCookie(t, s, alice.ID)

	t.Run("profile shows user and messages", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodGet, fmt.Sprintf("/users/%d", bob.ID), cookie, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body := readBody(t, resp)
		assert.Contains(t, body, "@bob")
		assert.Contains(t, body, "bob&#39;s warble")
		assert.Contains(t, body, "Follow")
	})

	t.Run("own profile shows edit and delete", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodGet, fmt.Sprintf("/users/%d", alice.ID), cookie, nil)
		body := readBody(t, resp)
		assert.Contains(t, body, "Edit Profile")
		assert.Contains(t, body, "Delete Profile")
	})

	t.Run("missing user is 404", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodGet, "/users/99999", cookie, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("negative id is 404", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodGet, "/users/-1", cookie, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestFollowFlows(t *testing.T) {
	t.Parallel()
	app, s, db := setupTestServer(t)

	alice := createUser(t, db, "alice", "password")
	bob := createUser(t, db, "bob", "password")
	cookie := sessionCookie(t, s, alice.ID)

	t.Run("follow adds edge and redirects", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodPost, fmt.Sprintf("/users/follow/%d", bob.ID), cookie, nil)
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, fmt.Sprintf("/users/%d/following", alice.ID), resp.Header.Get("Location"))

		var count int64
		require.NoError(t, db.Model(&models.Follow{}).
			Where("user_following_id = ? AND user_being_followed_id = ?", alice.ID, bob.ID).
			Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("following page lists bob", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodGet, fmt.Sprintf("/users/%d/following", alice.ID), cookie, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, readBody(t, resp), "@bob")
	})

	t.Run("followers page lists alice", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodGet, fmt.Sprintf("/users/%d/followers", bob.ID), cookie, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, readBody(t, resp), "@alice")
	})

	t.Run("stop-following removes edge", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodPost, fmt.Sprintf("/users/stop-following/%d", bob.ID), cookie, nil)
		assert.Equal(t, http.StatusFound, resp.StatusCode)

		var count int64
		require.NoError(t, db.Model(&models.Follow{}).Count(&count).Error)
		assert.Equal(t, int64(0), count)
	})

	t.Run("follow of missing user is 404", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodPost, "/users/follow/99999", cookie, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("anonymous follow is redirected with flash", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodPost, fmt.Sprintf("/users/follow/%d", bob.ID), "", nil)
		assert.Equal(t, http.StatusFound, resp.StatusCode)

		home := followRedirect(t, app, resp, "")
		assert.Contains(t, readBody(t, home), "Access unauthorized.")
	})
}

func TestUpdateProfile(t *testing.T) {
	t.Parallel()
	app, s, db := setupTestServer(t)

	alice := createUser(t, db, "alice", "testuser")
	cookie := sessionCookie(t, s, alice.ID)

	t.Run("edit form renders current values", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodGet, "/users/profile", cookie, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body := readBody(t, resp)
		assert.Contains(t, body, "Edit Your Profile.")
		assert.Contains(t, body, `value="alice"`)
	})

	t.Run("correct password applies edits", func(t *testing.T) {
		form := url.Values{}
		form.Set("username", "alice2")
		form.Set("email", "alice2@test.com")
		form.Set("bio", "I warble")
		form.Set("password", "testuser")

		resp := doRequest(t, app, http.MethodPost, "/users/profile", cookie, form)
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, fmt.Sprintf("/users/%d", alice.ID), resp.Header.Get("Location"))

		var reloaded models.User
		require.NoError(t, db.First(&reloaded, alice.ID).Error)
		assert.Equal(t, "alice2", reloaded.Username)
		assert.Equal(t, "I warble", reloaded.Bio)
	})

	t.Run("wrong password re-renders with message", func(t *testing.T) {
		form := url.Values{}
		form.Set("username", "hacker")
		form.Set("password", "wrongpassword")

		resp := doRequest(t, app, http.MethodPost, "/users/profile", cookie, form)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, readBody(t, resp), "Incorrect password.")

		var reloaded models.User
		require.NoError(t, db.First(&reloaded, alice.ID).Error)
		assert.NotEqual(t, "hacker", reloaded.Username)
	})

	t.Run("anonymous is redirected", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodGet, "/users/profile", "", nil)
		assert.Equal(t, http.StatusFound, resp.StatusCode)
	})
}

func TestDeleteUser(t *testing.T) {
	t.Parallel()
	app, s, db := setupTestServer(t)

	alice := createUser(t, db, "alice", "password")
	bob := createUser(t, db, "bob", "password")
	require.NoError(t, db.Create(&models.Message{Text: "gone soon", UserID: alice.ID}).Error)
	require.NoError(t, db.Create(&models.Follow{UserFollowingID: alice.ID, UserBeingFollowedID: bob.ID}).Error)

	cookie := sessionCookie(t, s, alice.ID)
	resp := doRequest(t, app, http.MethodPost, "/users/delete", cookie, nil)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/signup", resp.Header.Get("Location"))

	var userCount, msgCount, followCount int64
	require.NoError(t, db.Model(&models.User{}).Count(&userCount).Error)
	require.NoError(t, db.Model(&models.Message{}).Count(&msgCount).Error)
	require.NoError(t, db.Model(&models.Follow{}).Count(&followCount).Error)
	assert.Equal(t, int64(1), userCount)
	assert.Equal(t, int64(0), msgCount)
	assert.Equal(t, int64(0), followCount)

	// The session is gone; the old cookie acts anonymous.
	home := doRequest(t, app, http.MethodGet, "/", cookie, nil)
	assert.Contains(t, readBody(t, home), "What's Happening?")
}
