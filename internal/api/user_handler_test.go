package api

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/mesto-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserHandler_Read(t *testing.T) {
	t.Parallel()

	f := newHandlerFixture(t)
	alice := f.seedUser(t, "alice@example.com")
	bob := f.seedUser(t, "bob@example.com")

	t.Run("list", func(t *testing.T) {
		rr := f.do(t, http.MethodGet, "/users", "", alice.ID)
		requireStatus(t, http.StatusOK, rr)
		assert.Len(t, decodeBody[[]domain.User](t, rr), 2)
	})

	t.Run("by id", func(t *testing.T) {
		rr := f.do(t, http.MethodGet, "/users/"+bob.ID.String(), "", alice.ID)
		requireStatus(t, http.StatusOK, rr)
		assert.Equal(t, bob.ID, decodeBody[domain.User](t, rr).ID)
	})

	t.Run("me", func(t *testing.T) {
		rr := f.do(t, http.MethodGet, "/users/me", "", alice.ID)
		requireStatus(t, http.StatusOK, rr)
		assert.Equal(t, alice.Email, decodeBody[domain.User](t, rr).Email)
	})

	t.Run("malformed id", func(t *testing.T) {
		rr := f.do(t, http.MethodGet, "/users/12345", "", alice.ID)
		requireStatus(t, http.StatusBadRequest, rr)
		assert.Equal(t, "Invalid identifier", errorMessage(t, rr))
	})

	t.Run("unknown id", func(t *testing.T) {
		rr := f.do(t, http.MethodGet, "/users/"+uuid.NewString(), "", alice.ID)
		requireStatus(t, http.StatusNotFound, rr)
		assert.Equal(t, "User was not found", errorMessage(t, rr))
	})

	t.Run("me without identity", func(t *testing.T) {
		rr := f.do(t, http.MethodGet, "/users/me", "", uuid.Nil)
		requireStatus(t, http.StatusUnauthorized, rr)
		assert.Equal(t, "Authorization required", errorMessage(t, rr))
	})
}

func TestUserHandler_UpdateProfile(t *testing.T) {
	t.Parallel()

	t.Run("partial update keeps other fields", func(t *testing.T) {
		t.Parallel()
		f := newHandlerFixture(t)
		user := f.seedUser(t, "alice@example.com")

		rr := f.do(t, http.MethodPatch, "/users/me", `{"name":"Алиса"}`, user.ID)
		requireStatus(t, http.StatusOK, rr)

		got := decodeBody[domain.User](t, rr)
		assert.Equal(t, "Алиса", got.Name)
		assert.Equal(t, user.About, got.About)
	})

	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"empty name", `{"name":""}`, "name must not be blank"},
		{"blank name", `{"name":"  "}`, "name must not be blank"},
		{"short name", `{"name":"J"}`, "name must be at least 2 characters long"},
		{"long about", `{"about":"` + strings.Repeat("x", 201) + `"}`, "about must be at most 200 characters long"},
		{"malformed body", `name=x`, "Invalid request format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := newHandlerFixture(t)
			user := f.seedUser(t, "alice@example.com")

			rr := f.do(t, http.MethodPatch, "/users/me", tt.body, user.ID)
			requireStatus(t, http.StatusBadRequest, rr)
			assert.Equal(t, tt.message, errorMessage(t, rr))
		})
	}

	t.Run("user vanished", func(t *testing.T) {
		t.Parallel()
		f := newHandlerFixture(t)

		rr := f.do(t, http.MethodPatch, "/users/me", `{"about":"Океанолог"}`, uuid.New())
		requireStatus(t, http.StatusNotFound, rr)
		assert.Equal(t, "User was not found", errorMessage(t, rr))
	})
}

func TestUserHandler_UpdateAvatar(t *testing.T) {
	t.Parallel()

	f := newHandlerFixture(t)
	user := f.seedUser(t, "alice@example.com")

	rr := f.do(t, http.MethodPatch, "/users/me/avatar", `{"avatar":"https://example.com/me.png"}`, user.ID)
	requireStatus(t, http.StatusOK, rr)
	assert.Equal(t, "https://example.com/me.png", decodeBody[domain.User](t, rr).Avatar)

	for _, avatar := range []string{"not a url", "foo:bar", "javascript:alert(1)", "ftp://example.com/me.png"} {
		rr = f.do(t, http.MethodPatch, "/users/me/avatar", `{"avatar":"`+avatar+`"}`, user.ID)
		requireStatus(t, http.StatusBadRequest, rr)
		assert.Equal(t, "avatar must be a valid URL", errorMessage(t, rr), avatar)
	}

	stored, err := f.users.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/me.png", stored.Avatar)
}
