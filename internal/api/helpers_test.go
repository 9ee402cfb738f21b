package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/mesto-api/internal/api/shared"
	"github.com/phrazzld/mesto-api/internal/domain"
	"github.com/phrazzld/mesto-api/internal/mocks"
	"github.com/phrazzld/mesto-api/internal/service"
	"github.com/stretchr/testify/require"
)

// handlerFixture wires the handlers to in-memory stores behind a chi router.
// Requests made with a non-nil user ID carry it in the context as the auth
// middleware would.
type handlerFixture struct {
	users  *mocks.MockUserStore
	cards  *mocks.MockCardStore
	router chi.Router
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	users := mocks.NewMockUserStore()
	cards := mocks.NewMockCardStore(users)
	hasher := &mocks.MockPasswordHasher{}

	userService, err := service.NewUserService(users, hasher, hasher, log)
	require.NoError(t, err)
	cardService, err := service.NewCardService(cards, log)
	require.NoError(t, err)

	authHandler := NewAuthHandler(userService, &mocks.MockJWTService{}, log)
	userHandler := NewUserHandler(userService, log)
	cardHandler := NewCardHandler(cardService, log)

	r := chi.NewRouter()
	r.Post("/signup", authHandler.Signup)
	r.Post("/signin", authHandler.Signin)
	r.Get("/users", userHandler.ListUsers)
	r.Get("/users/me", userHandler.GetCurrentUser)
	r.Patch("/users/me", userHandler.UpdateProfile)
	r.Patch("/users/me/avatar", userHandler.UpdateAvatar)
	r.Get("/users/{userId}", userHandler.GetUser)
	r.Get("/cards", cardHandler.ListCards)
	r.Post("/cards", cardHandler.CreateCard)
	r.Delete("/cards/{cardId}", cardHandler.DeleteCard)
	r.Put("/cards/{cardId}/likes", cardHandler.LikeCard)
	r.Delete("/cards/{cardId}/likes", cardHandler.UnlikeCard)

	return &handlerFixture{users: users, cards: cards, router: r}
}

func (f *handlerFixture) do(t *testing.T, method, path, body string, userID uuid.UUID) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != uuid.Nil {
		req = req.WithContext(shared.WithUserID(req.Context(), userID))
	}

	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)
	return rr
}

func (f *handlerFixture) seedUser(t *testing.T, email string) *domain.User {
	t.Helper()
	user, err := domain.NewUser(email, "", "", "")
	require.NoError(t, err)
	user.HashedPassword = "hashed:secret"
	require.NoError(t, f.users.Create(context.Background(), user))
	return user
}

func (f *handlerFixture) seedCard(t *testing.T, owner uuid.UUID) *domain.Card {
	t.Helper()
	card, err := domain.NewCard(owner, "Байкал", "https://example.com/baikal.jpg")
	require.NoError(t, err)
	require.NoError(t, f.cards.Create(context.Background(), card))
	return card
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), "body: %s", rr.Body.String())
	return out
}

func errorMessage(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	return decodeBody[shared.ErrorResponse](t, rr).Message
}

func requireStatus(t *testing.T, want int, rr *httptest.ResponseRecorder) {
	t.Helper()
	require.Equal(t, want, rr.Code, "body: %s", rr.Body.String())
}
