package mocks

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/mesto-api/internal/domain"
	"github.com/phrazzld/mesto-api/internal/store"
)

// MockUserStore implements store.UserStore for testing.
type MockUserStore struct {
	CreateFn        func(ctx context.Context, user *domain.User) error
	ListFn          func(ctx context.Context) ([]*domain.User, error)
	GetByIDFn       func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmailFn    func(ctx context.Context, email string) (*domain.User, error)
	UpdateProfileFn func(ctx context.Context, id uuid.UUID, name, about *string) (*domain.User, error)
	UpdateAvatarFn  func(ctx context.Context, id uuid.UUID, avatar string) (*domain.User, error)

	mu    sync.Mutex
	users []*domain.User
}

var _ store.UserStore = (*MockUserStore)(nil)

// NewMockUserStore creates an empty in-memory user store.
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{}
}

func copyUser(u *domain.User) *domain.User {
	c := *u
	return &c
}

// Exists reports whether a user with id is stored.
func (m *MockUserStore) Exists(id uuid.UUID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.indexByID(id) >= 0
}

func (m *MockUserStore) indexByID(id uuid.UUID) int {
	return slices.IndexFunc(m.users, func(u *domain.User) bool { return u.ID == id })
}

// Create implements store.UserStore.
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	email := domain.NormalizeEmail(user.Email)
	if slices.ContainsFunc(m.users, func(u *domain.User) bool { return u.Email == email }) {
		return store.ErrEmailExists
	}
	m.users = append(m.users, copyUser(user))
	return nil
}

// List implements store.UserStore.
func (m *MockUserStore) List(ctx context.Context) ([]*domain.User, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*domain.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, copyUser(u))
	}
	return out, nil
}

// GetByID implements store.UserStore.
func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if i := m.indexByID(id); i >= 0 {
		return copyUser(m.users[i]), nil
	}
	return nil, store.ErrUserNotFound
}

// GetByEmail implements store.UserStore.
func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	email = domain.NormalizeEmail(email)
	for _, u := range m.users {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return nil, store.ErrUserNotFound
}

// UpdateProfile implements store.UserStore.
func (m *MockUserStore) UpdateProfile(
	ctx context.Context,
	id uuid.UUID,
	name, about *string,
) (*domain.User, error) {
	if m.UpdateProfileFn != nil {
		return m.UpdateProfileFn(ctx, id, name, about)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexByID(id)
	if i < 0 {
		return nil, store.ErrUserNotFound
	}
	u := m.users[i]
	if name != nil {
		u.Name = *name
	}
	if about != nil {
		u.About = *about
	}
	u.UpdatedAt = time.Now().UTC()
	return copyUser(u), nil
}

// UpdateAvatar implements store.UserStore.
func (m *MockUserStore) UpdateAvatar(ctx context.Context, id uuid.UUID, avatar string) (*domain.User, error) {
	if m.UpdateAvatarFn != nil {
		return m.UpdateAvatarFn(ctx, id, avatar)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexByID(id)
	if i < 0 {
		return nil, store.ErrUserNotFound
	}
	u := m.users[i]
	u.Avatar = avatar
	u.UpdatedAt = time.Now().UTC()
	return copyUser(u), nil
}
