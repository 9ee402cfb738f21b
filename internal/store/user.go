package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/mesto-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user, including its HashedPassword.
	// Returns ErrEmailExists if the email is already taken.
	Create(ctx context.Context, user *domain.User) error

	// List returns every user ordered by creation time.
	List(ctx context.Context) ([]*domain.User, error)

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by email, including the normally hidden
	// HashedPassword. Returns ErrUserNotFound if no user has that email.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// UpdateProfile atomically sets name and/or about; nil leaves a field unchanged.
	// Returns the updated user or ErrUserNotFound.
	UpdateProfile(ctx context.Context, id uuid.UUID, name, about *string) (*domain.User, error)

	// UpdateAvatar atomically sets the avatar URL.
	// Returns the updated user or ErrUserNotFound.
	UpdateAvatar(ctx context.Context, id uuid.UUID, avatar string) (*domain.User, error)
}
