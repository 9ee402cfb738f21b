package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/mesto-api/internal/domain"
	"github.com/phrazzld/mesto-api/internal/redact"
	"github.com/phrazzld/mesto-api/internal/service/auth"
	"github.com/phrazzld/mesto-api/internal/store"
)

// CreateUserParams carries signup input. Empty profile fields take defaults.
type CreateUserParams struct {
	Email    string
	Password string
	Name     string
	About    string
	Avatar   string
}

// UserService provides user registration, authentication and profile operations.
type UserService interface {
	// ListUsers returns every user.
	ListUsers(ctx context.Context) ([]*domain.User, error)

	// GetUser returns the user with userID or domain.ErrUserNotFound.
	GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)

	// GetCurrentUser returns the authenticated user's record.
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)

	// CreateUser registers a user. Returns domain.ErrEmailExists when the
	// email is taken and a *domain.ValidationError for bad input.
	CreateUser(ctx context.Context, params CreateUserParams) (*domain.User, error)

	// UpdateProfile changes name and/or about. A nil field is left unchanged.
	UpdateProfile(ctx context.Context, userID uuid.UUID, name, about *string) (*domain.User, error)

	// UpdateAvatar replaces the avatar URL.
	UpdateAvatar(ctx context.Context, userID uuid.UUID, avatar string) (*domain.User, error)

	// Authenticate checks credentials and returns the user's ID, or
	// domain.ErrInvalidCredentials without saying which part was wrong.
	Authenticate(ctx context.Context, email, password string) (uuid.UUID, error)
}

type userServiceImpl struct {
	userStore store.UserStore
	hasher    auth.PasswordHasher
	verifier  auth.PasswordVerifier
	logger    *slog.Logger
}

// NewUserService creates a UserService.
func NewUserService(
	userStore store.UserStore,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	logger *slog.Logger,
) (UserService, error) {
	if userStore == nil {
		return nil, fmt.Errorf("userStore cannot be nil")
	}
	if hasher == nil {
		return nil, fmt.Errorf("hasher cannot be nil")
	}
	if verifier == nil {
		return nil, fmt.Errorf("verifier cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &userServiceImpl{
		userStore: userStore,
		hasher:    hasher,
		verifier:  verifier,
		logger:    logger.With("component", "user_service"),
	}, nil
}

// ListUsers implements UserService.
func (s *userServiceImpl) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.userStore.List(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list users", "error", redact.Error(err))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// GetUser implements UserService.
func (s *userServiceImpl) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			s.logger.ErrorContext(ctx, "failed to retrieve user", "error", redact.Error(err), "user_id", userID)
		}
		return nil, translateStoreError(err)
	}
	return user, nil
}

// GetCurrentUser implements UserService. A valid token for a user that has
// since disappeared yields domain.ErrUserNotFound.
func (s *userServiceImpl) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return s.GetUser(ctx, userID)
}

// CreateUser implements UserService.
func (s *userServiceImpl) CreateUser(ctx context.Context, params CreateUserParams) (*domain.User, error) {
	if err := domain.ValidatePassword(params.Password); err != nil {
		return nil, err
	}

	user, err := domain.NewUser(params.Email, params.Name, params.About, params.Avatar)
	if err != nil {
		return nil, err
	}

	// The unique index is the real guard; this check only avoids hashing for
	// an obviously taken address.
	if _, err := s.userStore.GetByEmail(ctx, user.Email); err == nil {
		s.logger.DebugContext(ctx, "signup with existing email rejected")
		return nil, domain.ErrEmailExists
	} else if !errors.Is(err, store.ErrUserNotFound) {
		s.logger.ErrorContext(ctx, "failed to check existing email", "error", redact.Error(err))
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}

	hashed, err := s.hasher.Hash(ctx, params.Password)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to hash password", "error", redact.Error(err))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.HashedPassword = hashed

	if err := s.userStore.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			s.logger.DebugContext(ctx, "signup lost race for email")
			return nil, translateStoreError(err)
		}
		s.logger.ErrorContext(ctx, "failed to save user", "error", redact.Error(err), "user_id", user.ID)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.InfoContext(ctx, "user created", "user_id", user.ID)
	return user, nil
}

// UpdateProfile implements UserService.
func (s *userServiceImpl) UpdateProfile(
	ctx context.Context,
	userID uuid.UUID,
	name, about *string,
) (*domain.User, error) {
	if err := (domain.ProfileUpdate{Name: name, About: about}).Validate(); err != nil {
		return nil, err
	}

	user, err := s.userStore.UpdateProfile(ctx, userID, name, about)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			s.logger.ErrorContext(ctx, "failed to update profile", "error", redact.Error(err), "user_id", userID)
		}
		return nil, translateStoreError(err)
	}

	s.logger.DebugContext(ctx, "profile updated", "user_id", userID)
	return user, nil
}

// UpdateAvatar implements UserService.
func (s *userServiceImpl) UpdateAvatar(ctx context.Context, userID uuid.UUID, avatar string) (*domain.User, error) {
	if err := domain.ValidateAvatar(avatar); err != nil {
		return nil, err
	}

	user, err := s.userStore.UpdateAvatar(ctx, userID, avatar)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			s.logger.ErrorContext(ctx, "failed to update avatar", "error", redact.Error(err), "user_id", userID)
		}
		return nil, translateStoreError(err)
	}

	s.logger.DebugContext(ctx, "avatar updated", "user_id", userID)
	return user, nil
}

// Authenticate implements UserService.
func (s *userServiceImpl) Authenticate(ctx context.Context, email, password string) (uuid.UUID, error) {
	if email == "" || password == "" {
		return uuid.Nil, domain.ErrInvalidCredentials
	}

	var hashed string
	user, err := s.userStore.GetByEmail(ctx, email)
	switch {
	case err == nil:
		hashed = user.HashedPassword
	case errors.Is(err, store.ErrUserNotFound):
		// Compare with an empty digest still costs a full bcrypt round.
	default:
		s.logger.ErrorContext(ctx, "failed to look up user for signin", "error", redact.Error(err))
		return uuid.Nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.verifier.Compare(ctx, hashed, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			s.logger.DebugContext(ctx, "signin rejected")
			return uuid.Nil, domain.ErrInvalidCredentials
		}
		s.logger.ErrorContext(ctx, "failed to verify password", "error", redact.Error(err))
		return uuid.Nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if user == nil {
		return uuid.Nil, domain.ErrInvalidCredentials
	}

	return user.ID, nil
}
