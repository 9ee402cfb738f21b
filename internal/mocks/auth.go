package mocks

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/phrazzld/mesto-api/internal/service/auth"
)

// MockJWTService implements auth.JWTService. By default tokens are
// "token-<user id>" and validate back to that user.
type MockJWTService struct {
	GenerateTokenFn func(ctx context.Context, userID uuid.UUID) (string, error)
	ValidateTokenFn func(ctx context.Context, token string) (*auth.Claims, error)
}

var _ auth.JWTService = (*MockJWTService)(nil)

const mockTokenPrefix = "token-"

// GenerateToken implements auth.JWTService.
func (m *MockJWTService) GenerateToken(ctx context.Context, userID uuid.UUID) (string, error) {
	if m.GenerateTokenFn != nil {
		return m.GenerateTokenFn(ctx, userID)
	}
	return mockTokenPrefix + userID.String(), nil
}

// ValidateToken implements auth.JWTService.
func (m *MockJWTService) ValidateToken(ctx context.Context, token string) (*auth.Claims, error) {
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, token)
	}
	raw, ok := strings.CutPrefix(token, mockTokenPrefix)
	if !ok {
		return nil, auth.ErrInvalidToken
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, auth.ErrInvalidToken
	}
	return &auth.Claims{UserID: id, Subject: id.String()}, nil
}

// MockPasswordHasher implements auth.PasswordHasher and auth.PasswordVerifier
// with a reversible "hashed:" prefix so tests stay fast.
type MockPasswordHasher struct {
	HashFn    func(ctx context.Context, password string) (string, error)
	CompareFn func(ctx context.Context, hashedPassword, password string) error

	// CompareCalls counts Compare invocations, including ones for unknown accounts.
	CompareCalls atomic.Int64
}

var (
	_ auth.PasswordHasher   = (*MockPasswordHasher)(nil)
	_ auth.PasswordVerifier = (*MockPasswordHasher)(nil)
)

const mockHashPrefix = "hashed:"

// Hash implements auth.PasswordHasher.
func (m *MockPasswordHasher) Hash(ctx context.Context, password string) (string, error) {
	if m.HashFn != nil {
		return m.HashFn(ctx, password)
	}
	return mockHashPrefix + password, nil
}

// Compare implements auth.PasswordVerifier.
func (m *MockPasswordHasher) Compare(ctx context.Context, hashedPassword, password string) error {
	m.CompareCalls.Add(1)
	if m.CompareFn != nil {
		return m.CompareFn(ctx, hashedPassword, password)
	}
	if hashedPassword == "" || hashedPassword != mockHashPrefix+password {
		return auth.ErrPasswordMismatch
	}
	return nil
}
