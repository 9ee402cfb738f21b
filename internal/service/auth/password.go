package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

// PasswordHasher derives one-way digests from plaintext passwords.
type PasswordHasher interface {
	Hash(ctx context.Context, password string) (string, error)
}

// PasswordVerifier compares a stored digest with a candidate plaintext.
type PasswordVerifier interface {
	// Compare returns nil when password matches hashedPassword and
	// ErrPasswordMismatch otherwise. An empty hashedPassword still costs one
	// full comparison and always mismatches, so unknown accounts take as long
	// to reject as wrong passwords.
	Compare(ctx context.Context, hashedPassword, password string) error
}

// BcryptHasher implements PasswordHasher and PasswordVerifier with bcrypt.
// A weighted semaphore caps how many digests are computed concurrently.
type BcryptHasher struct {
	cost int
	sem  *semaphore.Weighted

	dummyOnce sync.Once
	dummy     []byte
}

var (
	_ PasswordHasher   = (*BcryptHasher)(nil)
	_ PasswordVerifier = (*BcryptHasher)(nil)
)

// NewBcryptHasher creates a BcryptHasher. maxConcurrent below 1 is treated as 1.
func NewBcryptHasher(cost int, maxConcurrent int64) (*BcryptHasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost %d out of range [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &BcryptHasher{
		cost: cost,
		sem:  semaphore.NewWeighted(maxConcurrent),
	}, nil
}

// Hash implements PasswordHasher.
func (h *BcryptHasher) Hash(ctx context.Context, password string) (string, error) {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return "", fmt.Errorf("waiting for hashing slot: %w", err)
	}
	defer h.sem.Release(1)

	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(digest), nil
}

// Compare implements PasswordVerifier.
func (h *BcryptHasher) Compare(ctx context.Context, hashedPassword, password string) error {
	digest := []byte(hashedPassword)
	if hashedPassword == "" {
		digest = h.dummyDigest()
	}

	if err := h.sem.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("waiting for hashing slot: %w", err)
	}
	defer h.sem.Release(1)

	err := bcrypt.CompareHashAndPassword(digest, []byte(password))
	if hashedPassword == "" {
		return ErrPasswordMismatch
	}
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrPasswordMismatch
		}
		return fmt.Errorf("failed to compare password: %w", err)
	}
	return nil
}

// dummyDigest lazily computes a digest at the configured cost for comparisons
// against accounts that do not exist.
func (h *BcryptHasher) dummyDigest() []byte {
	h.dummyOnce.Do(func() {
		digest, err := bcrypt.GenerateFromPassword([]byte("mesto-timing-equalizer"), h.cost)
		if err == nil {
			h.dummy = digest
		}
	})
	return h.dummy
}
