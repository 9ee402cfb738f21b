package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/mesto-api/internal/domain"
)

// CardStore defines the interface for card data persistence.
type CardStore interface {
	// Create saves a new card.
	// Returns ErrInvalidEntity if the owner does not reference an existing user.
	Create(ctx context.Context, card *domain.Card) error

	// List returns every card with its likes, ordered by creation time.
	List(ctx context.Context) ([]*domain.Card, error)

	// GetByID retrieves a card and its likes.
	// Returns ErrCardNotFound if the card does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error)

	// Delete removes a card and, through cascading, its likes.
	// Returns ErrCardNotFound if the card does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// AddLike adds userID to the card's likes if absent and returns the card.
	// Adding an existing like is a no-op. Returns ErrCardNotFound if the card
	// does not exist.
	AddLike(ctx context.Context, cardID, userID uuid.UUID) (*domain.Card, error)

	// RemoveLike removes userID from the card's likes if present and returns the
	// card. Removing an absent like is a no-op. Returns ErrCardNotFound if the
	// card does not exist.
	RemoveLike(ctx context.Context, cardID, userID uuid.UUID) (*domain.Card, error)
}
