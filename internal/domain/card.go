package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Card is a photo posted by a user. Likes is a set of user identities; it is
// never nil so that it serializes as an empty JSON array.
type Card struct {
	ID        uuid.UUID   `json:"_id"`
	Name      string      `json:"name"      validate:"required,notblank,min=2,max=30"`
	Link      string      `json:"link"      validate:"required,http_url"`
	Owner     uuid.UUID   `json:"owner"`
	Likes     []uuid.UUID `json:"likes"`
	CreatedAt time.Time   `json:"createdAt"`
}

// NewCard creates a Card owned by owner with a fresh identity and no likes.
// Returns an error if validation fails.
func NewCard(owner uuid.UUID, name, link string) (*Card, error) {
	card := &Card{
		ID:        uuid.New(),
		Name:      name,
		Link:      link,
		Owner:     owner,
		Likes:     []uuid.UUID{},
		CreatedAt: time.Now().UTC(),
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Card has valid data.
func (c *Card) Validate() error {
	if c.ID == uuid.Nil {
		return NewValidationError("_id", "is required", ErrInvalidID)
	}
	if c.Owner == uuid.Nil {
		return NewValidationError("owner", "is required", ErrInvalidID)
	}
	return ValidateStruct(c)
}

// IsOwnedBy reports whether userID is the card's owner.
func (c *Card) IsOwnedBy(userID uuid.UUID) bool {
	return c.Owner == userID
}

// IsLikedBy reports whether userID is in the likes set.
func (c *Card) IsLikedBy(userID uuid.UUID) bool {
	return slices.Contains(c.Likes, userID)
}
