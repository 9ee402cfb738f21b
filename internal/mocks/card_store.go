package mocks

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/mesto-api/internal/domain"
	"github.com/phrazzld/mesto-api/internal/store"
)

// MockCardStore implements store.CardStore for testing. When Users is set,
// Create rejects owners it does not contain, mirroring the foreign key.
type MockCardStore struct {
	CreateFn     func(ctx context.Context, card *domain.Card) error
	ListFn       func(ctx context.Context) ([]*domain.Card, error)
	GetByIDFn    func(ctx context.Context, id uuid.UUID) (*domain.Card, error)
	DeleteFn     func(ctx context.Context, id uuid.UUID) error
	AddLikeFn    func(ctx context.Context, cardID, userID uuid.UUID) (*domain.Card, error)
	RemoveLikeFn func(ctx context.Context, cardID, userID uuid.UUID) (*domain.Card, error)

	Users *MockUserStore

	mu    sync.Mutex
	cards []*domain.Card
}

var _ store.CardStore = (*MockCardStore)(nil)

// NewMockCardStore creates an empty in-memory card store. users may be nil.
func NewMockCardStore(users *MockUserStore) *MockCardStore {
	return &MockCardStore{Users: users}
}

func copyCard(c *domain.Card) *domain.Card {
	out := *c
	out.Likes = slices.Clone(c.Likes)
	if out.Likes == nil {
		out.Likes = []uuid.UUID{}
	}
	return &out
}

func (m *MockCardStore) indexByID(id uuid.UUID) int {
	return slices.IndexFunc(m.cards, func(c *domain.Card) bool { return c.ID == id })
}

// Create implements store.CardStore.
func (m *MockCardStore) Create(ctx context.Context, card *domain.Card) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, card)
	}
	if m.Users != nil && !m.Users.Exists(card.Owner) {
		return fmt.Errorf("%w: owner %s does not exist", store.ErrInvalidEntity, card.Owner)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.cards = append(m.cards, copyCard(card))
	return nil
}

// List implements store.CardStore.
func (m *MockCardStore) List(ctx context.Context) ([]*domain.Card, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*domain.Card, 0, len(m.cards))
	for _, c := range m.cards {
		out = append(out, copyCard(c))
	}
	return out, nil
}

// GetByID implements store.CardStore.
func (m *MockCardStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if i := m.indexByID(id); i >= 0 {
		return copyCard(m.cards[i]), nil
	}
	return nil, store.ErrCardNotFound
}

// Delete implements store.CardStore.
func (m *MockCardStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexByID(id)
	if i < 0 {
		return store.ErrCardNotFound
	}
	m.cards = slices.Delete(m.cards, i, i+1)
	return nil
}

// AddLike implements store.CardStore.
func (m *MockCardStore) AddLike(ctx context.Context, cardID, userID uuid.UUID) (*domain.Card, error) {
	if m.AddLikeFn != nil {
		return m.AddLikeFn(ctx, cardID, userID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexByID(cardID)
	if i < 0 {
		return nil, store.ErrCardNotFound
	}
	c := m.cards[i]
	if !c.IsLikedBy(userID) {
		c.Likes = append(c.Likes, userID)
	}
	return copyCard(c), nil
}

// RemoveLike implements store.CardStore.
func (m *MockCardStore) RemoveLike(ctx context.Context, cardID, userID uuid.UUID) (*domain.Card, error) {
	if m.RemoveLikeFn != nil {
		return m.RemoveLikeFn(ctx, cardID, userID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexByID(cardID)
	if i < 0 {
		return nil, store.ErrCardNotFound
	}
	c := m.cards[i]
	c.Likes = slices.DeleteFunc(c.Likes, func(id uuid.UUID) bool { return id == userID })
	return copyCard(c), nil
}
