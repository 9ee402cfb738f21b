package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/mesto-api/internal/domain"
	"github.com/phrazzld/mesto-api/internal/redact"
	"github.com/phrazzld/mesto-api/internal/store"
)

// CardService provides card publishing, deletion and like operations.
type CardService interface {
	// ListCards returns every card.
	ListCards(ctx context.Context) ([]*domain.Card, error)

	// CreateCard publishes a card owned by ownerID.
	CreateCard(ctx context.Context, ownerID uuid.UUID, name, link string) (*domain.Card, error)

	// DeleteCard removes a card. The existence check runs before the
	// ownership check, so a missing card is domain.ErrCardNotFound and a
	// foreign card is domain.ErrCardNotOwned.
	DeleteCard(ctx context.Context, userID, cardID uuid.UUID) error

	// LikeCard adds userID to the card's likes. Liking twice is a no-op.
	LikeCard(ctx context.Context, userID, cardID uuid.UUID) (*domain.Card, error)

	// UnlikeCard removes userID from the card's likes. Unliking a card the
	// user never liked is a no-op.
	UnlikeCard(ctx context.Context, userID, cardID uuid.UUID) (*domain.Card, error)
}

type cardServiceImpl struct {
	cardStore store.CardStore
	logger    *slog.Logger
}

// NewCardService creates a CardService.
func NewCardService(cardStore store.CardStore, logger *slog.Logger) (CardService, error) {
	if cardStore == nil {
		return nil, fmt.Errorf("cardStore cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &cardServiceImpl{
		cardStore: cardStore,
		logger:    logger.With("component", "card_service"),
	}, nil
}

// ListCards implements CardService.
func (s *cardServiceImpl) ListCards(ctx context.Context) ([]*domain.Card, error) {
	cards, err := s.cardStore.List(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list cards", "error", redact.Error(err))
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	return cards, nil
}

// CreateCard implements CardService.
func (s *cardServiceImpl) CreateCard(
	ctx context.Context,
	ownerID uuid.UUID,
	name, link string,
) (*domain.Card, error) {
	card, err := domain.NewCard(ownerID, name, link)
	if err != nil {
		return nil, err
	}

	if err := s.cardStore.Create(ctx, card); err != nil {
		// The owner row is gone; the token outlived its user.
		if errors.Is(err, store.ErrInvalidEntity) {
			s.logger.DebugContext(ctx, "card owner does not exist", "owner_id", ownerID)
			return nil, domain.ErrUserNotFound.Wrap(err)
		}
		s.logger.ErrorContext(ctx, "failed to save card",
			"error", redact.Error(err),
			"owner_id", ownerID)
		return nil, fmt.Errorf("failed to create card: %w", err)
	}

	s.logger.InfoContext(ctx, "card created", "card_id", card.ID, "owner_id", ownerID)
	return card, nil
}

// DeleteCard implements CardService.
func (s *cardServiceImpl) DeleteCard(ctx context.Context, userID, cardID uuid.UUID) error {
	card, err := s.cardStore.GetByID(ctx, cardID)
	if err != nil {
		if !errors.Is(err, store.ErrCardNotFound) {
			s.logger.ErrorContext(ctx, "failed to retrieve card for deletion",
				"error", redact.Error(err),
				"card_id", cardID)
		}
		return translateStoreError(err)
	}

	if !card.IsOwnedBy(userID) {
		s.logger.WarnContext(ctx, "card deletion by non-owner rejected",
			"card_id", cardID,
			"user_id", userID,
			"owner_id", card.Owner)
		return domain.ErrCardNotOwned
	}

	if err := s.cardStore.Delete(ctx, cardID); err != nil {
		// Deleted concurrently after the ownership check.
		if errors.Is(err, store.ErrCardNotFound) {
			return translateStoreError(err)
		}
		s.logger.ErrorContext(ctx, "failed to delete card",
			"error", redact.Error(err),
			"card_id", cardID)
		return fmt.Errorf("failed to delete card: %w", err)
	}

	s.logger.InfoContext(ctx, "card deleted", "card_id", cardID, "user_id", userID)
	return nil
}

// LikeCard implements CardService.
func (s *cardServiceImpl) LikeCard(ctx context.Context, userID, cardID uuid.UUID) (*domain.Card, error) {
	card, err := s.cardStore.AddLike(ctx, cardID, userID)
	if err != nil {
		return nil, s.likeError(ctx, "like", err, userID, cardID)
	}
	return card, nil
}

// UnlikeCard implements CardService.
func (s *cardServiceImpl) UnlikeCard(ctx context.Context, userID, cardID uuid.UUID) (*domain.Card, error) {
	card, err := s.cardStore.RemoveLike(ctx, cardID, userID)
	if err != nil {
		return nil, s.likeError(ctx, "unlike", err, userID, cardID)
	}
	return card, nil
}

func (s *cardServiceImpl) likeError(ctx context.Context, op string, err error, userID, cardID uuid.UUID) error {
	if errors.Is(err, store.ErrCardNotFound) {
		return translateStoreError(err)
	}
	s.logger.ErrorContext(ctx, "failed to "+op+" card",
		"error", redact.Error(err),
		"card_id", cardID,
		"user_id", userID)
	return fmt.Errorf("failed to %s card: %w", op, err)
}
