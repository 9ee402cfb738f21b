package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/mesto-api/internal/domain"
	"github.com/phrazzld/mesto-api/internal/redact"
	"github.com/phrazzld/mesto-api/internal/store"
)

// cardSelect reads cards with their likes aggregated into a JSON array.
const cardSelect = `SELECT c.id, c.name, c.link, c.owner_id, c.created_at,
	COALESCE(json_agg(l.user_id ORDER BY l.created_at) FILTER (WHERE l.user_id IS NOT NULL), '[]'::json) AS likes
	FROM cards c
	LEFT JOIN card_likes l ON l.card_id = c.id`

// PostgresCardStore implements store.CardStore on PostgreSQL. Likes live in the
// card_likes table, whose primary key makes each (card, user) pair unique.
type PostgresCardStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresCardStore creates a PostgresCardStore. It needs a *sql.DB rather
// than a DBTX because like operations open their own transactions.
// If logger is nil, the default logger is used.
func NewPostgresCardStore(db *sql.DB, logger *slog.Logger) *PostgresCardStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCardStore{
		db:     db,
		logger: logger.With(slog.String("component", "card_store")),
	}
}

var _ store.CardStore = (*PostgresCardStore)(nil)

func scanCard(row rowScanner) (*domain.Card, error) {
	var (
		c     domain.Card
		likes []byte
	)
	if err := row.Scan(&c.ID, &c.Name, &c.Link, &c.Owner, &c.CreatedAt, &likes); err != nil {
		return nil, err
	}
	c.CreatedAt = c.CreatedAt.UTC()

	c.Likes = []uuid.UUID{}
	if err := json.Unmarshal(likes, &c.Likes); err != nil {
		return nil, fmt.Errorf("failed to decode likes: %w", err)
	}
	return &c, nil
}

// Create implements store.CardStore.Create.
func (s *PostgresCardStore) Create(ctx context.Context, card *domain.Card) error {
	if err := card.Validate(); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO cards (id, name, link, owner_id, created_at) VALUES ($1, $2, $3, $4, $5)`,
		card.ID, card.Name, card.Link, card.Owner, card.CreatedAt)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to insert card",
			slog.String("card_id", card.ID.String()),
			slog.String("owner_id", card.Owner.String()),
			slog.String("error", redact.Error(err)))
		return fmt.Errorf("failed to insert card: %w", MapError(err))
	}

	s.logger.DebugContext(ctx, "card created",
		slog.String("card_id", card.ID.String()),
		slog.String("owner_id", card.Owner.String()))
	return nil
}

// List implements store.CardStore.List.
func (s *PostgresCardStore) List(ctx context.Context) ([]*domain.Card, error) {
	rows, err := s.db.QueryContext(ctx, cardSelect+` GROUP BY c.id ORDER BY c.created_at, c.id`)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list cards", slog.String("error", redact.Error(err)))
		return nil, fmt.Errorf("failed to list cards: %w", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	cards := []*domain.Card{}
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cards: %w", err)
	}

	return cards, nil
}

// GetByID implements store.CardStore.GetByID.
func (s *PostgresCardStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	return s.getCard(ctx, s.db, id)
}

func (s *PostgresCardStore) getCard(ctx context.Context, q store.DBTX, id uuid.UUID) (*domain.Card, error) {
	row := q.QueryRowContext(ctx, cardSelect+` WHERE c.id = $1 GROUP BY c.id`, id)
	c, err := scanCard(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCardNotFound
		}
		s.logger.ErrorContext(ctx, "failed to read card",
			slog.String("card_id", id.String()),
			slog.String("error", redact.Error(err)))
		return nil, fmt.Errorf("failed to read card: %w", MapError(err))
	}
	return c, nil
}

// Delete implements store.CardStore.Delete.
func (s *PostgresCardStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM cards WHERE id = $1`, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to delete card",
			slog.String("card_id", id.String()),
			slog.String("error", redact.Error(err)))
		return fmt.Errorf("failed to delete card: %w", MapError(err))
	}

	if err := CheckRowsAffected(result, store.ErrCardNotFound); err != nil {
		return err
	}

	s.logger.DebugContext(ctx, "card deleted", slog.String("card_id", id.String()))
	return nil
}

// AddLike implements store.CardStore.AddLike.
func (s *PostgresCardStore) AddLike(ctx context.Context, cardID, userID uuid.UUID) (*domain.Card, error) {
	return s.modifyLikes(ctx, cardID, userID,
		`INSERT INTO card_likes (card_id, user_id)
		 SELECT id, $2 FROM cards WHERE id = $1
		 ON CONFLICT (card_id, user_id) DO NOTHING`)
}

// RemoveLike implements store.CardStore.RemoveLike.
func (s *PostgresCardStore) RemoveLike(ctx context.Context, cardID, userID uuid.UUID) (*domain.Card, error) {
	return s.modifyLikes(ctx, cardID, userID,
		`DELETE FROM card_likes WHERE card_id = $1 AND user_id = $2`)
}

// modifyLikes runs stmt and re-reads the card in one transaction so the
// returned likes reflect the change.
func (s *PostgresCardStore) modifyLikes(
	ctx context.Context,
	cardID, userID uuid.UUID,
	stmt string,
) (*domain.Card, error) {
	var card *domain.Card
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, stmt, cardID, userID); err != nil {
			// The card vanished between the lookup and the insert.
			if IsForeignKeyViolation(err) {
				return store.ErrCardNotFound
			}
			s.logger.ErrorContext(ctx, "failed to update likes",
				slog.String("card_id", cardID.String()),
				slog.String("user_id", userID.String()),
				slog.String("error", redact.Error(err)))
			return fmt.Errorf("failed to update likes: %w", MapError(err))
		}

		var err error
		card, err = s.getCard(ctx, tx, cardID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return card, nil
}
