package postgres

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/mesto-api/internal/domain"
	"github.com/phrazzld/mesto-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cardRowColumns = []string{"id", "name", "link", "owner_id", "created_at", "likes"}

func newTestCard(t *testing.T, owner uuid.UUID) *domain.Card {
	t.Helper()
	c, err := domain.NewCard(owner, "Ball", "http://x/y.png")
	require.NoError(t, err)
	return c
}

func likesJSON(ids ...uuid.UUID) []byte {
	quoted := make([]string, len(ids))
	for i, id := range ids {
		quoted[i] = fmt.Sprintf("%q", id.String())
	}
	return []byte("[" + strings.Join(quoted, ",") + "]")
}

func cardRows(c *domain.Card, likes ...uuid.UUID) *sqlmock.Rows {
	return sqlmock.NewRows(cardRowColumns).
		AddRow(c.ID.String(), c.Name, c.Link, c.Owner.String(), c.CreatedAt, likesJSON(likes...))
}

func TestPostgresCardStore_Create(t *testing.T) {
	t.Parallel()

	t.Run("inserts card", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		s := NewPostgresCardStore(db, discardLogger())
		c := newTestCard(t, uuid.New())

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO cards")).
			WithArgs(c.ID, c.Name, c.Link, c.Owner, c.CreatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, s.Create(context.Background(), c))
	})

	t.Run("unknown owner", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		s := NewPostgresCardStore(db, discardLogger())

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO cards")).
			WillReturnError(&pgconn.PgError{Code: foreignKeyViolationCode, ConstraintName: "cards_owner_id_fkey"})

		err := s.Create(context.Background(), newTestCard(t, uuid.New()))
		assert.ErrorIs(t, err, store.ErrInvalidEntity)
	})
}

func TestPostgresCardStore_GetByID(t *testing.T) {
	t.Parallel()

	t.Run("decodes likes", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		s := NewPostgresCardStore(db, discardLogger())
		c := newTestCard(t, uuid.New())
		liker := uuid.New()

		mock.ExpectQuery(regexp.QuoteMeta("WHERE c.id = $1")).
			WithArgs(c.ID).
			WillReturnRows(cardRows(c, liker))

		got, err := s.GetByID(context.Background(), c.ID)
		require.NoError(t, err)
		assert.Equal(t, c.ID, got.ID)
		assert.Equal(t, c.Owner, got.Owner)
		assert.Equal(t, []uuid.UUID{liker}, got.Likes)
	})

	t.Run("no likes yields empty slice", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		s := NewPostgresCardStore(db, discardLogger())
		c := newTestCard(t, uuid.New())

		mock.ExpectQuery(regexp.QuoteMeta("WHERE c.id = $1")).WillReturnRows(cardRows(c))

		got, err := s.GetByID(context.Background(), c.ID)
		require.NoError(t, err)
		assert.NotNil(t, got.Likes)
		assert.Empty(t, got.Likes)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		s := NewPostgresCardStore(db, discardLogger())

		mock.ExpectQuery(regexp.QuoteMeta("WHERE c.id = $1")).
			WillReturnRows(sqlmock.NewRows(cardRowColumns))

		_, err := s.GetByID(context.Background(), uuid.New())
		assert.ErrorIs(t, err, store.ErrCardNotFound)
	})
}

func TestPostgresCardStore_List(t *testing.T) {
	t.Parallel()
	db, mock := newMockDB(t)
	s := NewPostgresCardStore(db, discardLogger())
	a, b := newTestCard(t, uuid.New()), newTestCard(t, uuid.New())

	rows := sqlmock.NewRows(cardRowColumns).
		AddRow(a.ID.String(), a.Name, a.Link, a.Owner.String(), a.CreatedAt, likesJSON()).
		AddRow(b.ID.String(), b.Name, b.Link, b.Owner.String(), b.CreatedAt, likesJSON(a.Owner))
	mock.ExpectQuery(regexp.QuoteMeta("GROUP BY c.id ORDER BY c.created_at")).WillReturnRows(rows)

	cards, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, a.ID, cards[0].ID)
	assert.Equal(t, []uuid.UUID{a.Owner}, cards[1].Likes)
}

func TestPostgresCardStore_Delete(t *testing.T) {
	t.Parallel()

	t.Run("deletes", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		s := NewPostgresCardStore(db, discardLogger())
		id := uuid.New()

		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM cards WHERE id = $1")).
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, s.Delete(context.Background(), id))
	})

	t.Run("missing card", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		s := NewPostgresCardStore(db, discardLogger())

		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM cards WHERE id = $1")).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, s.Delete(context.Background(), uuid.New()), store.ErrCardNotFound)
	})
}

func TestPostgresCardStore_AddLike(t *testing.T) {
	t.Parallel()

	t.Run("adds like and returns updated card", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		s := NewPostgresCardStore(db, discardLogger())
		c := newTestCard(t, uuid.New())
		liker := uuid.New()

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO card_likes")).
			WithArgs(c.ID, liker).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(regexp.QuoteMeta("WHERE c.id = $1")).
			WithArgs(c.ID).
			WillReturnRows(cardRows(c, liker))
		mock.ExpectCommit()

		got, err := s.AddLike(context.Background(), c.ID, liker)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{liker}, got.Likes)
	})

	t.Run("repeated like is a no-op", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		s := NewPostgresCardStore(db, discardLogger())
		c := newTestCard(t, uuid.New())
		liker := uuid.New()

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (card_id, user_id) DO NOTHING")).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(regexp.QuoteMeta("WHERE c.id = $1")).WillReturnRows(cardRows(c, liker))
		mock.ExpectCommit()

		got, err := s.AddLike(context.Background(), c.ID, liker)
		require.NoError(t, err)
		assert.Len(t, got.Likes, 1)
	})

	t.Run("missing card rolls back", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		s := NewPostgresCardStore(db, discardLogger())

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO card_likes")).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(regexp.QuoteMeta("WHERE c.id = $1")).
			WillReturnRows(sqlmock.NewRows(cardRowColumns))
		mock.ExpectRollback()

		_, err := s.AddLike(context.Background(), uuid.New(), uuid.New())
		assert.ErrorIs(t, err, store.ErrCardNotFound)
	})

	t.Run("card deleted concurrently", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		s := NewPostgresCardStore(db, discardLogger())

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO card_likes")).
			WillReturnError(&pgconn.PgError{Code: foreignKeyViolationCode})
		mock.ExpectRollback()

		_, err := s.AddLike(context.Background(), uuid.New(), uuid.New())
		assert.ErrorIs(t, err, store.ErrCardNotFound)
	})
}

func TestPostgresCardStore_RemoveLike(t *testing.T) {
	t.Parallel()

	t.Run("removes like", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		s := NewPostgresCardStore(db, discardLogger())
		c := newTestCard(t, uuid.New())
		liker := uuid.New()

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM card_likes WHERE card_id = $1 AND user_id = $2")).
			WithArgs(c.ID, liker).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(regexp.QuoteMeta("WHERE c.id = $1")).WillReturnRows(cardRows(c))
		mock.ExpectCommit()

		got, err := s.RemoveLike(context.Background(), c.ID, liker)
		require.NoError(t, err)
		assert.Empty(t, got.Likes)
	})

	t.Run("driver failure", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		s := NewPostgresCardStore(db, discardLogger())

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM card_likes")).
			WillReturnError(errors.New("connection reset"))
		mock.ExpectRollback()

		_, err := s.RemoveLike(context.Background(), uuid.New(), uuid.New())
		require.Error(t, err)
		assert.False(t, store.IsNotFoundError(err))
	})
}
