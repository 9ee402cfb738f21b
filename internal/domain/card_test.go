package domain

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCard(t *testing.T) {
	t.Parallel()

	owner := uuid.New()

	t.Run("valid card", func(t *testing.T) {
		t.Parallel()

		card, err := NewCard(owner, "Ball", "http://x/y.png")
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, card.ID)
		assert.Equal(t, owner, card.Owner)
		assert.Equal(t, "Ball", card.Name)
		assert.NotNil(t, card.Likes)
		assert.Empty(t, card.Likes)
		assert.False(t, card.CreatedAt.IsZero())
	})

	tests := []struct {
		name  string
		owner uuid.UUID
		cname string
		link  string
		field string
	}{
		{name: "missing owner", owner: uuid.Nil, cname: "Ball", link: "http://x/y.png", field: "owner"},
		{name: "missing name", owner: owner, cname: "", link: "http://x/y.png", field: "name"},
		{name: "name too short", owner: owner, cname: "B", link: "http://x/y.png", field: "name"},
		{name: "name too long", owner: owner, cname: strings.Repeat("b", 31), link: "http://x/y.png", field: "name"},
		{name: "missing link", owner: owner, cname: "Ball", link: "", field: "link"},
		{name: "link not a url", owner: owner, cname: "Ball", link: "ball.png", field: "link"},
		{name: "link javascript uri", owner: owner, cname: "Ball", link: "javascript:alert(1)", field: "link"},
		{name: "link without host", owner: owner, cname: "Ball", link: "foo:bar", field: "link"},
		{name: "blank name", owner: owner, cname: "   ", link: "http://x/y.png", field: "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			card, err := NewCard(tt.owner, tt.cname, tt.link)
			require.Error(t, err)
			assert.Nil(t, card)

			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.field, ve.Field)
			assert.Equal(t, KindBadRequest, KindOf(err))
		})
	}
}

func TestCardOwnershipAndLikes(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	other := uuid.New()

	card, err := NewCard(owner, "Ball", "http://x/y.png")
	require.NoError(t, err)

	assert.True(t, card.IsOwnedBy(owner))
	assert.False(t, card.IsOwnedBy(other))
	// Equality is on the identity value, not on any particular serialization.
	parsed, err := uuid.Parse(strings.ToUpper(owner.String()))
	require.NoError(t, err)
	assert.True(t, card.IsOwnedBy(parsed))

	assert.False(t, card.IsLikedBy(other))
	card.Likes = append(card.Likes, other)
	assert.True(t, card.IsLikedBy(other))
}

func TestCardJSONShape(t *testing.T) {
	t.Parallel()

	card, err := NewCard(uuid.New(), "Ball", "http://x/y.png")
	require.NoError(t, err)

	data, err := json.Marshal(card)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, card.ID.String(), decoded["_id"])
	assert.Equal(t, card.Owner.String(), decoded["owner"])
	assert.Equal(t, []any{}, decoded["likes"])
	assert.Contains(t, decoded, "createdAt")
}
