package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/mesto-api/internal/api/shared"
	"github.com/phrazzld/mesto-api/internal/domain"
	"github.com/phrazzld/mesto-api/internal/platform/logger"
	"github.com/phrazzld/mesto-api/internal/service"
)

// CardHandler serves the /cards routes.
type CardHandler struct {
	cardService service.CardService
	logger      *slog.Logger
}

// NewCardHandler creates a new CardHandler.
func NewCardHandler(cardService service.CardService, logger *slog.Logger) *CardHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CardHandler{
		cardService: cardService,
		logger:      logger.With(slog.String("component", "card_handler")),
	}
}

// ListCards handles GET /cards.
func (h *CardHandler) ListCards(w http.ResponseWriter, r *http.Request) {
	cards, err := h.cardService.ListCards(r.Context())
	if err != nil {
		shared.RespondWithError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, cards)
}

// CreateCard handles POST /cards. The card is owned by the caller.
func (h *CardHandler) CreateCard(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req CreateCardRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	card, err := h.cardService.CreateCard(r.Context(), userID, req.Name, req.Link)
	if err != nil {
		shared.RespondWithError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, card)
}

// DeleteCard handles DELETE /cards/{cardId}. Only the owner may delete.
func (h *CardHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	userID, cardID, ok := h.userAndCardID(w, r)
	if !ok {
		return
	}

	if err := h.cardService.DeleteCard(r.Context(), userID, cardID); err != nil {
		shared.RespondWithError(w, r, err)
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Debug("card deleted", slog.String("card_id", cardID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, shared.MessageResponse{Message: CardDeletedMessage})
}

// LikeCard handles PUT /cards/{cardId}/likes.
func (h *CardHandler) LikeCard(w http.ResponseWriter, r *http.Request) {
	h.changeLike(w, r, h.cardService.LikeCard)
}

// UnlikeCard handles DELETE /cards/{cardId}/likes.
func (h *CardHandler) UnlikeCard(w http.ResponseWriter, r *http.Request) {
	h.changeLike(w, r, h.cardService.UnlikeCard)
}

func (h *CardHandler) changeLike(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, userID, cardID uuid.UUID) (*domain.Card, error),
) {
	userID, cardID, ok := h.userAndCardID(w, r)
	if !ok {
		return
	}

	card, err := op(r.Context(), userID, cardID)
	if err != nil {
		shared.RespondWithError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, card)
}

// userAndCardID reads the caller's ID and the cardId path parameter. The
// card ID is checked first so that a malformed ID is always a 400.
func (h *CardHandler) userAndCardID(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	cardID, err := getPathUUID(r, "cardId")
	if err != nil {
		logger.FromContextOrDefault(r.Context(), h.logger).Debug("invalid card ID",
			slog.String("value", chi.URLParam(r, "cardId")))
		shared.RespondWithError(w, r, err)
		return uuid.Nil, uuid.Nil, false
	}

	userID, ok := requireUserID(w, r)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	return userID, cardID, true
}
