package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shiiiru/betsmoke/internal/auth"
	"github.com/shiiiru/betsmoke/internal/domain"
	"github.com/shiiiru/betsmoke/internal/service"
)

// BetHandler handles simple and combined bets and their settlement.
type BetHandler struct {
	book *service.Book
}

// NewBetHandler creates a new BetHandler.
func NewBetHandler(book *service.Book) *BetHandler {
	return &BetHandler{book: book}
}

// Place handles POST /api/bets/place.
func (h *BetHandler) Place(w http.ResponseWriter, r *http.Request) {
	var input service.PlaceBetInput
	if !decodeOrReject(w, r, &input) {
		return
	}
	bet, err := h.book.PlaceBet(r.Context(), auth.SubjectFromContext(r.Context()), input)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, bet)
}

// PlaceCombined handles POST /api/bets/combined.
func (h *BetHandler) PlaceCombined(w http.ResponseWriter, r *http.Request) {
	var input service.CombinedBetInput
	if !decodeOrReject(w, r, &input) {
		return
	}
	bet, err := h.book.PlaceCombinedBet(r.Context(), auth.SubjectFromContext(r.Context()), input)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, bet)
}

// My handles GET /api/bets/my.
func (h *BetHandler) My(w http.ResponseWriter, r *http.Request) {
	bets, err := h.book.MyBets(r.Context(), auth.SubjectFromContext(r.Context()))
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, bets)
}

// MyCombined handles GET /api/bets/combined/my.
func (h *BetHandler) MyCombined(w http.ResponseWriter, r *http.Request) {
	bets, err := h.book.MyCombinedBets(r.Context(), auth.SubjectFromContext(r.Context()))
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, bets)
}

// All handles GET /api/bets/all (admin).
func (h *BetHandler) All(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, http.StatusOK, h.book.AllBets(r.Context()))
}

// Validate handles POST /api/bets/{id}/validate (admin).
func (h *BetHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var input service.ValidateBetInput
	if !decodeOrReject(w, r, &input) {
		return
	}
	bet, err := h.book.ValidateBet(r.Context(), domain.ID(chi.URLParam(r, "id")), input)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, bet)
}
