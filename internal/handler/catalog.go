package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shiiiru/betsmoke/internal/domain"
	"github.com/shiiiru/betsmoke/internal/service"
)

// CatalogHandler serves games and matches.
type CatalogHandler struct {
	book *service.Book
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(book *service.Book) *CatalogHandler {
	return &CatalogHandler{book: book}
}

// CreateGame handles POST /api/games (admin).
func (h *CatalogHandler) CreateGame(w http.ResponseWriter, r *http.Request) {
	var input service.CreateGameInput
	if !decodeOrReject(w, r, &input) {
		return
	}
	game, err := h.book.CreateGame(r.Context(), input)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, game)
}

// ListGames handles GET /api/games.
func (h *CatalogHandler) ListGames(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, http.StatusOK, h.book.ListGames(r.Context()))
}

// CreateMatch handles POST /api/matches (admin).
func (h *CatalogHandler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	var input service.CreateMatchInput
	if !decodeOrReject(w, r, &input) {
		return
	}
	match, err := h.book.CreateMatch(r.Context(), input)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, match)
}

// ListMatches handles GET /api/matches?status=.
func (h *CatalogHandler) ListMatches(w http.ResponseWriter, r *http.Request) {
	matches, err := h.book.ListMatches(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, matches)
}

// GetMatch handles GET /api/matches/{id}.
func (h *CatalogHandler) GetMatch(w http.ResponseWriter, r *http.Request) {
	match, err := h.book.GetMatch(r.Context(), domain.ID(chi.URLParam(r, "id")))
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, match)
}
