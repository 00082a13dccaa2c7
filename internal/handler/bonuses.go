package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shiiiru/betsmoke/internal/auth"
	"github.com/shiiiru/betsmoke/internal/domain"
	"github.com/shiiiru/betsmoke/internal/service"
)

// BonusHandler handles the bonus shop.
type BonusHandler struct {
	book *service.Book
}

// NewBonusHandler creates a new BonusHandler.
func NewBonusHandler(book *service.Book) *BonusHandler {
	return &BonusHandler{book: book}
}

// Create handles POST /api/bonuses (admin).
func (h *BonusHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.CreateBonusInput
	if !decodeOrReject(w, r, &input) {
		return
	}
	bonus, err := h.book.CreateBonus(r.Context(), input)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, bonus)
}

// List handles GET /api/bonuses.
func (h *BonusHandler) List(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, http.StatusOK, h.book.ListBonuses(r.Context()))
}

// Purchase handles POST /api/bonuses/{id}/purchase.
func (h *BonusHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	result, err := h.book.PurchaseBonus(r.Context(), auth.SubjectFromContext(r.Context()), domain.ID(chi.URLParam(r, "id")))
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, result)
}
