package handler

import (
	"net/http"

	"github.com/shiiiru/betsmoke/internal/auth"
	"github.com/shiiiru/betsmoke/internal/service"
)

// ReportHandler serves transaction history and admin statistics.
type ReportHandler struct {
	book *service.Book
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(book *service.Book) *ReportHandler {
	return &ReportHandler{book: book}
}

// MyTransactions handles GET /api/transactions/my.
func (h *ReportHandler) MyTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := h.book.MyTransactions(r.Context(), auth.SubjectFromContext(r.Context()))
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, txs)
}

// Stats handles GET /api/admin/stats (admin).
func (h *ReportHandler) Stats(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, http.StatusOK, h.book.Stats(r.Context()))
}

// Health handles GET /health.
func Health(w http.ResponseWriter, _ *http.Request) {
	RespondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
