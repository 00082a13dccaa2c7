package handler

import (
	"net/http"

	"github.com/shiiiru/betsmoke/internal/auth"
	"github.com/shiiiru/betsmoke/internal/service"
)

// AuthHandler handles registration, login and the current-user endpoint.
type AuthHandler struct {
	book *service.Book
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(book *service.Book) *AuthHandler {
	return &AuthHandler{book: book}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input service.RegisterInput
	if !decodeOrReject(w, r, &input) {
		return
	}

	result, err := h.book.Register(r.Context(), input)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, result)
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input service.LoginInput
	if !decodeOrReject(w, r, &input) {
		return
	}

	result, err := h.book.Login(r.Context(), input)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, result)
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.book.Me(r.Context(), auth.SubjectFromContext(r.Context()))
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, user)
}
