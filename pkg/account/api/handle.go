package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/smartbrain/smartbrain-api/pkg/account"
	"github.com/smartbrain/smartbrain-api/pkg/router"
)

// Handle handles HTTP requests for account profiles
type Handle struct {
	accountService *account.AccountService
}

// NewHandle creates a new Handle
func NewHandle(accountService *account.AccountService) *Handle {
	return &Handle{accountService: accountService}
}

// GetProfile handles GET /profile/{id}
func (h *Handle) GetProfile(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		router.RespondJSON(w, r, http.StatusNotFound, router.MessageResponse{Message: "User not found"})
		return
	}

	acct, err := h.accountService.GetProfile(r.Context(), id)
	if err != nil {
		router.RespondError(w, r, err)
		return
	}

	router.RespondJSON(w, r, http.StatusOK, acct)
}
