package api

import (
	"net/http"

	"github.com/go-chi/render"
	"github.com/smartbrain/smartbrain-api/pkg/router"
	"github.com/smartbrain/smartbrain-api/pkg/signup"
)

// Handle handles HTTP requests for registration
type Handle struct {
	signupService *signup.SignupService
}

// NewHandle creates a new Handle
func NewHandle(signupService *signup.SignupService) *Handle {
	return &Handle{signupService: signupService}
}

// RegisterRequest is the request body for POST /register
type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// Register handles POST /register
func (h *Handle) Register(w http.ResponseWriter, r *http.Request) {
	data := RegisterRequest{}
	if err := render.DecodeJSON(r.Body, &data); err != nil {
		router.RespondJSON(w, r, http.StatusBadRequest, router.MessageResponse{Message: "unable to parse body"})
		return
	}

	account, err := h.signupService.Register(r.Context(), signup.RegisterParams{
		Email:    data.Email,
		Name:     data.Name,
		Password: data.Password,
	})
	if err != nil {
		router.RespondError(w, r, err)
		return
	}

	router.RespondJSON(w, r, http.StatusOK, account)
}
