package api

import (
	"net/http"

	"github.com/go-chi/render"
	"github.com/smartbrain/smartbrain-api/pkg/login"
	"github.com/smartbrain/smartbrain-api/pkg/router"
)

// Handle handles HTTP requests for password sign-in
type Handle struct {
	loginService *login.LoginService
}

// NewHandle creates a new Handle
func NewHandle(loginService *login.LoginService) *Handle {
	return &Handle{loginService: loginService}
}

// SigninRequest is the request body for POST /signin
type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signin handles POST /signin
func (h *Handle) Signin(w http.ResponseWriter, r *http.Request) {
	data := SigninRequest{}
	if err := render.DecodeJSON(r.Body, &data); err != nil {
		router.RespondJSON(w, r, http.StatusBadRequest, router.MessageResponse{Message: "unable to parse body"})
		return
	}

	account, err := h.loginService.Signin(r.Context(), data.Email, data.Password)
	if err != nil {
		router.RespondError(w, r, err)
		return
	}

	router.RespondJSON(w, r, http.StatusOK, account)
}
