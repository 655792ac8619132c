package api

import (
	"net/http"
	"time"

	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	sberrors "github.com/smartbrain/smartbrain-api/pkg/errors"
	"github.com/smartbrain/smartbrain-api/pkg/router"
	"github.com/smartbrain/smartbrain-api/pkg/twofa"
)

// Handle handles HTTP requests for the 2FA enrollment and verification flow
type Handle struct {
	twoFaService twofa.TwoFactorService
}

// NewHandle creates a new Handle
func NewHandle(twoFaService twofa.TwoFactorService) *Handle {
	return &Handle{twoFaService: twoFaService}
}

// EnableRequest is the request body for POST /enable-2fa
type EnableRequest struct {
	UserID string `json:"userId"`
}

// VerifySetupRequest is the request body for POST /verify-2fa-setup
type VerifySetupRequest struct {
	UserID string `json:"userId"`
	Token  string `json:"token"`
}

// VerifySigninRequest is the request body for POST /verify-2fa
type VerifySigninRequest struct {
	UserID string `json:"userID"`
	Code   string `json:"code"`
}

// VerifiedUser holds the public profile fields returned after a successful
// 2FA sign-in verification; secret material is never part of it
type VerifiedUser struct {
	ID               uuid.UUID `json:"id"`
	Email            string    `json:"email"`
	Name             string    `json:"name"`
	Entries          int64     `json:"entries"`
	Joined           time.Time `json:"joined"`
	TwoFactorEnabled bool      `json:"two_factor_enabled"`
}

// Enable2FA handles POST /enable-2fa
func (h *Handle) Enable2FA(w http.ResponseWriter, r *http.Request) {
	data := EnableRequest{}
	if err := render.DecodeJSON(r.Body, &data); err != nil {
		router.RespondJSON(w, r, http.StatusBadRequest, router.MessageResponse{Message: "unable to parse body"})
		return
	}

	accountID, err := uuid.Parse(data.UserID)
	if err != nil {
		router.RespondJSON(w, r, http.StatusNotFound, router.MessageResponse{Message: "User not found"})
		return
	}

	info, err := h.twoFaService.Enable(r.Context(), accountID)
	if err != nil {
		router.RespondError(w, r, err)
		return
	}

	router.RespondJSON(w, r, http.StatusOK, info)
}

// VerifySetup handles POST /verify-2fa-setup. A wrong code answers 400 here,
// unlike sign-in verification: the caller is still enrolling, not
// authenticating.
func (h *Handle) VerifySetup(w http.ResponseWriter, r *http.Request) {
	data := VerifySetupRequest{}
	if err := render.DecodeJSON(r.Body, &data); err != nil {
		router.RespondJSON(w, r, http.StatusBadRequest, router.MessageResponse{Message: "unable to parse body"})
		return
	}

	accountID, err := uuid.Parse(data.UserID)
	if err != nil {
		router.RespondJSON(w, r, http.StatusBadRequest, router.MessageResponse{Message: "No pending 2FA setup found"})
		return
	}

	if err := h.twoFaService.VerifySetup(r.Context(), accountID, data.Token); err != nil {
		if sberrors.IsCode(err, sberrors.ErrCodeInvalidCode) {
			router.RespondJSON(w, r, http.StatusBadRequest, router.MessageResponse{Message: "Invalid verification code"})
			return
		}
		router.RespondError(w, r, err)
		return
	}

	router.RespondJSON(w, r, http.StatusOK, map[string]bool{"success": true})
}

// VerifySignin handles POST /verify-2fa
func (h *Handle) VerifySignin(w http.ResponseWriter, r *http.Request) {
	data := VerifySigninRequest{}
	if err := render.DecodeJSON(r.Body, &data); err != nil {
		router.RespondJSON(w, r, http.StatusBadRequest, router.MessageResponse{Message: "unable to parse body"})
		return
	}

	accountID, err := uuid.Parse(data.UserID)
	if err != nil {
		router.RespondJSON(w, r, http.StatusBadRequest, router.MessageResponse{Message: "Invalid request"})
		return
	}

	acct, err := h.twoFaService.VerifySignin(r.Context(), accountID, data.Code)
	if err != nil {
		router.RespondError(w, r, err)
		return
	}

	user := VerifiedUser{}
	copier.Copy(&user, &acct)

	router.RespondJSON(w, r, http.StatusOK, map[string]VerifiedUser{"user": user})
}
