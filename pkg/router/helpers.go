package router

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	sberrors "github.com/smartbrain/smartbrain-api/pkg/errors"
)

// MessageResponse is the generic error/info response body
type MessageResponse struct {
	Message string `json:"message"`
}

// RespondJSON writes a JSON response with the given status code
func RespondJSON(w http.ResponseWriter, r *http.Request, status int, body interface{}) {
	render.Status(r, status)
	render.JSON(w, r, body)
}

// RespondError maps a service error onto the HTTP surface. Structured errors
// carry their own status code; anything else is an internal error whose
// detail is logged server-side and never echoed to the client.
func RespondError(w http.ResponseWriter, r *http.Request, err error) {
	code := sberrors.GetCode(err)
	status := sberrors.MapErrorCodeToHTTPStatus(code)

	message := clientMessage(code, err)
	if status >= http.StatusInternalServerError {
		slog.Error("Request failed", "path", r.URL.Path, "code", code, "error", err)
		message = "Server error"
	}

	RespondJSON(w, r, status, MessageResponse{Message: message})
}

// clientMessage keeps authentication-adjacent failures deliberately generic so
// responses do not distinguish "wrong secret" from "no such enrollment"
func clientMessage(code sberrors.ErrorCode, err error) string {
	switch code {
	case sberrors.ErrCodeInvalidCredentials:
		return "Invalid email or password"
	case sberrors.ErrCodeInvalidCode:
		return "Invalid 2FA code"
	case sberrors.ErrCodeInvalidState:
		return "Invalid request"
	case sberrors.ErrCodeDuplicateAccount, sberrors.ErrCodeValidationFailed:
		return "Registration failed. Please check your information"
	case sberrors.ErrCodeAccountNotFound, sberrors.ErrCodeNotFound:
		return "User not found"
	}

	var e *sberrors.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Request failed"
}
