package api

import (
	"net/http"

	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/smartbrain/smartbrain-api/pkg/detect"
	sberrors "github.com/smartbrain/smartbrain-api/pkg/errors"
	"github.com/smartbrain/smartbrain-api/pkg/router"
)

// Handle handles HTTP requests for the face-detection endpoints
type Handle struct {
	detectService *detect.DetectService
}

// NewHandle creates a new Handle
func NewHandle(detectService *detect.DetectService) *Handle {
	return &Handle{detectService: detectService}
}

// ImageRequest is the request body for PUT /image
type ImageRequest struct {
	ID        string `json:"id"`
	FaceCount int64  `json:"faceCount"`
}

// ClarifaiRequest is the request body for POST /clarifaiAPI
type ClarifaiRequest struct {
	URL string `json:"url"`
}

// UpdateImage handles PUT /image: it bumps the entries counter by the number
// of detected faces and returns the new count as a bare number
func (h *Handle) UpdateImage(w http.ResponseWriter, r *http.Request) {
	data := ImageRequest{}
	if err := render.DecodeJSON(r.Body, &data); err != nil {
		router.RespondJSON(w, r, http.StatusBadRequest, router.MessageResponse{Message: "unable to parse body"})
		return
	}

	accountID, err := uuid.Parse(data.ID)
	if err != nil {
		router.RespondJSON(w, r, http.StatusBadRequest, router.MessageResponse{Message: "user not found"})
		return
	}

	entries, err := h.detectService.RecordDetections(r.Context(), accountID, data.FaceCount)
	if err != nil {
		// This endpoint answers 400 for a missing user, not 404
		if sberrors.IsCode(err, sberrors.ErrCodeAccountNotFound) {
			router.RespondJSON(w, r, http.StatusBadRequest, router.MessageResponse{Message: "user not found"})
			return
		}
		router.RespondError(w, r, err)
		return
	}

	router.RespondJSON(w, r, http.StatusOK, entries)
}

// DetectFaces handles POST /clarifaiAPI: the provider response is passed
// through verbatim
func (h *Handle) DetectFaces(w http.ResponseWriter, r *http.Request) {
	data := ClarifaiRequest{}
	if err := render.DecodeJSON(r.Body, &data); err != nil {
		router.RespondJSON(w, r, http.StatusBadRequest, router.MessageResponse{Message: "unable to parse body"})
		return
	}

	result, err := h.detectService.DetectFaces(r.Context(), data.URL)
	if err != nil {
		router.RespondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(result)
}
