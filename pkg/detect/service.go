package detect

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/smartbrain/smartbrain-api/pkg/account"
	sberrors "github.com/smartbrain/smartbrain-api/pkg/errors"
)

// DetectService ties the face-detection provider to the per-account entries
// counter
type DetectService struct {
	repository account.AccountRepository
	detector   FaceDetector
}

// NewDetectService creates a new DetectService
func NewDetectService(repository account.AccountRepository, detector FaceDetector) *DetectService {
	return &DetectService{
		repository: repository,
		detector:   detector,
	}
}

// RecordDetections adds faceCount to the account's entries counter and
// returns the new count. A non-positive faceCount is treated as a single
// detection.
func (s *DetectService) RecordDetections(ctx context.Context, accountID uuid.UUID, faceCount int64) (int64, error) {
	if faceCount <= 0 {
		faceCount = 1
	}

	entries, err := s.repository.IncrementEntries(ctx, accountID, faceCount)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return 0, sberrors.AccountNotFound(accountID.String())
		}
		slog.Error("Failed to increment entries", "accountId", accountID, "error", err)
		return 0, sberrors.InternalWrap(err, "unable to get entries")
	}
	return entries, nil
}

// DetectFaces forwards an image URL to the provider and returns its raw JSON
func (s *DetectService) DetectFaces(ctx context.Context, imageURL string) (json.RawMessage, error) {
	if imageURL == "" {
		return nil, sberrors.InvalidInput("url", "required")
	}

	result, err := s.detector.DetectFaces(ctx, imageURL)
	if err != nil {
		slog.Error("Face detection provider call failed", "error", err)
		return nil, sberrors.InternalWrap(err, "face detection failed")
	}
	return result, nil
}
