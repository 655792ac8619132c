package account

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	sberrors "github.com/smartbrain/smartbrain-api/pkg/errors"
)

// AccountService exposes account lookups to the HTTP layer
type AccountService struct {
	repository AccountRepository
}

// NewAccountService creates a new AccountService
func NewAccountService(repository AccountRepository) *AccountService {
	return &AccountService{repository: repository}
}

// GetProfile returns the account for the given identifier. Secret material
// never serializes out of the Account entity.
func (s *AccountService) GetProfile(ctx context.Context, id uuid.UUID) (Account, error) {
	account, err := s.repository.GetAccountByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Account{}, sberrors.AccountNotFound(id.String())
		}
		slog.Error("Failed to get account", "accountId", id, "error", err)
		return Account{}, sberrors.InternalWrap(err, "failed to get account")
	}
	return account, nil
}
