package login

import (
	"context"
	"errors"
	"log/slog"

	"github.com/smartbrain/smartbrain-api/pkg/account"
	sberrors "github.com/smartbrain/smartbrain-api/pkg/errors"
)

// LoginService authenticates accounts by email and password. It issues no
// session or token; every request re-authenticates.
type LoginService struct {
	repository account.AccountRepository
	hasher     PasswordHasher
}

// NewLoginService creates a new LoginService
func NewLoginService(repository account.AccountRepository, hasher PasswordHasher) *LoginService {
	if hasher == nil {
		hasher = &BcryptHasher{}
	}
	return &LoginService{
		repository: repository,
		hasher:     hasher,
	}
}

// Signin verifies the email/password pair and returns the matching account.
// Unknown email and wrong password produce the same InvalidCredentials error
// so responses do not reveal whether an account exists.
func (s *LoginService) Signin(ctx context.Context, email, password string) (account.Account, error) {
	if email == "" || password == "" {
		return account.Account{}, sberrors.InvalidCredentials()
	}

	hash, err := s.repository.GetCredentialByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return account.Account{}, sberrors.InvalidCredentials()
		}
		slog.Error("Failed to get credential", "error", err)
		return account.Account{}, sberrors.InternalWrap(err, "failed to get credential")
	}

	valid, err := s.hasher.Verify(password, hash)
	if err != nil {
		slog.Error("Failed to verify password", "error", err)
		return account.Account{}, sberrors.InternalWrap(err, "failed to verify password")
	}
	if !valid {
		return account.Account{}, sberrors.InvalidCredentials()
	}

	acct, err := s.repository.GetAccountByEmail(ctx, email)
	if err != nil {
		// Credentials checked out but the account row is missing; this is a
		// storage inconsistency, not an authentication failure
		slog.Error("Credential exists without account row", "email", email, "error", err)
		return account.Account{}, sberrors.InternalWrap(err, "authentication error")
	}

	return acct, nil
}
