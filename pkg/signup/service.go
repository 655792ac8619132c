package signup

import (
	"context"
	"errors"
	"log/slog"

	"github.com/smartbrain/smartbrain-api/pkg/account"
	sberrors "github.com/smartbrain/smartbrain-api/pkg/errors"
	"github.com/smartbrain/smartbrain-api/pkg/login"
)

// SignupService handles user registration business logic
type SignupService struct {
	repository    account.AccountRepository
	hasher        login.PasswordHasher
	policyChecker login.PasswordPolicyChecker
}

// SignupServiceOption is a functional option for configuring SignupService
type SignupServiceOption func(*SignupService)

// NewSignupService creates a new SignupService with the given options
func NewSignupService(repository account.AccountRepository, opts ...SignupServiceOption) *SignupService {
	s := &SignupService{
		repository:    repository,
		hasher:        &login.BcryptHasher{},
		policyChecker: login.NewDefaultPasswordPolicyChecker(nil, nil),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithPasswordHasher sets the password hasher
func WithPasswordHasher(h login.PasswordHasher) SignupServiceOption {
	return func(s *SignupService) {
		s.hasher = h
	}
}

// WithPolicyChecker sets the password policy checker
func WithPolicyChecker(pc login.PasswordPolicyChecker) SignupServiceOption {
	return func(s *SignupService) {
		s.policyChecker = pc
	}
}

// RegisterParams represents parameters for registering a new account
type RegisterParams struct {
	Email    string
	Name     string
	Password string
}

// Register validates the registration input, hashes the password, and creates
// the credential and account rows transactionally. A duplicate email creates
// no row in either table.
func (s *SignupService) Register(ctx context.Context, params RegisterParams) (account.Account, error) {
	if params.Email == "" || params.Name == "" || params.Password == "" {
		return account.Account{}, sberrors.New(sberrors.ErrCodeValidationFailed, "email, name and password are required")
	}

	if err := s.policyChecker.CheckPasswordComplexity(params.Password); err != nil {
		return account.Account{}, sberrors.Wrap(err, sberrors.ErrCodePasswordComplexity, err.Error())
	}

	hash, err := s.hasher.Hash(params.Password)
	if err != nil {
		slog.Error("Failed to hash password", "error", err)
		return account.Account{}, sberrors.InternalWrap(err, "failed to hash password")
	}

	acct, err := s.repository.CreateAccount(ctx, account.CreateAccountParams{
		Email:        params.Email,
		Name:         params.Name,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, account.ErrDuplicateEmail) {
			return account.Account{}, sberrors.DuplicateAccount(params.Email)
		}
		slog.Error("Failed to create account", "error", err)
		return account.Account{}, sberrors.InternalWrap(err, "failed to create account")
	}

	slog.Info("Registered new account", "accountId", acct.ID)
	return acct, nil
}
