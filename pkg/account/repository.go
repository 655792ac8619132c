package account

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Sentinel errors returned by repository implementations. Callers map these
// onto the shared error taxonomy; provider specific failure codes never leave
// this package.
var (
	// ErrNotFound is returned when no account matches the given key
	ErrNotFound = errors.New("account not found")
	// ErrDuplicateEmail is returned when an insert collides with an existing email
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrTempSecretMismatch is returned when a conditional promote finds the
	// pending secret changed or cleared since it was read
	ErrTempSecretMismatch = errors.New("pending two-factor secret changed")
)

// AccountRepository defines storage operations for accounts and credentials
type AccountRepository interface {
	// CreateAccount inserts the credential and account rows in a single
	// transaction; either both rows exist afterwards or neither does
	CreateAccount(ctx context.Context, params CreateAccountParams) (Account, error)
	GetAccountByID(ctx context.Context, id uuid.UUID) (Account, error)
	GetAccountByEmail(ctx context.Context, email string) (Account, error)
	// GetCredentialByEmail returns the stored password hash for an email
	GetCredentialByEmail(ctx context.Context, email string) (string, error)
	// IncrementEntries atomically adds delta to the entries counter and
	// returns the new count
	IncrementEntries(ctx context.Context, id uuid.UUID, delta int64) (int64, error)
	// SetTempTwoFactorSecret stores a pending enrollment secret,
	// overwriting any previous pending secret (last write wins)
	SetTempTwoFactorSecret(ctx context.Context, id uuid.UUID, secret string) error
	// PromoteTempTwoFactorSecret promotes the pending secret to permanent,
	// sets the enabled flag, and clears the pending secret in one atomic
	// update conditioned on the pending secret still equalling expectedTemp
	PromoteTempTwoFactorSecret(ctx context.Context, id uuid.UUID, expectedTemp string) error
}
