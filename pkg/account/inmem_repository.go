package account

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemAccountRepository implements AccountRepository using in-memory storage.
// Intended for tests and local development without a database.
type InMemAccountRepository struct {
	mutex       sync.RWMutex
	accounts    map[uuid.UUID]Account // keyed by account ID
	credentials map[string]string     // email -> password hash
}

// NewInMemAccountRepository creates a new in-memory account repository
func NewInMemAccountRepository() *InMemAccountRepository {
	return &InMemAccountRepository{
		accounts:    make(map[uuid.UUID]Account),
		credentials: make(map[string]string),
	}
}

// CreateAccount creates the credential and account entries together; the email
// uniqueness check covers both maps so a partial insert can never be observed
func (r *InMemAccountRepository) CreateAccount(ctx context.Context, params CreateAccountParams) (Account, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.credentials[params.Email]; exists {
		return Account{}, ErrDuplicateEmail
	}
	for _, a := range r.accounts {
		if a.Email == params.Email {
			return Account{}, ErrDuplicateEmail
		}
	}

	account := Account{
		ID:     uuid.New(),
		Email:  params.Email,
		Name:   params.Name,
		Joined: time.Now().UTC(),
	}
	r.credentials[params.Email] = params.PasswordHash
	r.accounts[account.ID] = account

	return account, nil
}

// GetAccountByID fetches an account by its identifier
func (r *InMemAccountRepository) GetAccountByID(ctx context.Context, id uuid.UUID) (Account, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	account, ok := r.accounts[id]
	if !ok {
		return Account{}, ErrNotFound
	}
	return account, nil
}

// GetAccountByEmail fetches an account by email
func (r *InMemAccountRepository) GetAccountByEmail(ctx context.Context, email string) (Account, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for _, a := range r.accounts {
		if a.Email == email {
			return a, nil
		}
	}
	return Account{}, ErrNotFound
}

// GetCredentialByEmail returns the password hash stored for an email
func (r *InMemAccountRepository) GetCredentialByEmail(ctx context.Context, email string) (string, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	hash, ok := r.credentials[email]
	if !ok {
		return "", ErrNotFound
	}
	return hash, nil
}

// IncrementEntries adds delta to the entries counter and returns the new count
func (r *InMemAccountRepository) IncrementEntries(ctx context.Context, id uuid.UUID, delta int64) (int64, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	account, ok := r.accounts[id]
	if !ok {
		return 0, ErrNotFound
	}
	account.Entries += delta
	r.accounts[id] = account
	return account.Entries, nil
}

// SetTempTwoFactorSecret stores a pending enrollment secret
func (r *InMemAccountRepository) SetTempTwoFactorSecret(ctx context.Context, id uuid.UUID, secret string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	account, ok := r.accounts[id]
	if !ok {
		return ErrNotFound
	}
	account.TempTwoFactorSecret = secret
	r.accounts[id] = account
	return nil
}

// PromoteTempTwoFactorSecret promotes the pending secret to permanent under
// the repository lock, conditioned on the pending secret still matching
func (r *InMemAccountRepository) PromoteTempTwoFactorSecret(ctx context.Context, id uuid.UUID, expectedTemp string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	account, ok := r.accounts[id]
	if !ok {
		return ErrNotFound
	}
	if account.TempTwoFactorSecret == "" || account.TempTwoFactorSecret != expectedTemp {
		return ErrTempSecretMismatch
	}
	account.TwoFactorSecret = account.TempTwoFactorSecret
	account.TwoFactorEnabled = true
	account.TempTwoFactorSecret = ""
	r.accounts[id] = account
	return nil
}
