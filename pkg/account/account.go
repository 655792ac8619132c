package account

import (
	"time"

	"github.com/google/uuid"
)

// Account represents a user account row. PasswordHash lives in the
// credentials table and is never part of this entity; the 2FA secrets are
// carried here but excluded from JSON serialization.
type Account struct {
	ID                  uuid.UUID `json:"id"`
	Email               string    `json:"email"`
	Name                string    `json:"name"`
	Entries             int64     `json:"entries"`
	Joined              time.Time `json:"joined"`
	TwoFactorEnabled    bool      `json:"two_factor_enabled"`
	TwoFactorSecret     string    `json:"-"`
	TempTwoFactorSecret string    `json:"-"`
}

// CreateAccountParams represents parameters for creating an account together
// with its credential row
type CreateAccountParams struct {
	Email        string
	Name         string
	PasswordHash string
}
