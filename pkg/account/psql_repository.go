package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgreSQL error code for unique constraint violations
const uniqueViolationCode = "23505"

// PostgresAccountRepository implements AccountRepository using PostgreSQL
type PostgresAccountRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresAccountRepository creates a new PostgreSQL account repository
func NewPostgresAccountRepository(pool *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{pool: pool}
}

const accountColumns = `id, email, name, entries, joined, two_factor_enabled,
	COALESCE(two_factor_secret, ''), COALESCE(temp_two_factor_secret, '')`

func scanAccount(row pgx.Row) (Account, error) {
	var a Account
	err := row.Scan(&a.ID, &a.Email, &a.Name, &a.Entries, &a.Joined,
		&a.TwoFactorEnabled, &a.TwoFactorSecret, &a.TempTwoFactorSecret)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, ErrNotFound
		}
		return Account{}, fmt.Errorf("failed to scan account: %w", err)
	}
	return a, nil
}

// CreateAccount inserts the credential and account rows in one transaction
func (r *PostgresAccountRepository) CreateAccount(ctx context.Context, params CreateAccountParams) (Account, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return Account{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO credentials (email, password_hash) VALUES ($1, $2)`,
		params.Email, params.PasswordHash)
	if err != nil {
		return Account{}, mapInsertError(err)
	}

	row := tx.QueryRow(ctx,
		`INSERT INTO users (email, name) VALUES ($1, $2) RETURNING `+accountColumns,
		params.Email, params.Name)
	account, err := scanAccount(row)
	if err != nil {
		return Account{}, mapInsertError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return Account{}, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return account, nil
}

func mapInsertError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return ErrDuplicateEmail
	}
	return fmt.Errorf("failed to insert account: %w", err)
}

// GetAccountByID fetches an account by its identifier
func (r *PostgresAccountRepository) GetAccountByID(ctx context.Context, id uuid.UUID) (Account, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM users WHERE id = $1`, id)
	return scanAccount(row)
}

// GetAccountByEmail fetches an account by email (exact match)
func (r *PostgresAccountRepository) GetAccountByEmail(ctx context.Context, email string) (Account, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM users WHERE email = $1`, email)
	return scanAccount(row)
}

// GetCredentialByEmail returns the password hash stored for an email
func (r *PostgresAccountRepository) GetCredentialByEmail(ctx context.Context, email string) (string, error) {
	var hash string
	err := r.pool.QueryRow(ctx,
		`SELECT password_hash FROM credentials WHERE email = $1`, email).Scan(&hash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to get credential: %w", err)
	}
	return hash, nil
}

// IncrementEntries atomically increments the entries counter
func (r *PostgresAccountRepository) IncrementEntries(ctx context.Context, id uuid.UUID, delta int64) (int64, error) {
	var entries int64
	err := r.pool.QueryRow(ctx,
		`UPDATE users SET entries = entries + $2 WHERE id = $1 RETURNING entries`,
		id, delta).Scan(&entries)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("failed to increment entries: %w", err)
	}
	return entries, nil
}

// SetTempTwoFactorSecret stores a pending enrollment secret, overwriting any
// previous pending secret
func (r *PostgresAccountRepository) SetTempTwoFactorSecret(ctx context.Context, id uuid.UUID, secret string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET temp_two_factor_secret = $2 WHERE id = $1`, id, secret)
	if err != nil {
		return fmt.Errorf("failed to set pending secret: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// PromoteTempTwoFactorSecret promotes the pending secret to permanent in a
// single conditional update. The WHERE clause guards against a concurrent
// verify-setup racing for the same account: zero rows affected means the
// pending secret no longer matches what the caller verified against.
func (r *PostgresAccountRepository) PromoteTempTwoFactorSecret(ctx context.Context, id uuid.UUID, expectedTemp string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users
		 SET two_factor_secret = temp_two_factor_secret,
		     two_factor_enabled = TRUE,
		     temp_two_factor_secret = NULL
		 WHERE id = $1 AND temp_two_factor_secret = $2`,
		id, expectedTemp)
	if err != nil {
		return fmt.Errorf("failed to promote pending secret: %w", err)
	}
	if tag.RowsAffected() == 0 {
		slog.Warn("Pending secret promote found no matching row", "accountId", id)
		return ErrTempSecretMismatch
	}
	return nil
}
