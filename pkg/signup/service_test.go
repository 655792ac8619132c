package signup

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartbrain/smartbrain-api/pkg/account"
	sberrors "github.com/smartbrain/smartbrain-api/pkg/errors"
	"github.com/smartbrain/smartbrain-api/pkg/login"
)

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := account.NewInMemAccountRepository()
		svc := NewSignupService(repo)

		acct, err := svc.Register(ctx, RegisterParams{
			Email:    "john@gmail.com",
			Name:     "John",
			Password: "Str0ng!Pass",
		})
		require.NoError(t, err)
		assert.Equal(t, "john@gmail.com", acct.Email)
		assert.Equal(t, "John", acct.Name)
		assert.EqualValues(t, 0, acct.Entries)

		// The stored credential is a verifiable hash, not the plaintext
		hash, err := repo.GetCredentialByEmail(ctx, "john@gmail.com")
		require.NoError(t, err)
		assert.NotEqual(t, "Str0ng!Pass", hash)

		hasher := &login.BcryptHasher{}
		valid, err := hasher.Verify("Str0ng!Pass", hash)
		require.NoError(t, err)
		assert.True(t, valid)
	})

	t.Run("MissingFields", func(t *testing.T) {
		svc := NewSignupService(account.NewInMemAccountRepository())

		for _, params := range []RegisterParams{
			{Name: "John", Password: "Str0ng!Pass"},
			{Email: "john@gmail.com", Password: "Str0ng!Pass"},
			{Email: "john@gmail.com", Name: "John"},
		} {
			_, err := svc.Register(ctx, params)
			require.Error(t, err)
			assert.True(t, sberrors.IsCode(err, sberrors.ErrCodeValidationFailed))
		}
	})

	t.Run("WeakPassword", func(t *testing.T) {
		svc := NewSignupService(account.NewInMemAccountRepository())

		_, err := svc.Register(ctx, RegisterParams{
			Email:    "john@gmail.com",
			Name:     "John",
			Password: "weak",
		})
		require.Error(t, err)
		assert.True(t, sberrors.IsCode(err, sberrors.ErrCodePasswordComplexity))
	})

	t.Run("DuplicateEmailCreatesNoRows", func(t *testing.T) {
		repo := account.NewInMemAccountRepository()
		svc := NewSignupService(repo)

		_, err := svc.Register(ctx, RegisterParams{
			Email:    "john@gmail.com",
			Name:     "John",
			Password: "Str0ng!Pass",
		})
		require.NoError(t, err)

		_, err = svc.Register(ctx, RegisterParams{
			Email:    "john@gmail.com",
			Name:     "Imposter",
			Password: "An0ther!Pass",
		})
		require.Error(t, err)
		assert.True(t, sberrors.IsCode(err, sberrors.ErrCodeDuplicateAccount))

		// First registration untouched in both tables
		acct, err := repo.GetAccountByEmail(ctx, "john@gmail.com")
		require.NoError(t, err)
		assert.Equal(t, "John", acct.Name)

		hash, err := repo.GetCredentialByEmail(ctx, "john@gmail.com")
		require.NoError(t, err)
		hasher := &login.BcryptHasher{}
		valid, err := hasher.Verify("Str0ng!Pass", hash)
		require.NoError(t, err)
		assert.True(t, valid)
	})
}
