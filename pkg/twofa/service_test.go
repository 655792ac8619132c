package twofa

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xlzd/gotp"

	"github.com/smartbrain/smartbrain-api/pkg/account"
	sberrors "github.com/smartbrain/smartbrain-api/pkg/errors"
)

const testIssuer = "Smart Brain - Face Detection App"

func setupService(t *testing.T) (*TwoFaService, *account.InMemAccountRepository, account.Account) {
	t.Helper()
	repo := account.NewInMemAccountRepository()
	svc := NewTwoFaService(repo, testIssuer, 256)

	acct, err := repo.CreateAccount(context.Background(), account.CreateAccountParams{
		Email:        "john@gmail.com",
		Name:         "John",
		PasswordHash: "$2a$10$hash",
	})
	require.NoError(t, err)

	return svc, repo, acct
}

func currentCode(t *testing.T, secret string) string {
	t.Helper()
	return gotp.NewDefaultTOTP(secret).Now()
}

func TestEnable(t *testing.T) {
	ctx := context.Background()

	t.Run("UnknownAccount", func(t *testing.T) {
		svc, _, _ := setupService(t)

		_, err := svc.Enable(ctx, uuid.New())
		require.Error(t, err)
		assert.True(t, sberrors.IsCode(err, sberrors.ErrCodeAccountNotFound))
	})

	t.Run("StoresPendingSecretOnly", func(t *testing.T) {
		svc, repo, acct := setupService(t)

		info, err := svc.Enable(ctx, acct.ID)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(info.QRCode, "data:image/png;base64,"))
		assert.Len(t, info.ManualEntry, 32)

		stored, err := repo.GetAccountByID(ctx, acct.ID)
		require.NoError(t, err)
		assert.Equal(t, info.ManualEntry, stored.TempTwoFactorSecret)
		assert.False(t, stored.TwoFactorEnabled)
		assert.Empty(t, stored.TwoFactorSecret)
	})

	t.Run("SecondEnableOverwritesPendingSecret", func(t *testing.T) {
		svc, _, acct := setupService(t)

		first, err := svc.Enable(ctx, acct.ID)
		require.NoError(t, err)
		second, err := svc.Enable(ctx, acct.ID)
		require.NoError(t, err)
		assert.NotEqual(t, first.ManualEntry, second.ManualEntry)

		// Only the most recently issued secret verifies
		err = svc.VerifySetup(ctx, acct.ID, currentCode(t, first.ManualEntry))
		assert.True(t, sberrors.IsCode(err, sberrors.ErrCodeInvalidCode))

		err = svc.VerifySetup(ctx, acct.ID, currentCode(t, second.ManualEntry))
		assert.NoError(t, err)
	})
}

func TestVerifySetup(t *testing.T) {
	ctx := context.Background()

	t.Run("NoPendingEnrollment", func(t *testing.T) {
		svc, _, acct := setupService(t)

		err := svc.VerifySetup(ctx, acct.ID, "123456")
		require.Error(t, err)
		assert.True(t, sberrors.IsCode(err, sberrors.ErrCodeInvalidState))
	})

	t.Run("UnknownAccountReadsAsNoPendingEnrollment", func(t *testing.T) {
		svc, _, _ := setupService(t)

		err := svc.VerifySetup(ctx, uuid.New(), "123456")
		require.Error(t, err)
		assert.True(t, sberrors.IsCode(err, sberrors.ErrCodeInvalidState))
	})

	t.Run("CorrectCodePromotesSecret", func(t *testing.T) {
		svc, repo, acct := setupService(t)

		info, err := svc.Enable(ctx, acct.ID)
		require.NoError(t, err)

		err = svc.VerifySetup(ctx, acct.ID, currentCode(t, info.ManualEntry))
		require.NoError(t, err)

		stored, err := repo.GetAccountByID(ctx, acct.ID)
		require.NoError(t, err)
		assert.True(t, stored.TwoFactorEnabled)
		assert.Equal(t, info.ManualEntry, stored.TwoFactorSecret)
		assert.Empty(t, stored.TempTwoFactorSecret, "no dangling temp secret after promotion")
	})

	t.Run("StaleCodeFails", func(t *testing.T) {
		svc, _, acct := setupService(t)

		info, err := svc.Enable(ctx, acct.ID)
		require.NoError(t, err)

		stale := gotp.NewDefaultTOTP(info.ManualEntry).At(time.Now().Add(-10 * time.Minute).Unix())
		err = svc.VerifySetup(ctx, acct.ID, stale)
		assert.True(t, sberrors.IsCode(err, sberrors.ErrCodeInvalidCode))
	})

	t.Run("WrongCodeLeavesEnrollmentRetryable", func(t *testing.T) {
		svc, repo, acct := setupService(t)

		info, err := svc.Enable(ctx, acct.ID)
		require.NoError(t, err)

		wrong := gotp.NewDefaultTOTP(info.ManualEntry).At(time.Now().Add(-10 * time.Minute).Unix())
		err = svc.VerifySetup(ctx, acct.ID, wrong)
		assert.True(t, sberrors.IsCode(err, sberrors.ErrCodeInvalidCode))

		// Still PendingEnrollment
		stored, err := repo.GetAccountByID(ctx, acct.ID)
		require.NoError(t, err)
		assert.False(t, stored.TwoFactorEnabled)
		assert.Equal(t, info.ManualEntry, stored.TempTwoFactorSecret)

		// Retry with the correct code succeeds
		err = svc.VerifySetup(ctx, acct.ID, currentCode(t, info.ManualEntry))
		assert.NoError(t, err)
	})
}

func TestVerifySignin(t *testing.T) {
	ctx := context.Background()

	enroll := func(t *testing.T, svc *TwoFaService, acct account.Account) string {
		t.Helper()
		info, err := svc.Enable(ctx, acct.ID)
		require.NoError(t, err)
		require.NoError(t, svc.VerifySetup(ctx, acct.ID, currentCode(t, info.ManualEntry)))
		return info.ManualEntry
	}

	t.Run("DisabledAccountFailsRegardlessOfCode", func(t *testing.T) {
		svc, _, acct := setupService(t)

		for _, code := range []string{"", "000000", "123456", "abcdef"} {
			_, err := svc.VerifySignin(ctx, acct.ID, code)
			assert.True(t, sberrors.IsCode(err, sberrors.ErrCodeInvalidState))
		}
	})

	t.Run("UnknownAccount", func(t *testing.T) {
		svc, _, _ := setupService(t)

		_, err := svc.VerifySignin(ctx, uuid.New(), "123456")
		assert.True(t, sberrors.IsCode(err, sberrors.ErrCodeInvalidState))
	})

	t.Run("CorrectCodeReturnsProfile", func(t *testing.T) {
		svc, _, acct := setupService(t)
		secret := enroll(t, svc, acct)

		verified, err := svc.VerifySignin(ctx, acct.ID, currentCode(t, secret))
		require.NoError(t, err)
		assert.Equal(t, acct.ID, verified.ID)
		assert.Equal(t, "john@gmail.com", verified.Email)
		assert.True(t, verified.TwoFactorEnabled)
	})

	t.Run("WrongCode", func(t *testing.T) {
		svc, _, acct := setupService(t)
		secret := enroll(t, svc, acct)

		wrong := gotp.NewDefaultTOTP(secret).At(time.Now().Add(-10 * time.Minute).Unix())
		_, err := svc.VerifySignin(ctx, acct.ID, wrong)
		assert.True(t, sberrors.IsCode(err, sberrors.ErrCodeInvalidCode))
	})
}
