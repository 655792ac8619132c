package twofa

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/smartbrain/smartbrain-api/pkg/account"
	sberrors "github.com/smartbrain/smartbrain-api/pkg/errors"
	"github.com/smartbrain/smartbrain-api/pkg/qrcode"
)

// TwoFactorService orchestrates the TOTP enrollment and verification state
// machine. The per-account state is observable through the two secret fields:
//
//	Disabled:          enabled=false, temp secret empty
//	PendingEnrollment: enabled=false, temp secret set
//	Enabled:           enabled=true, permanent secret set, temp secret empty
type TwoFactorService interface {
	Enable(ctx context.Context, accountID uuid.UUID) (EnrollmentInfo, error)
	VerifySetup(ctx context.Context, accountID uuid.UUID, code string) error
	VerifySignin(ctx context.Context, accountID uuid.UUID, code string) (account.Account, error)
}

// TwoFaService implements TwoFactorService against an account repository
type TwoFaService struct {
	repository account.AccountRepository
	issuer     string
	qrCodeSize int
}

// NewTwoFaService creates a new TwoFaService
func NewTwoFaService(repository account.AccountRepository, issuer string, qrCodeSize int) *TwoFaService {
	return &TwoFaService{
		repository: repository,
		issuer:     issuer,
		qrCodeSize: qrCodeSize,
	}
}

// EnrollmentInfo is returned by Enable: the enrollment URI rendered as a
// scannable image plus the raw secret for manual entry
type EnrollmentInfo struct {
	QRCode      string `json:"qrCode"`
	ManualEntry string `json:"manualEntry"`
}

// Enable starts (or restarts) an enrollment: it generates a fresh secret and
// stores it as the pending secret, overwriting any prior pending secret.
// The enabled flag and the permanent secret are not touched; only a verified
// code promotes the secret.
func (s *TwoFaService) Enable(ctx context.Context, accountID uuid.UUID) (EnrollmentInfo, error) {
	acct, err := s.repository.GetAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return EnrollmentInfo{}, sberrors.AccountNotFound(accountID.String())
		}
		return EnrollmentInfo{}, sberrors.InternalWrap(err, "failed to get account")
	}

	label := fmt.Sprintf("%s (%s)", s.issuer, acct.Email)
	secret, enrollmentURI, err := GenerateTotpSecret(label, s.issuer)
	if err != nil {
		return EnrollmentInfo{}, sberrors.InternalWrap(err, "failed to generate 2fa secret")
	}

	if err := s.repository.SetTempTwoFactorSecret(ctx, accountID, secret); err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return EnrollmentInfo{}, sberrors.AccountNotFound(accountID.String())
		}
		return EnrollmentInfo{}, sberrors.InternalWrap(err, "failed to store pending secret")
	}

	qrCode, err := qrcode.GenerateBase64Image(enrollmentURI, s.qrCodeSize)
	if err != nil {
		return EnrollmentInfo{}, sberrors.InternalWrap(err, "failed to render enrollment QR code")
	}

	slog.Info("Started 2FA enrollment", "accountId", accountID)
	return EnrollmentInfo{
		QRCode:      qrCode,
		ManualEntry: secret,
	}, nil
}

// VerifySetup checks a submitted code against the pending secret and, on
// match, promotes it to the permanent secret, enables 2FA, and clears the
// pending secret in one conditional update. A mismatch leaves the pending
// enrollment in place so the user can retry.
func (s *TwoFaService) VerifySetup(ctx context.Context, accountID uuid.UUID, code string) error {
	acct, err := s.repository.GetAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			// Same response as a missing enrollment: no account-existence leak
			return sberrors.New(sberrors.ErrCodeInvalidState, "no pending 2FA setup found")
		}
		return sberrors.InternalWrap(err, "failed to get account")
	}

	if acct.TempTwoFactorSecret == "" {
		return sberrors.New(sberrors.ErrCodeInvalidState, "no pending 2FA setup found")
	}

	if !ValidateTotpPasscode(acct.TempTwoFactorSecret, code) {
		return sberrors.New(sberrors.ErrCodeInvalidCode, "invalid verification code")
	}

	err = s.repository.PromoteTempTwoFactorSecret(ctx, accountID, acct.TempTwoFactorSecret)
	if err != nil {
		if errors.Is(err, account.ErrTempSecretMismatch) {
			// A concurrent enable or verify-setup replaced the pending
			// secret between our read and the promote
			return sberrors.New(sberrors.ErrCodeInvalidState, "no pending 2FA setup found")
		}
		return sberrors.InternalWrap(err, "failed to promote pending secret")
	}

	slog.Info("Completed 2FA enrollment", "accountId", accountID)
	return nil
}

// VerifySignin checks a submitted code against the permanent secret of an
// account with 2FA enabled and returns the account's public profile fields.
// No lockout or attempt counting is applied; failed attempts are unbounded.
func (s *TwoFaService) VerifySignin(ctx context.Context, accountID uuid.UUID, code string) (account.Account, error) {
	acct, err := s.repository.GetAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return account.Account{}, sberrors.New(sberrors.ErrCodeInvalidState, "invalid request")
		}
		return account.Account{}, sberrors.InternalWrap(err, "failed to get account")
	}

	if !acct.TwoFactorEnabled {
		return account.Account{}, sberrors.New(sberrors.ErrCodeInvalidState, "invalid request")
	}

	if !ValidateTotpPasscode(acct.TwoFactorSecret, code) {
		return account.Account{}, sberrors.New(sberrors.ErrCodeInvalidCode, "invalid 2FA code")
	}

	return acct, nil
}
