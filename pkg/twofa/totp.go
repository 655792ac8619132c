package twofa

import (
	"log/slog"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

const (
	// TOTP_PERIOD is the time step in seconds
	TOTP_PERIOD = 30
	// TOTP_SKEW is the number of time steps accepted on either side of the
	// current one. A skew of 2 accepts the 5 codes computed for steps
	// T-2..T+2.
	TOTP_SKEW = 2
	// TOTP_SECRET_SIZE is the secret length in bytes (160 bits)
	TOTP_SECRET_SIZE = 20
)

// GenerateTotpSecret produces a fresh random secret and the otpauth
// enrollment URI that authenticator apps scan. The caller persists the
// secret; nothing is stored here.
func GenerateTotpSecret(accountName, issuer string) (secret, enrollmentURI string, err error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      issuer,
		AccountName: accountName,
		Period:      TOTP_PERIOD,
		SecretSize:  TOTP_SECRET_SIZE,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		slog.Error("Failed to generate totp secret", "accountName", accountName, "issuer", issuer, "error", err)
		return "", "", err
	}
	return key.Secret(), key.URL(), nil
}

// ValidateTotpPasscode checks a submitted code against a secret at the
// current time
func ValidateTotpPasscode(totpSecret, passcode string) bool {
	return ValidateTotpPasscodeAt(totpSecret, passcode, time.Now().UTC())
}

// ValidateTotpPasscodeAt checks a submitted code against a secret at the
// given time, tolerating TOTP_SKEW steps of clock drift in each direction.
// The underlying comparison is constant-time. A malformed secret or
// non-numeric code reads as a failed validation, never an error.
func ValidateTotpPasscodeAt(totpSecret, passcode string, t time.Time) bool {
	valid, err := totp.ValidateCustom(passcode, totpSecret, t, totp.ValidateOpts{
		Period:    TOTP_PERIOD,
		Skew:      TOTP_SKEW,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	if err != nil {
		slog.Debug("Totp passcode validation rejected input", "error", err)
		return false
	}
	return valid
}
