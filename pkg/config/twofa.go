package config

// TwoFaConfig holds TOTP enrollment display settings
type TwoFaConfig struct {
	Issuer     string `env:"TWOFA_ISSUER" env-default:"Smart Brain - Face Detection App"`
	QRCodeSize int    `env:"TWOFA_QR_CODE_SIZE" env-default:"256"`
}
