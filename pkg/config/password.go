package config

import (
	"github.com/smartbrain/smartbrain-api/pkg/login"
)

// PasswordComplexityConfig holds password policy configuration from environment variables
// This is shared across all services to avoid duplication
type PasswordComplexityConfig struct {
	Enabled                 bool `env:"PASSWORD_POLICY_ENABLED" env-default:"true"`
	RequiredDigit           bool `env:"PASSWORD_COMPLEXITY_REQUIRE_DIGIT" env-default:"true"`
	RequiredLowercase       bool `env:"PASSWORD_COMPLEXITY_REQUIRE_LOWERCASE" env-default:"true"`
	RequiredNonAlphanumeric bool `env:"PASSWORD_COMPLEXITY_REQUIRE_NON_ALPHANUMERIC" env-default:"true"`
	RequiredUppercase       bool `env:"PASSWORD_COMPLEXITY_REQUIRE_UPPERCASE" env-default:"true"`
	RequiredLength          int  `env:"PASSWORD_COMPLEXITY_REQUIRED_LENGTH" env-default:"8"`
	DisallowCommonPwds      bool `env:"PASSWORD_COMPLEXITY_DISALLOW_COMMON_PWDS" env-default:"true"`
	MaxRepeatedChars        int  `env:"PASSWORD_COMPLEXITY_MAX_REPEATED_CHARS" env-default:"3"`
}

// ToPasswordPolicy converts the configuration to a login.PasswordPolicy
func (c *PasswordComplexityConfig) ToPasswordPolicy() *login.PasswordPolicy {
	// If no config is provided, use the default policy
	if c == nil {
		return login.DefaultPasswordPolicy()
	}

	// If policy is disabled, return no-op policy
	if !c.Enabled {
		return login.NoOpPasswordPolicy()
	}

	return &login.PasswordPolicy{
		MinLength:          c.RequiredLength,
		RequireUppercase:   c.RequiredUppercase,
		RequireLowercase:   c.RequiredLowercase,
		RequireDigit:       c.RequiredDigit,
		RequireSpecialChar: c.RequiredNonAlphanumeric,
		DisallowCommonPwds: c.DisallowCommonPwds,
		MaxRepeatedChars:   c.MaxRepeatedChars,
	}
}
