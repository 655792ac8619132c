package login

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// PasswordPolicy defines the requirements for password complexity
type PasswordPolicy struct {
	MinLength          int
	RequireUppercase   bool
	RequireLowercase   bool
	RequireDigit       bool
	RequireSpecialChar bool
	DisallowCommonPwds bool
	MaxRepeatedChars   int
}

// PasswordPolicyChecker defines the interface for checking password complexity
type PasswordPolicyChecker interface {
	CheckPasswordComplexity(password string) error
	GetPolicy() *PasswordPolicy
}

var (
	uppercasePattern = regexp.MustCompile(`[A-Z]`)
	lowercasePattern = regexp.MustCompile(`[a-z]`)
	digitPattern     = regexp.MustCompile(`[0-9]`)
	specialPattern   = regexp.MustCompile(`[^a-zA-Z0-9]`)
)

// DefaultPasswordPolicyChecker implements the PasswordPolicyChecker interface
type DefaultPasswordPolicyChecker struct {
	policy          *PasswordPolicy
	commonPasswords map[string]bool
}

// NewDefaultPasswordPolicyChecker creates a new default password policy checker
func NewDefaultPasswordPolicyChecker(policy *PasswordPolicy, commonPasswords map[string]bool) *DefaultPasswordPolicyChecker {
	if policy == nil {
		policy = DefaultPasswordPolicy()
	}

	if commonPasswords == nil {
		commonPasswords = defaultCommonPasswords()
	}

	return &DefaultPasswordPolicyChecker{
		policy:          policy,
		commonPasswords: commonPasswords,
	}
}

// CheckPasswordComplexity verifies that a password meets the complexity requirements
func (pc *DefaultPasswordPolicyChecker) CheckPasswordComplexity(password string) error {
	// Check minimum length
	if len(password) < pc.policy.MinLength {
		return fmt.Errorf("password must be at least %d characters long", pc.policy.MinLength)
	}

	// Check for uppercase letters if required
	if pc.policy.RequireUppercase && !uppercasePattern.MatchString(password) {
		return errors.New("password must contain at least one uppercase letter")
	}

	// Check for lowercase letters if required
	if pc.policy.RequireLowercase && !lowercasePattern.MatchString(password) {
		return errors.New("password must contain at least one lowercase letter")
	}

	// Check for digits if required
	if pc.policy.RequireDigit && !digitPattern.MatchString(password) {
		return errors.New("password must contain at least one digit")
	}

	// Check for special characters if required
	if pc.policy.RequireSpecialChar && !specialPattern.MatchString(password) {
		return errors.New("password must contain at least one special character")
	}

	// Check for common passwords
	if pc.policy.DisallowCommonPwds && pc.isCommonPassword(password) {
		return errors.New("password is too common, please choose a more secure password")
	}

	// Check for repeated characters
	if pc.policy.MaxRepeatedChars > 0 && hasRepeatedChars(password, pc.policy.MaxRepeatedChars) {
		return fmt.Errorf("password cannot contain more than %d consecutive repeated characters", pc.policy.MaxRepeatedChars)
	}

	return nil
}

func (pc *DefaultPasswordPolicyChecker) isCommonPassword(password string) bool {
	return pc.commonPasswords[strings.ToLower(password)]
}

func hasRepeatedChars(password string, maxRepeated int) bool {
	for i := 0; i < len(password)-maxRepeated+1; i++ {
		if strings.Count(password[i:i+maxRepeated], string(password[i])) == maxRepeated {
			return true
		}
	}
	return false
}

// GetPolicy returns the password policy
func (pc *DefaultPasswordPolicyChecker) GetPolicy() *PasswordPolicy {
	return pc.policy
}

// DefaultPasswordPolicy returns a default password policy
func DefaultPasswordPolicy() *PasswordPolicy {
	return &PasswordPolicy{
		MinLength:          8,
		RequireUppercase:   true,
		RequireLowercase:   true,
		RequireDigit:       true,
		RequireSpecialChar: true,
		DisallowCommonPwds: true,
		MaxRepeatedChars:   3,
	}
}

// NoOpPasswordPolicy returns a policy that accepts any non-empty password
func NoOpPasswordPolicy() *PasswordPolicy {
	return &PasswordPolicy{MinLength: 1}
}

func defaultCommonPasswords() map[string]bool {
	// Small sample - a production deployment would load thousands from a file
	commonPwds := []string{
		"password", "123456", "12345678", "qwerty", "admin",
		"welcome", "login", "abc123", "letmein", "monkey",
	}

	result := make(map[string]bool)
	for _, pwd := range commonPwds {
		result[pwd] = true
	}
	return result
}
