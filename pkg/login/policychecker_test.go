package login

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckPasswordComplexity(t *testing.T) {
	checker := NewDefaultPasswordPolicyChecker(nil, nil)

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"Valid", "Str0ng!Pass", false},
		{"TooShort", "S1!a", true},
		{"NoUppercase", "str0ng!pass", true},
		{"NoLowercase", "STR0NG!PASS", true},
		{"NoDigit", "Strong!Pass", true},
		{"NoSpecialChar", "Str0ngPass1", true},
		{"CommonPassword", "password", true},
		{"RepeatedChars", "Straaa0ng!", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checker.CheckPasswordComplexity(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNoOpPasswordPolicy(t *testing.T) {
	checker := NewDefaultPasswordPolicyChecker(NoOpPasswordPolicy(), nil)
	assert.NoError(t, checker.CheckPasswordComplexity("x"))
}
