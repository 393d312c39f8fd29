package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"Valid", "Sup3rSecure!pass", false},
		{"Too Short", "Ab1!x", true},
		{"Too Long", strings.Repeat("Aa1!", 40), true},
		{"No Uppercase", "lowercase1!pass!", true},
		{"No Lowercase", "UPPERCASE1!PASS!", true},
		{"No Digit", "NoDigitsHere!!ok", true},
		{"No Special", "NoSpecial123pass", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	assert.NoError(t, ValidateName("Jane Smith"))
	assert.Error(t, ValidateName("J"))
	assert.Error(t, ValidateName("   "))
	assert.Error(t, ValidateName(strings.Repeat("n", 61)))
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email   string
		wantErr bool
	}{
		{"investor@example.com", false},
		{"first.last+tag@sub.domain.co", false},
		{"no-at-sign.example.com", true},
		{"spaces in@example.com", true},
		{"trailing@example", true},
		{strings.Repeat("a", 250) + "@x.com", true},
	}

	for _, tt := range tests {
		err := ValidateEmail(tt.email)
		if tt.wantErr {
			assert.Error(t, err, tt.email)
		} else {
			assert.NoError(t, err, tt.email)
		}
	}
}
