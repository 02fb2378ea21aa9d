package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"valid", "user@example.com", false},
		{"valid with plus tag", "user+tag@example.com", false},
		{"valid subdomain", "user@mail.example.co.uk", false},
		{"empty", "", true},
		{"missing at sign", "userexample.com", true},
		{"missing domain", "user@", true},
		{"missing tld", "user@example", true},
		{"spaces inside", "us er@example.com", true},
		{"too long", strings.Repeat("a", 250) + "@example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Email(tt.email)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPassword(t *testing.T) {
	assert.NoError(t, Password("12345678"))
	assert.NoError(t, Password(strings.Repeat("x", 128)))
	assert.Error(t, Password("1234567"))
	assert.Error(t, Password(""))
	assert.Error(t, Password(strings.Repeat("x", 129)))
}

func TestUsername(t *testing.T) {
	assert.NoError(t, Username("alice"))
	assert.NoError(t, Username(strings.Repeat("x", 100)))
	assert.Error(t, Username(""))
	assert.Error(t, Username(strings.Repeat("x", 101)))
}
