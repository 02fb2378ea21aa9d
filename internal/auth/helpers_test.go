package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

// issueWithIssuer signs a token with the test secret but an arbitrary
// issuer, bypassing the service so issuer validation can be exercised.
func issueWithIssuer(t *testing.T, issuer string) string {
	t.Helper()

	now := time.Now()
	claims := Claims{
		Email: "a@example.com",
		Roles: []string{"ROLE_USER"},
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   "1",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

// issueWithSubject signs a token with a non-numeric subject for
// interceptor subject-parsing tests.
func issueWithSubject(t *testing.T, subject string) string {
	t.Helper()

	now := time.Now()
	claims := Claims{
		Email: "a@example.com",
		Roles: []string{"ROLE_USER"},
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}
