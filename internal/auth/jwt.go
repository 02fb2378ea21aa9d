package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"auth-service/internal/domain/user"
)

// Issuer is the fixed iss claim stamped into and required from every token.
const Issuer = "auth0"

const errSignTokenFmt = "failed to sign token: %w"

// ErrInvalidToken is the single error returned for every verification
// failure: malformed structure, bad signature, wrong issuer, expired token.
// Callers must not be able to tell which check failed.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the verified identity carried by a token. A Claims value only
// ever exists as the output of a successful Verify call.
type Claims struct {
	Email string   `json:"email"`
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// UserID parses the numeric subject identifier.
func (c *Claims) UserID() (int64, error) {
	return strconv.ParseInt(c.Subject, 10, 64)
}

// JWTService signs and verifies tokens. It is the sole holder of the
// signing secret and is safe for concurrent use: state is immutable after
// construction.
type JWTService struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

func NewJWTService(secret string, expiry time.Duration) *JWTService {
	return &JWTService{
		secret: []byte(secret),
		expiry: expiry,
		now:    time.Now,
	}
}

// Issue creates a signed token for the given identity. The token carries
// the fixed issuer, the decimal user id as subject, the email claim, a
// single-element roles claim, and iat/exp derived from now.
func (s *JWTService) Issue(userID int64, email string, role user.Role, now time.Time) (string, error) {
	claims := Claims{
		Email: email,
		Roles: []string{role.Authority()},
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf(errSignTokenFmt, err)
	}

	return signed, nil
}

// Verify validates structure, signature, issuer, and expiry. Any failure
// collapses to ErrInvalidToken so the response cannot act as an oracle for
// which check rejected the token.
func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return s.now() }),
	)

	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	if len(claims.Roles) == 0 {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
