package auth

import (
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "auth-service/pkg/errors"
)

// TokenVerifier is the part of the token codec the interceptor consumes.
type TokenVerifier interface {
	Verify(tokenString string) (*Claims, error)
}

// Middleware gates every inbound request before it reaches route handlers.
// Allowlisted paths pass through untouched; everything else must present a
// verifiable bearer token. It holds no per-request state beyond the echo
// context.
type Middleware struct {
	verifier  TokenVerifier
	allowlist []Pattern
	basePath  string
}

func NewMiddleware(verifier TokenVerifier, basePath string) *Middleware {
	return &Middleware{
		verifier:  verifier,
		allowlist: CompilePatterns(allowlistPatterns),
		basePath:  basePath,
	}
}

// Authenticate runs the interception sequence in fixed order: normalize
// path, allowlist check, header scheme check, token verification, context
// attachment. Every rejection writes the same INVALID_TOKEN body and stops
// the pipeline.
func (m *Middleware) Authenticate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := NormalizePath(c.Request().URL.Path, m.basePath)

			if MatchAny(m.allowlist, path) {
				return next(c)
			}

			header := c.Request().Header.Get(headerAuthorization)
			if !strings.HasPrefix(header, bearerPrefix) {
				return rejectInvalidToken(c)
			}

			claims, err := m.verifier.Verify(strings.TrimPrefix(header, bearerPrefix))
			if err != nil {
				return rejectInvalidToken(c)
			}

			userID, err := claims.UserID()
			if err != nil {
				// Unparsable subject is indistinguishable from any
				// other token failure.
				return rejectInvalidToken(c)
			}

			c.Set(ContextKeyUserID, userID)
			c.Set(ContextKeyEmail, claims.Email)
			c.Set(ContextKeyRoles, claims.Roles)

			return next(c)
		}
	}
}

func rejectInvalidToken(c echo.Context) error {
	appErr := apperrors.InvalidToken()
	return c.JSON(appErr.Status, apperrors.NewResponse(appErr))
}

// GetUserID extracts the authenticated subject id from the context.
func GetUserID(c echo.Context) (int64, error) {
	userID := c.Get(ContextKeyUserID)
	if userID == nil {
		return 0, apperrors.InvalidToken()
	}

	id, ok := userID.(int64)
	if !ok {
		return 0, apperrors.InternalServer(msgInvalidUserIDCtx, nil)
	}

	return id, nil
}

// GetEmail extracts the authenticated principal's email from the context.
func GetEmail(c echo.Context) (string, error) {
	email := c.Get(ContextKeyEmail)
	if email == nil {
		return "", apperrors.InvalidToken()
	}

	s, ok := email.(string)
	if !ok {
		return "", apperrors.InternalServer(msgInvalidEmailCtx, nil)
	}

	return s, nil
}

// GetRoles extracts the granted authorities from the context.
func GetRoles(c echo.Context) ([]string, error) {
	roles := c.Get(ContextKeyRoles)
	if roles == nil {
		return nil, apperrors.InvalidToken()
	}

	rs, ok := roles.([]string)
	if !ok {
		return nil, apperrors.InternalServer(msgInvalidRolesCtx, nil)
	}

	return rs, nil
}
