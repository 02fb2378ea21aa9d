package auth

import (
	"github.com/labstack/echo/v4"

	"auth-service/internal/domain/user"
	apperrors "auth-service/pkg/errors"
)

// policyRule maps a path pattern to the role it requires. An empty role
// means any authenticated identity is sufficient.
type policyRule struct {
	pattern Pattern
	role    user.Role
}

// Policy authorizes requests that already carry a verified identity. Rules
// are evaluated in declaration order and the first match wins, so the
// precedence allowlist > role-scoped > default-authenticated is fixed by
// construction and cannot be reordered accidentally.
type Policy struct {
	allowlist []Pattern
	rules     []policyRule
	basePath  string
}

// NewPolicy builds the route authorization table: the own-info path needs
// any authenticated role, admin-prefixed paths need ADMIN, every other
// path needs a valid identity of any role.
func NewPolicy(basePath string) *Policy {
	return &Policy{
		allowlist: CompilePatterns(allowlistPatterns),
		rules: []policyRule{
			{pattern: CompilePattern("/api/my-informations")},
			{pattern: CompilePattern("/api/admins/**"), role: user.RoleAdmin},
		},
		basePath: basePath,
	}
}

// Authorize evaluates the policy table for each request. Role mismatch is
// a 403 ACCESS_DENIED; a missing identity on a guarded path is a 401
// INVALID_TOKEN. The two are never conflated.
func (p *Policy) Authorize() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := NormalizePath(c.Request().URL.Path, p.basePath)

			if MatchAny(p.allowlist, path) {
				return next(c)
			}

			roles, ok := c.Get(ContextKeyRoles).([]string)
			if !ok || len(roles) == 0 {
				return rejectInvalidToken(c)
			}

			for _, rule := range p.rules {
				if !rule.pattern.Match(path) {
					continue
				}
				if rule.role != "" && !hasAuthority(roles, rule.role) {
					return rejectAccessDenied(c)
				}
				break
			}

			return next(c)
		}
	}
}

func hasAuthority(roles []string, required user.Role) bool {
	authority := required.Authority()
	for _, r := range roles {
		if r == authority {
			return true
		}
	}
	return false
}

func rejectAccessDenied(c echo.Context) error {
	appErr := apperrors.AccessDenied()
	return c.JSON(appErr.Status, apperrors.NewResponse(appErr))
}
