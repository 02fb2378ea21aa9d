package auth

const (
	ContextKeyUserID = "user_id"
	ContextKeyEmail  = "email"
	ContextKeyRoles  = "roles"

	headerAuthorization = "Authorization"

	// bearerPrefix is matched literally: case-sensitive scheme, single space.
	bearerPrefix = "Bearer "

	msgInvalidUserIDCtx = "invalid user ID in context"
	msgInvalidEmailCtx  = "invalid email in context"
	msgInvalidRolesCtx  = "invalid roles in context"
)

// allowlistPatterns are the paths that bypass authentication entirely.
// Order matters: these are checked before any token parsing is attempted.
var allowlistPatterns = []string{
	"/api/users/signup",
	"/api/admins/signup",
	"/api/signin",
	"/health",
	"/swagger-ui/**",
	"/swagger-ui.html",
	"/v3/api-docs/**",
	"/v3/api-docs.yaml",
	"/swagger-resources/**",
	"/webjars/**",
	"/configuration/**",
	"/error",
}
