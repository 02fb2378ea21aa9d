package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runPolicy(t *testing.T, path string, roles []string) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	p := NewPolicy("")
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if roles != nil {
		c.Set(ContextKeyRoles, roles)
	}

	nextCalled := false
	next := func(c echo.Context) error {
		nextCalled = true
		return c.NoContent(http.StatusOK)
	}

	err := p.Authorize()(next)(c)
	require.NoError(t, err)
	return rec, nextCalled
}

func TestPolicy_AdminPathRequiresAdminRole(t *testing.T) {
	rec, nextCalled := runPolicy(t, "/api/admins/users/1/roles", []string{"ROLE_USER"})

	assert.False(t, nextCalled)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"error":{"code":"ACCESS_DENIED","message":"access denied"}}`, rec.Body.String())
}

func TestPolicy_AdminPathAllowsAdmin(t *testing.T) {
	rec, nextCalled := runPolicy(t, "/api/admins/users/1/roles", []string{"ROLE_ADMIN"})

	assert.True(t, nextCalled)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPolicy_OwnInfoAllowsAnyRole(t *testing.T) {
	for _, roles := range [][]string{{"ROLE_USER"}, {"ROLE_ADMIN"}} {
		_, nextCalled := runPolicy(t, "/api/my-informations", roles)
		assert.True(t, nextCalled, "roles %v", roles)
	}
}

func TestPolicy_DefaultRequiresIdentityOnly(t *testing.T) {
	_, nextCalled := runPolicy(t, "/api/anything-else", []string{"ROLE_USER"})
	assert.True(t, nextCalled)
}

func TestPolicy_MissingIdentityIs401Not403(t *testing.T) {
	rec, nextCalled := runPolicy(t, "/api/admins/users/1/roles", nil)

	assert.False(t, nextCalled)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":{"code":"INVALID_TOKEN","message":"invalid authentication token"}}`, rec.Body.String())
}

func TestPolicy_AllowlistedPathNeedsNoIdentity(t *testing.T) {
	for _, path := range []string{"/api/signin", "/api/users/signup", "/swagger-ui/index.html"} {
		_, nextCalled := runPolicy(t, path, nil)
		assert.True(t, nextCalled, "path %q", path)
	}
}
