package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auth-service/internal/auth"
	"auth-service/internal/domain/user"
	apperrors "auth-service/pkg/errors"
	"auth-service/pkg/password"
)

const testSecret = "k9f2Lq8Zr4Wt6Yx1Bv3Nm5Jh7Gd0Sa2P"

type stubUserRepo struct {
	byID    map[int64]*user.User
	byEmail map[string]*user.User
	nextID  int64
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		byID:    make(map[int64]*user.User),
		byEmail: make(map[string]*user.User),
		nextID:  1,
	}
}

func (s *stubUserRepo) Create(_ context.Context, input user.CreateUserInput) (*user.User, error) {
	if _, ok := s.byEmail[input.Email]; ok {
		return nil, apperrors.EmailAlreadyExists()
	}

	now := time.Now()
	u := &user.User{
		ID:           s.nextID,
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: input.PasswordHash,
		Role:         input.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.nextID++
	s.byID[u.ID] = u
	s.byEmail[u.Email] = u
	return u, nil
}

func (s *stubUserRepo) GetByID(_ context.Context, id int64) (*user.User, error) {
	if u, ok := s.byID[id]; ok {
		return u, nil
	}
	return nil, apperrors.NotFound("user not found")
}

func (s *stubUserRepo) GetByEmail(_ context.Context, email string) (*user.User, error) {
	if u, ok := s.byEmail[email]; ok {
		return u, nil
	}
	return nil, apperrors.NotFound("user not found")
}

func (s *stubUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := s.byEmail[email]
	return ok, nil
}

func (s *stubUserRepo) UpdateRole(_ context.Context, id int64, role user.Role) (*user.User, error) {
	u, ok := s.byID[id]
	if !ok {
		return nil, apperrors.NotFound("user not found")
	}
	u.Role = role
	u.UpdatedAt = time.Now()
	return u, nil
}

func (s *stubUserRepo) seed(t *testing.T, username, email, plaintext string, role user.Role) *user.User {
	t.Helper()
	hash, err := password.Hash(plaintext)
	require.NoError(t, err)
	u, err := s.Create(context.Background(), user.CreateUserInput{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	})
	require.NoError(t, err)
	return u
}

func newJSONContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func assertAppError(t *testing.T, err error, code string, status int) {
	t.Helper()
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
	assert.Equal(t, status, appErr.Status)
}

func TestAuthHandler_Signup(t *testing.T) {
	repo := newStubUserRepo()
	h := NewAuthHandler(repo, auth.NewJWTService(testSecret, time.Hour), nil)

	c, rec := newJSONContext(t, http.MethodPost, "/api/users/signup",
		`{"email":"a@example.com","username":"alice","password":"Password123!"}`)

	require.NoError(t, h.Signup(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp SignupResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "alice", resp.Username)
	assert.Equal(t, "a@example.com", resp.Email)
	assert.Equal(t, "USER", resp.Role)
	assert.False(t, resp.IsDeleted)

	stored := repo.byEmail["a@example.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "Password123!", stored.PasswordHash, "password must be stored hashed")
}

func TestAuthHandler_AdminSignup(t *testing.T) {
	repo := newStubUserRepo()
	h := NewAuthHandler(repo, auth.NewJWTService(testSecret, time.Hour), nil)

	c, rec := newJSONContext(t, http.MethodPost, "/api/admins/signup",
		`{"email":"root@example.com","username":"root","password":"Password123!"}`)

	require.NoError(t, h.AdminSignup(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp SignupResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ADMIN", resp.Role)
}

func TestAuthHandler_SignupDuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	repo.seed(t, "alice", "a@example.com", "Password123!", user.RoleUser)
	h := NewAuthHandler(repo, auth.NewJWTService(testSecret, time.Hour), nil)

	c, _ := newJSONContext(t, http.MethodPost, "/api/users/signup",
		`{"email":"a@example.com","username":"alice2","password":"Password123!"}`)

	err := h.Signup(c)
	assertAppError(t, err, apperrors.CodeEmailAlreadyExists, http.StatusConflict)
}

func TestAuthHandler_SignupValidation(t *testing.T) {
	repo := newStubUserRepo()
	h := NewAuthHandler(repo, auth.NewJWTService(testSecret, time.Hour), nil)

	tests := []struct {
		name string
		body string
	}{
		{"bad email", `{"email":"not-an-email","username":"alice","password":"Password123!"}`},
		{"empty username", `{"email":"a@example.com","username":"","password":"Password123!"}`},
		{"short password", `{"email":"a@example.com","username":"alice","password":"short"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newJSONContext(t, http.MethodPost, "/api/users/signup", tt.body)
			err := h.Signup(c)
			assertAppError(t, err, apperrors.CodeBadRequest, http.StatusBadRequest)
		})
	}
}

func TestAuthHandler_Signin(t *testing.T) {
	repo := newStubUserRepo()
	u := repo.seed(t, "alice", "a@example.com", "Password123!", user.RoleUser)

	jwtService := auth.NewJWTService(testSecret, time.Hour)
	h := NewAuthHandler(repo, jwtService, nil)

	c, rec := newJSONContext(t, http.MethodPost, "/api/signin",
		`{"email":"a@example.com","password":"Password123!"}`)

	require.NoError(t, h.Signin(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp SigninResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	assert.False(t, strings.HasPrefix(resp.Token, "Bearer "), "response carries the raw token")

	claims, err := jwtService.Verify(resp.Token)
	require.NoError(t, err)
	userID, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, u.ID, userID)
	assert.Equal(t, u.Email, claims.Email)
	assert.Equal(t, []string{"ROLE_USER"}, claims.Roles)
}

func TestAuthHandler_SigninFailuresIndistinguishable(t *testing.T) {
	repo := newStubUserRepo()
	repo.seed(t, "alice", "a@example.com", "Password123!", user.RoleUser)
	h := NewAuthHandler(repo, auth.NewJWTService(testSecret, time.Hour), nil)

	tests := []struct {
		name string
		body string
	}{
		{"unknown email", `{"email":"ghost@example.com","password":"Password123!"}`},
		{"wrong password", `{"email":"a@example.com","password":"WrongPassword1!"}`},
		{"empty credentials", `{"email":"","password":""}`},
	}

	var errs []error
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newJSONContext(t, http.MethodPost, "/api/signin", tt.body)
			err := h.Signin(c)
			assertAppError(t, err, apperrors.CodeInvalidCredentials, http.StatusUnauthorized)
			errs = append(errs, err)
		})
	}

	// Every failure carries the same message to the caller.
	for _, err := range errs {
		var appErr *apperrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "invalid email or password", appErr.Message)
	}
}
