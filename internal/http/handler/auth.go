package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"auth-service/internal/audit"
	"auth-service/internal/auth"
	"auth-service/internal/domain/user"
	"auth-service/internal/repository"
	apperrors "auth-service/pkg/errors"
	"auth-service/pkg/password"
	"auth-service/pkg/validator"
)

// AuditRecorder is the slice of the audit logger the handlers consume.
// A nil recorder disables auditing, which keeps tests free of a database.
type AuditRecorder interface {
	Record(c echo.Context, event *audit.Event)
}

type AuthHandler struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	audit      AuditRecorder
	now        func() time.Time
}

func NewAuthHandler(userRepo repository.UserRepository, jwtService *auth.JWTService, auditLog AuditRecorder) *AuthHandler {
	return &AuthHandler{
		userRepo:   userRepo,
		jwtService: jwtService,
		audit:      auditLog,
		now:        time.Now,
	}
}

type SignupRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup creates a standard user account.
func (h *AuthHandler) Signup(c echo.Context) error {
	return h.signup(c, user.RoleUser)
}

// AdminSignup creates an administrator account.
func (h *AuthHandler) AdminSignup(c echo.Context) error {
	return h.signup(c, user.RoleAdmin)
}

func (h *AuthHandler) signup(c echo.Context, role user.Role) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.BadRequest(msgInvalidRequestBody)
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validator.Email(req.Email); err != nil {
		return apperrors.BadRequest(err.Error())
	}

	if err := validator.Username(req.Username); err != nil {
		return apperrors.BadRequest(err.Error())
	}

	if err := validator.Password(req.Password); err != nil {
		return apperrors.BadRequest(err.Error())
	}

	ctx := c.Request().Context()
	exists, err := h.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return apperrors.InternalServer(err.Error(), err)
	}
	if exists {
		return apperrors.EmailAlreadyExists()
	}

	passwordHash, err := password.Hash(req.Password)
	if err != nil {
		return apperrors.InternalServer(msgPasswordProcess, err)
	}

	u, err := h.userRepo.Create(ctx, user.CreateUserInput{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: passwordHash,
		Role:         role,
	})
	if err != nil {
		return err
	}

	h.record(c, &audit.Event{
		Action:  audit.ActionSignup,
		Status:  audit.StatusSuccess,
		ActorID: &u.ID,
		Email:   u.Email,
	})

	return c.JSON(http.StatusCreated, newSignupResponse(u))
}

// Signin exchanges valid credentials for a signed token. Unknown email and
// wrong password are indistinguishable to the caller, and a dummy hash
// comparison keeps the timing of the two paths aligned.
func (h *AuthHandler) Signin(c echo.Context) error {
	var req SigninRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.BadRequest(msgInvalidRequestBody)
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		password.Verify("", password.DummyHash)
		return h.rejectSignin(c, req.Email)
	}

	u, err := h.userRepo.GetByEmail(c.Request().Context(), req.Email)
	if err != nil {
		password.Verify(req.Password, password.DummyHash)
		return h.rejectSignin(c, req.Email)
	}

	if !password.Verify(req.Password, u.PasswordHash) {
		return h.rejectSignin(c, req.Email)
	}

	token, err := h.jwtService.Issue(u.ID, u.Email, u.Role, h.now())
	if err != nil {
		return apperrors.InternalServer(msgGenerateTokenFail, err)
	}

	h.record(c, &audit.Event{
		Action:  audit.ActionSignin,
		Status:  audit.StatusSuccess,
		ActorID: &u.ID,
		Email:   u.Email,
	})

	return c.JSON(http.StatusOK, SigninResponse{Token: token})
}

func (h *AuthHandler) rejectSignin(c echo.Context, email string) error {
	h.record(c, &audit.Event{
		Action: audit.ActionSignin,
		Status: audit.StatusFailure,
		Email:  email,
	})
	return apperrors.InvalidCredentials()
}

func (h *AuthHandler) record(c echo.Context, event *audit.Event) {
	if h.audit != nil {
		h.audit.Record(c, event)
	}
}
