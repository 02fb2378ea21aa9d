package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"auth-service/internal/audit"
	"auth-service/internal/auth"
	"auth-service/internal/domain/user"
	"auth-service/internal/repository"
	apperrors "auth-service/pkg/errors"
)

type UserHandler struct {
	userRepo repository.UserRepository
	audit    AuditRecorder
}

func NewUserHandler(userRepo repository.UserRepository, auditLog AuditRecorder) *UserHandler {
	return &UserHandler{
		userRepo: userRepo,
		audit:    auditLog,
	}
}

type RoleUpdateRequest struct {
	Role string `json:"role"`
}

// MyInfo returns the profile of the authenticated subject. A subject whose
// row no longer exists is rejected with ACCESS_DENIED rather than 404.
func (h *UserHandler) MyInfo(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return err
	}

	u, err := h.userRepo.GetByID(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.AccessDenied()
		}
		return err
	}

	return c.JSON(http.StatusOK, newUserResponse(u))
}

// AssignRole grants a role to the target user. Reaching this handler
// already required the ADMIN authority via the access policy.
func (h *UserHandler) AssignRole(c echo.Context) error {
	targetID, err := strconv.ParseInt(c.Param(paramUserID), 10, 64)
	if err != nil {
		return apperrors.BadRequest(msgInvalidUserID)
	}

	var req RoleUpdateRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.BadRequest(msgInvalidRequestBody)
	}

	role, err := user.ParseRole(req.Role)
	if err != nil {
		return apperrors.BadRequest(msgInvalidRole)
	}

	u, err := h.userRepo.UpdateRole(c.Request().Context(), targetID, role)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.AccessDenied()
		}
		return err
	}

	actorID, _ := auth.GetUserID(c)
	h.record(c, &audit.Event{
		Action:    audit.ActionRoleGrant,
		Status:    audit.StatusSuccess,
		ActorID:   &actorID,
		SubjectID: &u.ID,
		Email:     u.Email,
		Metadata:  map[string]any{"role": string(role)},
	})

	return c.JSON(http.StatusOK, newUserResponse(u))
}

func (h *UserHandler) record(c echo.Context, event *audit.Event) {
	if h.audit != nil {
		h.audit.Record(c, event)
	}
}
