package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "auth-service/pkg/errors"
)

// CustomHTTPErrorHandler renders every error escaping a handler as the
// structured {"error":{"code","message"}} body. Internal errors are
// sanitized; the detail goes to the log, not the client.
func CustomHTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	appErr := toAppError(err)

	requestID := c.Response().Header().Get(echo.HeaderXRequestID)
	if requestID == "" {
		requestID = "unknown"
	}

	if appErr.Status >= http.StatusInternalServerError {
		c.Logger().Error("internal_server_error",
			"request_id", requestID,
			"status", appErr.Status,
			"error", err.Error())
	} else {
		c.Logger().Warn("client_error",
			"request_id", requestID,
			"status", appErr.Status,
			"error", err.Error())
	}

	if err := c.JSON(appErr.Status, apperrors.NewResponse(appErr)); err != nil {
		c.Logger().Error(err)
	}
}

func toAppError(err error) *apperrors.AppError {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Status >= http.StatusInternalServerError {
			return apperrors.InternalServer(http.StatusText(http.StatusInternalServerError), nil)
		}
		return appErr
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		switch httpErr.Code {
		case http.StatusNotFound:
			return apperrors.NotFound(http.StatusText(http.StatusNotFound))
		case http.StatusMethodNotAllowed:
			return apperrors.BadRequest(http.StatusText(http.StatusMethodNotAllowed))
		case http.StatusBadRequest, http.StatusUnsupportedMediaType, http.StatusRequestEntityTooLarge:
			return apperrors.BadRequest(fmt.Sprintf("%v", httpErr.Message))
		}
	}

	return apperrors.InternalServer(http.StatusText(http.StatusInternalServerError), nil)
}
