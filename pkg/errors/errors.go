package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Domain errors - Sentinel errors for use with errors.Is()
var (
	ErrInvalidToken       = errors.New("invalid authentication token")
	ErrAccessDenied       = errors.New("access denied")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailExists        = errors.New("email already exists")
	ErrNotFound           = errors.New("resource not found")
	ErrBadRequest         = errors.New("bad request")
	ErrInternalServer     = errors.New("internal server error")
)

// Error codes surfaced in HTTP error bodies.
const (
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeAccessDenied       = "ACCESS_DENIED"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeEmailAlreadyExists = "EMAIL_ALREADY_EXISTS"
	CodeBadRequest         = "BAD_REQUEST"
	CodeNotFound           = "NOT_FOUND"
	CodeInternalServer     = "INTERNAL_SERVER_ERROR"
)

const (
	msgInvalidToken       = "invalid authentication token"
	msgAccessDenied       = "access denied"
	msgInvalidCredentials = "invalid email or password"
	msgEmailExists        = "email is already registered"
	msgInternalServer     = "internal server error"
)

// AppError carries the error code and HTTP status for a request failure.
type AppError struct {
	Code    string
	Status  int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Constructors
func InvalidToken() *AppError {
	return &AppError{Code: CodeInvalidToken, Status: http.StatusUnauthorized, Message: msgInvalidToken, Err: ErrInvalidToken}
}

func AccessDenied() *AppError {
	return &AppError{Code: CodeAccessDenied, Status: http.StatusForbidden, Message: msgAccessDenied, Err: ErrAccessDenied}
}

func InvalidCredentials() *AppError {
	return &AppError{Code: CodeInvalidCredentials, Status: http.StatusUnauthorized, Message: msgInvalidCredentials, Err: ErrInvalidCredentials}
}

func EmailAlreadyExists() *AppError {
	return &AppError{Code: CodeEmailAlreadyExists, Status: http.StatusConflict, Message: msgEmailExists, Err: ErrEmailExists}
}

func NotFound(msg string) *AppError {
	return &AppError{Code: CodeNotFound, Status: http.StatusNotFound, Message: msg, Err: ErrNotFound}
}

func BadRequest(msg string) *AppError {
	return &AppError{Code: CodeBadRequest, Status: http.StatusBadRequest, Message: msg, Err: ErrBadRequest}
}

func InternalServer(msg string, err error) *AppError {
	return &AppError{Code: CodeInternalServer, Status: http.StatusInternalServerError, Message: msg, Err: err}
}

// Response is the JSON error body written for every rejected request.
type Response struct {
	Error Detail `json:"error"`
}

type Detail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func NewResponse(e *AppError) Response {
	return Response{Error: Detail{Code: e.Code, Message: e.Message}}
}
