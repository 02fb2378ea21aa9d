package http

import (
	"context"
	stdhttp "net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"auth-service/internal/auth"
	"auth-service/internal/config"
	"auth-service/internal/http/handler"
	"auth-service/internal/http/middleware"
	"auth-service/internal/repository"
)

const (
	jsonKeyStatus    = "status"
	statusOK         = "ok"
	requestBodyLimit = "64K"
)

type ServerDependencies struct {
	Config         *config.Config
	UserRepo       repository.UserRepository
	JWTService     *auth.JWTService
	AuthMiddleware *auth.Middleware
	Policy         *auth.Policy
	AuditLogger    handler.AuditRecorder
}

type Server struct {
	echo *echo.Echo
	deps *ServerDependencies
}

func NewServer(deps *ServerDependencies) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = CustomHTTPErrorHandler

	e.Server.ReadTimeout = deps.Config.Server.ReadTimeout
	e.Server.WriteTimeout = deps.Config.Server.WriteTimeout

	// Request ID middleware first so every log line and error body can
	// carry the ID.
	e.Use(middleware.RequestID())
	e.Use(middleware.SecurityHeaders())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.BodyLimit(requestBodyLimit))

	globalRateLimiter := middleware.NewGlobalRateLimiter()
	e.Use(globalRateLimiter.Middleware())

	// Authentication before authorization: the interceptor settles the
	// allowlist and token questions, the policy settles roles.
	e.Use(deps.AuthMiddleware.Authenticate())
	e.Use(deps.Policy.Authorize())

	strictRateLimiter := middleware.NewStrictRateLimiter()

	authHandler := handler.NewAuthHandler(deps.UserRepo, deps.JWTService, deps.AuditLogger)
	userHandler := handler.NewUserHandler(deps.UserRepo, deps.AuditLogger)

	api := e.Group("/api")
	api.POST("/users/signup", authHandler.Signup, strictRateLimiter.Middleware())
	api.POST("/admins/signup", authHandler.AdminSignup, strictRateLimiter.Middleware())
	api.POST("/signin", authHandler.Signin, strictRateLimiter.Middleware())
	api.GET("/my-informations", userHandler.MyInfo)
	api.PATCH("/admins/users/:userId/roles", userHandler.AssignRole)

	e.GET("/health", healthCheck)

	return &Server{
		echo: e,
		deps: deps,
	}
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func healthCheck(c echo.Context) error {
	return c.JSON(stdhttp.StatusOK, map[string]string{
		jsonKeyStatus: statusOK,
	})
}
