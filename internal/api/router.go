package api

import (
	"errors"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/mindsai/account-api/docs"
	"github.com/mindsai/account-api/internal/api/handler"
	"github.com/mindsai/account-api/internal/api/middleware"
	"github.com/mindsai/account-api/internal/api/session"
	"github.com/mindsai/account-api/internal/core/ports"
	"github.com/mindsai/account-api/internal/core/security"
	"github.com/mindsai/account-api/internal/core/service"
	"github.com/mindsai/account-api/internal/infrastructure/http/handlers"
)

// Deps are the collaborators the router wires into its handlers.
type Deps struct {
	Users    ports.UserRepository
	Hasher   ports.PasswordHasher
	Tokens   *security.TokenIssuer
	Denylist ports.SessionDenylist // optional
	Pingers  map[string]ports.Pinger

	SecureCookies bool
	CORSOrigins   []string

	// Registry enables /metrics and HTTP metrics when set.
	Registry *prometheus.Registry
	Logger   zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) (*echo.Echo, error) {
	if d.Users == nil || d.Hasher == nil || d.Tokens == nil {
		return nil, errors.New("router: users, hasher and tokens are required")
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Logger))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     d.CORSOrigins,
		AllowMethods:     []string{echo.GET, echo.POST, echo.PUT, echo.PATCH, echo.DELETE},
		AllowCredentials: true,
	}))
	if d.Registry != nil {
		e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Namespace:  "account",
			Registerer: d.Registry,
		}))
		e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: d.Registry}))
	}

	// --- Dependencies ---
	transport := session.NewTransport(d.SecureCookies, security.TokenTTL)
	authService, err := service.NewAuthService(d.Users, d.Hasher, d.Tokens, d.Denylist, d.Logger.With().Str("component", "auth").Logger())
	if err != nil {
		return nil, err
	}
	userService := service.NewUserService(d.Users, d.Hasher, d.Logger.With().Str("component", "users").Logger())

	authHandler := handler.NewAuthHandler(authService, userService, transport, d.Tokens, d.Logger)
	userHandler := handler.NewUserHandler(userService)

	authenticated := middleware.Auth(transport, d.Tokens, d.Denylist, d.Logger)
	owner := middleware.Owner("id")

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout)
	e.GET("/auth/me", authHandler.Me, authenticated)

	// --- User routes ---
	e.POST("/users/signup", userHandler.Signup)
	e.GET("/users", userHandler.List, authenticated)
	e.GET("/users/:id", userHandler.Get, authenticated, owner)
	e.PATCH("/users/:id", userHandler.Update, authenticated, owner)
	e.DELETE("/users/:id", userHandler.Delete, authenticated, owner)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(d.Pingers, d.Logger)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- API docs ---
	e.GET("/api-docs/*", echoSwagger.WrapHandler)

	return e, nil
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= 500 {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
