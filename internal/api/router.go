package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/dashkit/admin-api/internal/api/handler"
	"github.com/dashkit/admin-api/internal/api/middleware"
	"github.com/dashkit/admin-api/internal/core/domain"
	"github.com/dashkit/admin-api/internal/core/ports"
)

// Deps are the collaborators the HTTP layer is built from.
type Deps struct {
	Users      ports.UserService
	Posts      ports.PostService
	Auth       ports.AuthService
	Activities ports.ActivityService
	Status     ports.StatusService
	Sessions   ports.SessionStore
	// Accounts reloads the session's user on every authenticated request. Nil trusts the token.
	Accounts middleware.AccountLookup
	// Readiness lists the dependencies pinged by /health/ready, keyed by name.
	Readiness map[string]ports.Pinger
	JWTSecret string
	Logger    zerolog.Logger
	// Registry receives the HTTP request metrics. Nil means the prometheus default registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Logger))
	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if d.Registry != nil {
		registerer, gatherer = d.Registry, d.Registry
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "admin",
		Registerer: registerer,
	}))

	// --- Operational endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.Readiness)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	verifyToken := middleware.Auth(d.JWTSecret, d.Sessions)
	currentAccount := middleware.CurrentAccount(d.Accounts)
	authn := func(next echo.HandlerFunc) echo.HandlerFunc {
		return verifyToken(currentAccount(next))
	}
	adminOrManager := middleware.RBAC(domain.RoleAdmin, domain.RoleManager)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	api := e.Group("/api")

	// --- Auth ---
	authHandler := handler.NewAuthHandler(d.Auth)
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/forgot-password", authHandler.ForgotPassword)
	auth.POST("/logout", authHandler.Logout, authn)
	auth.GET("/me", authHandler.Me, authn)

	// --- Users ---
	userHandler := handler.NewUserHandler(d.Users)
	users := api.Group("/users", authn)
	users.GET("", userHandler.List)
	users.GET("/:id", userHandler.Get)
	users.POST("", userHandler.Create, adminOrManager)
	users.PATCH("/:id", userHandler.Update, adminOrManager)
	users.DELETE("/:id", userHandler.Delete, adminOnly)

	// --- Posts ---
	postHandler := handler.NewPostHandler(d.Posts)
	posts := api.Group("/posts", authn)
	posts.GET("", postHandler.List)
	posts.GET("/stats", postHandler.Stats)
	posts.GET("/:id", postHandler.Get)
	posts.POST("", postHandler.Create)
	posts.PATCH("/:id", postHandler.Update)
	posts.DELETE("/:id", postHandler.Delete)

	// --- Activity feed ---
	activityHandler := handler.NewActivityHandler(d.Activities)
	api.GET("/activities", activityHandler.List, authn, adminOrManager)

	// --- Store status ---
	statusHandler := handler.NewStatusHandler(d.Status)
	api.GET("/db/status", statusHandler.Store, authn, adminOnly)

	return e
}

// requestLogger emits one zerolog event per request.
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
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
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
