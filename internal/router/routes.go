package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/honeilabs/hap-intel/api/internal/auth"
	"github.com/honeilabs/hap-intel/api/internal/config"
	"github.com/honeilabs/hap-intel/api/internal/handler"
	middlewarepkg "github.com/honeilabs/hap-intel/api/internal/middleware"
)

// Request body ceilings, in bytes. The research payload is a small JSON
// object but clients occasionally paste whole documents into it; the verify
// payload is a single address.
const (
	profileBodyLimit = "2000000"
	verifyBodyLimit  = "200000"
)

// Handlers aggregates HTTP handlers used by the router. History and Auth are
// optional; they stay nil when no database is configured.
type Handlers struct {
	Profile     *handler.ProfileHandler
	VerifyEmail *handler.VerifyEmailHandler
	History     *handler.HistoryHandler
	Auth        *handler.AuthHandler
}

// Register wires all HTTP routes for the API.
func Register(e *echo.Echo, cfg *config.Config, jwtManager *auth.JWTManager, handlers Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{"status": "ok"})
	})

	api := e.Group("/api", middlewarepkg.APIHeaders())

	api.POST("/business-profile", handlers.Profile.Research,
		echoMiddleware.BodyLimit(profileBodyLimit),
		middlewarepkg.ProfileRateLimiter(cfg.RateLimitProfile))
	api.OPTIONS("/business-profile", handler.Preflight)

	api.POST("/verify-email", handlers.VerifyEmail.Verify,
		echoMiddleware.BodyLimit(verifyBodyLimit))
	api.OPTIONS("/verify-email", handler.Preflight)

	if handlers.Auth != nil {
		e.POST("/auth/login", handlers.Auth.Login)
	}

	if handlers.History != nil {
		secured := api.Group("/history", middlewarepkg.JWT(jwtManager))
		secured.GET("", handlers.History.List)
		secured.GET("/export.csv", handlers.History.ExportCSV)
		secured.DELETE("", handlers.History.Clear)
		secured.DELETE("/:id", handlers.History.Delete)
	}
}
