package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	echomw "github.com/johnquangdev/minutes-dashboard/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/minutes-dashboard/internal/infrastructure/ratelimit"
	"github.com/johnquangdev/minutes-dashboard/pkg/config"
	"github.com/johnquangdev/minutes-dashboard/pkg/jwt"
)

// Router holds all handlers
type Router struct {
	cfg            *config.Config
	minutesHandler *Minutes
	jwtManager     *jwt.Manager
	limiter        ratelimit.Limiter
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, minutesHandler *Minutes, jwtManager *jwt.Manager, limiter ratelimit.Limiter) *Router {
	return &Router{
		cfg:            cfg,
		minutesHandler: minutesHandler,
		jwtManager:     jwtManager,
		limiter:        limiter,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// API v1 group, authenticated and rate limited
	v1 := e.Group("/v1")
	v1.Use(echomw.EchoAuth(rt.jwtManager))
	if rt.limiter != nil {
		v1.Use(echomw.RateLimit(rt.limiter))
	}

	rt.setupMinutesRoutes(v1)
}

// setupMinutesRoutes configures minutes generation and approval routes
func (rt *Router) setupMinutesRoutes(g *echo.Group) {
	minutesGroup := g.Group("/minutes")

	minutesGroup.POST("", rt.minutesHandler.Generate)
	minutesGroup.GET("", rt.minutesHandler.List)
	minutesGroup.GET("/:meetingID", rt.minutesHandler.GetByMeeting)
	minutesGroup.PATCH("/:id/status", rt.minutesHandler.UpdateStatus)

	g.POST("/transcripts/import", rt.minutesHandler.ImportTranscript)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"time":        time.Now().Format(time.RFC3339),
		"environment": rt.cfg.Server.Environment,
	})
}
