package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/minutes-dashboard/internal/infrastructure/ratelimit"
)

// RateLimit returns an Echo middleware applying the per-client request
// window. The authenticated user ID keys the window when present, the remote
// address otherwise. A limiter backend failure lets the request through so a
// Redis outage cannot take the API down with it.
func RateLimit(limiter ratelimit.Limiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.RealIP()
			if claims, ok := GetClaims(c); ok {
				key = claims.UserID.String()
			}

			allowed, err := limiter.Allow(c.Request().Context(), key)
			if err != nil {
				c.Logger().Warnf("rate limiter unavailable: %v", err)
				return next(c)
			}
			if !allowed {
				return echo.NewHTTPError(http.StatusTooManyRequests, "Too many requests")
			}

			return next(c)
		}
	}
}
