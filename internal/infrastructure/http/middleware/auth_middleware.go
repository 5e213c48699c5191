package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/minutes-dashboard/pkg/jwt"
)

const (
	// ClaimsContextKey is the echo context key for the authenticated claims
	ClaimsContextKey = "claims"
	// UserIDContextKey is the echo context key for the authenticated user ID
	UserIDContextKey = "user_id"
)

// EchoAuth returns an Echo middleware that validates the bearer token and
// sets "user_id" (uuid.UUID) and "claims" (*jwt.Claims) into Echo context
func EchoAuth(manager *jwt.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing authorization token")
			}

			claims, err := manager.ValidateAccessToken(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
			}

			c.Set(ClaimsContextKey, claims)
			c.Set(UserIDContextKey, claims.UserID)

			return next(c)
		}
	}
}

// GetClaims retrieves the authenticated claims from the Echo context
func GetClaims(c echo.Context) (*jwt.Claims, bool) {
	claims, ok := c.Get(ClaimsContextKey).(*jwt.Claims)
	return claims, ok
}

// extractToken reads the token from the Authorization header, falling back to
// the access_token cookie
func extractToken(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		// Expected format: "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
			return parts[1]
		}
	}

	if cookie, err := c.Cookie("access_token"); err == nil {
		return cookie.Value
	}

	return ""
}
