package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/prevue-ai/interview-server/internal/domain/entities"
)

// TokenValidator resolves a bearer token or auth cookie to a user
type TokenValidator interface {
	ValidateToken(c echo.Context, token string) (*entities.User, error)
}

// AuthCookieName is the cookie the browser client authenticates with
const AuthCookieName = "token"

// EchoAuth returns an Echo middleware that validates the JWT and sets
// "user_id" (uuid.UUID) and "user" (*entities.User) into Echo context
func EchoAuth(validator TokenValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing authorization token")
			}

			user, err := validator.ValidateToken(c, token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
			}

			c.Set("user", user)
			c.Set("user_id", user.ID)

			return next(c)
		}
	}
}

// RequireRole ensures the authenticated user holds one of the given roles.
// Must run after EchoAuth.
func RequireRole(roles ...entities.UserRole) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := c.Get("user").(*entities.User)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
			}

			for _, role := range roles {
				if user.Role == role {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, "Insufficient permissions")
		}
	}
}

// EchoOptionalAuth resolves the user when a valid token is present but
// lets anonymous requests through. Used on invitation links, where a
// signed-in visitor must be checked against the invited email.
func EchoOptionalAuth(validator TokenValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if token := extractToken(c); token != "" {
				if user, err := validator.ValidateToken(c, token); err == nil {
					c.Set("user", user)
					c.Set("user_id", user.ID)
				}
			}
			return next(c)
		}
	}
}

// GetUser retrieves the authenticated user from the Echo context
func GetUser(c echo.Context) (*entities.User, bool) {
	user, ok := c.Get("user").(*entities.User)
	return user, ok
}

func extractToken(c echo.Context) string {
	// Try Authorization header first
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		// Expected format: "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
			return parts[1]
		}
	}

	// Try cookie as fallback
	if cookie, err := c.Cookie(AuthCookieName); err == nil {
		return cookie.Value
	}

	return ""
}
