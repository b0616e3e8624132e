package middleware

import (
	"net/http"
	"strings"

	"github.com/inkgen/ai-blog/backend/internal/auth"
	"github.com/inkgen/ai-blog/backend/internal/models"
	"github.com/inkgen/ai-blog/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// CurrentUserKey is the echo context key holding the resolved *models.User.
const CurrentUserKey = "currentUser"

// AuthMiddleware resolves the bearer credential on each request into a full
// user record before the handler runs. The token value is accepted raw, with
// or without a "Bearer " scheme prefix. Every identity failure is a terminal
// 403: missing credential, undecodable token, or a subject with no matching
// user. No repository or provider call happens past a failed resolution.
func AuthMiddleware(tokens *auth.TokenService, users repositories.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			credential := extractToken(c.Request())
			if credential == "" {
				return echo.NewHTTPError(http.StatusForbidden, "Not authenticated")
			}

			claims, err := tokens.Decode(credential)
			if err != nil {
				return echo.NewHTTPError(http.StatusForbidden, "Invalid token")
			}

			user, err := users.GetUserByEmail(claims.Subject)
			if err != nil {
				return echo.NewHTTPError(http.StatusForbidden, "User not found")
			}

			c.Set(CurrentUserKey, user)
			return next(c)
		}
	}
}

// extractToken returns the credential from the Authorization header. A
// "Bearer " prefix is stripped when present but not required.
func extractToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return header
}

// CurrentUser returns the authenticated user stored by AuthMiddleware.
func CurrentUser(c echo.Context) *models.User {
	user, _ := c.Get(CurrentUserKey).(*models.User)
	return user
}
