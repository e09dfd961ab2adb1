package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"wastewise-pickup-demo/internal/service"
)

// AuthMiddleware resolves the bearer token to a user and stores it on the
// request context. Requests without a valid session get 401.
func AuthMiddleware(authService service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, err := authService.CurrentUser(c.Request().Context(), bearerToken(c))
			if err != nil {
				return err // infrastructure fault, not a missing session
			}
			if user == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "login required")
			}

			c.Set("user_id", user.ID)
			c.Set("user", user)
			return next(c)
		}
	}
}

func bearerToken(c echo.Context) string {
	auth := c.Request().Header.Get(echo.HeaderAuthorization)
	if token, found := strings.CutPrefix(auth, "Bearer "); found {
		return token
	}
	return ""
}
