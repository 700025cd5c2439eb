// middleware/auth_middleware.go
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/soundcrate/soundcrate_backend/models"
)

// TokenVerifier validates a client's ID token with the identity provider
// and returns the caller's durable uid.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (string, error)
}

const userIDContextKey = "userID"

// RequireAuth verifies the Bearer ID token on the request and stores the
// caller's uid in the request context. Requests without a valid token are
// rejected before reaching the handler.
func RequireAuth(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, models.Response{
					Status:  http.StatusUnauthorized,
					Message: "You must be signed in",
				})
			}

			idToken := strings.TrimPrefix(header, "Bearer ")
			uid, err := verifier.VerifyIDToken(c.Request().Context(), idToken)
			if err != nil {
				c.Logger().Errorf("ID token verification failed: %v", err)
				return c.JSON(http.StatusUnauthorized, models.Response{
					Status:  http.StatusUnauthorized,
					Message: "Invalid or expired session",
				})
			}

			c.Set(userIDContextKey, uid)
			return next(c)
		}
	}
}

// GetUserID returns the authenticated caller's uid, or "" when the request
// did not pass through RequireAuth
func GetUserID(c echo.Context) string {
	uid, _ := c.Get(userIDContextKey).(string)
	return uid
}
