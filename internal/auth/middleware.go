package auth

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const ContextUserIDKey = "user_id"

// JWTMiddleware требует Bearer access-токен и кладет user_id в контекст echo.
func JWTMiddleware(manager *TokenManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			scheme, tokenString, found := strings.Cut(header, " ")
			if !found || !strings.EqualFold(scheme, "Bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			tokenString = strings.TrimSpace(tokenString)
			if tokenString == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := manager.ParseAccessToken(tokenString)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			userID, err := uuid.Parse(claims.Subject)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token subject")
			}

			c.Set(ContextUserIDKey, userID)
			return next(c)
		}
	}
}

// UserIDFromContext читает идентификатор пользователя, сохраненный JWTMiddleware.
func UserIDFromContext(c echo.Context) (uuid.UUID, bool) {
	value := c.Get(ContextUserIDKey)
	userID, ok := value.(uuid.UUID)
	return userID, ok
}
