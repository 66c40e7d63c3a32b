package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func RequireUserType(userType string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			currentType, ok := UserTypeFromContext(c)
			if !ok || currentType != userType {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}
