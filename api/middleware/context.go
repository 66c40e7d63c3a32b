package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	contextUserIDKey   = "auth_user_id"
	contextUserTypeKey = "auth_user_type"
)

func SetAuthContext(c echo.Context, userID uuid.UUID, userType string) {
	c.Set(contextUserIDKey, userID)
	c.Set(contextUserTypeKey, userType)
}

func UserIDFromContext(c echo.Context) (uuid.UUID, bool) {
	value := c.Get(contextUserIDKey)
	userID, ok := value.(uuid.UUID)
	return userID, ok
}

func UserTypeFromContext(c echo.Context) (string, bool) {
	value := c.Get(contextUserTypeKey)
	userType, ok := value.(string)
	return userType, ok
}
