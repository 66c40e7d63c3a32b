package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"roomi/internal/service"

	"github.com/labstack/echo/v4"
)

func decodeJSON(c echo.Context, target any) error {
	decoder := json.NewDecoder(c.Request().Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(target)
}

func writeError(c echo.Context, status int, err error) error {
	return c.JSON(status, map[string]string{"message": err.Error()})
}

// serviceErrorStatus maps each service sentinel to its HTTP status.
// Responses carry the sentinel's message only, never the wrapped
// cause, so transport details stay out of client-visible bodies.
var serviceErrorStatus = map[error]int{
	service.ErrInvalidInput:          http.StatusBadRequest,
	service.ErrCodeNotFoundOrExpired: http.StatusBadRequest,
	service.ErrInvalidCode:           http.StatusBadRequest,
	service.ErrTooManyAttempts:       http.StatusBadRequest,
	service.ErrNotifierUnavailable:   http.StatusBadGateway,
	service.ErrDuplicateAccount:      http.StatusConflict,
	service.ErrUsernameTaken:         http.StatusConflict,
	service.ErrInvalidCredentials:    http.StatusUnauthorized,
	service.ErrAccountDeactivated:    http.StatusForbidden,
	service.ErrNotHostelOwner:        http.StatusForbidden,
	service.ErrHostelLimitReached:    http.StatusConflict,
	service.ErrUserNotFound:          http.StatusNotFound,
	service.ErrHostelNotFound:        http.StatusNotFound,
}

func writeServiceError(c echo.Context, err error) error {
	for sentinel, status := range serviceErrorStatus {
		if errors.Is(err, sentinel) {
			return writeError(c, status, sentinel)
		}
	}
	return writeError(c, http.StatusInternalServerError, errors.New("internal server error"))
}

func parseLimitOffset(c echo.Context) (int, int) {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	return limit, offset
}

func stringPtr(value string) *string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return &value
}
