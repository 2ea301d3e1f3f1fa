package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/parusoft/shop-backend/internal/service"
	"github.com/parusoft/shop-backend/internal/transport"
)

func respond(c echo.Context, code int, message string, data interface{}) error {
	return c.JSON(code, transport.Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func respondErr(c echo.Context, err error) error {
	code, message := errHTTP(err)
	return c.JSON(code, transport.Envelope{
		Success: false,
		Message: message,
	})
}

func errHTTP(err error) (int, string) {
	var code int
	switch {
	case errors.Is(err, service.ErrValidation):
		code = http.StatusBadRequest
	case errors.Is(err, service.ErrInsufficientStock):
		code = http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrUnauthenticated):
		code = http.StatusUnauthorized
	case errors.Is(err, service.ErrEmailTaken):
		code = http.StatusConflict
	default:
		return http.StatusInternalServerError, "internal server error"
	}

	// drop the wrapped sentinel suffix, keep the human part
	msg := err.Error()
	if i := strings.LastIndex(msg, ": "); i > 0 {
		msg = msg[:i]
	}
	return code, msg
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, transport.Envelope{
		Success: false,
		Message: message,
	})
}
