package respond

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Envelope is the response shape every service returns: success plus
// either data or a machine-readable code with a human message.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

const (
	CodeValidation   = "validation_error"
	CodeEmptyCart    = "empty_cart"
	CodeNotFound     = "not_found"
	CodeConflict     = "conflict"
	CodeUpstream     = "upstream_unavailable"
	CodeUnauthorized = "unauthorized"
	CodeInternal     = "internal_error"
)

func OK(c echo.Context, data any) error {
	return c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

func Created(c echo.Context, data any) error {
	return c.JSON(http.StatusCreated, Envelope{Success: true, Data: data})
}

func Error(c echo.Context, status int, code, message string) error {
	return c.JSON(status, Envelope{Success: false, Code: code, Message: message})
}
