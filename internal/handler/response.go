package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the flat error envelope every endpoint uses. Successful
// responses carry the resource itself, never a wrapper; the front-end
// reads profiles and verification results straight off the body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Error sends an error envelope with the given status.
func Error(c echo.Context, status int, message string) error {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return c.JSON(status, ErrorResponse{Error: message})
}

// Preflight answers OPTIONS requests with 204 and no body.
func Preflight(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}
