package middleware

import "github.com/labstack/echo/v4"

// APIHeaders pins the response headers the API contract promises on every
// reply: JSON content and an explicit no-store cache policy, since profiles
// carry fresh research and personal data.
func APIHeaders() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()
			h.Set(echo.HeaderContentType, "application/json; charset=utf-8")
			h.Set("Cache-Control", "no-store")
			return next(c)
		}
	}
}
