package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/user-service/internal/api/middleware"
)

// ctxIdentity returns the email the Auth middleware resolved from the bearer
// token. An empty value means the route was mounted without the middleware.
func ctxIdentity(c echo.Context) (string, error) {
	email, _ := c.Get(middleware.IdentityKey).(string)
	if email == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, msgUnauthorized)
	}
	return email, nil
}
