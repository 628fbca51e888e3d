package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/user-service/internal/api/metrics"
	"github.com/99minutos/user-service/internal/core/ports"
)

// IdentityKey is the echo.Context key holding the authenticated email.
const IdentityKey = "email"

// Auth requires a valid bearer token and stores the resolved identity under
// IdentityKey. A missing, malformed or invalid header is always a plain 401.
func Auth(tokens ports.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, reason := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if token == "" {
				metrics.TokenRejectionsTotal.WithLabelValues(reason).Inc()
				return unauthorized()
			}

			id, err := tokens.Verify(token)
			if err != nil {
				metrics.TokenRejectionsTotal.WithLabelValues("invalid").Inc()
				return unauthorized()
			}

			c.Set(IdentityKey, id.Email)
			return next(c)
		}
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. It returns an empty token and a rejection reason for anything else,
// including a scheme with no token segment.
func bearerToken(header string) (token, reason string) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", "missing"
	}
	scheme, rest, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return "", "malformed"
	}
	token = strings.TrimSpace(rest)
	if token == "" {
		return "", "malformed"
	}
	return token, ""
}

func unauthorized() error {
	return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
}
