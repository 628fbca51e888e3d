package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/user-service/internal/core/domain"
	"github.com/99minutos/user-service/internal/infrastructure/security"
)

func newTokens(t *testing.T, secret string) *security.JWTService {
	t.Helper()
	s, err := security.NewJWTService([]byte(secret), time.Hour)
	if err != nil {
		t.Fatalf("token service: %v", err)
	}
	return s
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	e := echo.New()
	tokens := newTokens(t, "secret")
	signed, err := tokens.Issue(domain.Identity{Email: "alice@example.com"})
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := Auth(tokens)
	handler := mw(func(c echo.Context) error {
		called = true
		if c.Get(IdentityKey) != "alice@example.com" {
			t.Fatalf("identity not set, got %v", c.Get(IdentityKey))
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_LowercaseScheme(t *testing.T) {
	e := echo.New()
	tokens := newTokens(t, "secret")
	signed, _ := tokens.Issue(domain.Identity{Email: "alice@example.com"})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(tokens)(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	other, err := newTokens(t, "other-secret").Issue(domain.Identity{Email: "alice@example.com"})
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	cases := map[string]string{
		"missing header":       "",
		"blank header":         "   ",
		"scheme only":          "Bearer",
		"scheme and spaces":    "Bearer    ",
		"token without scheme": "abc.def.ghi",
		"wrong scheme":         "Token abc",
		"garbage token":        "Bearer not-a-token",
		"foreign signature":    "Bearer " + other,
	}

	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			mw := Auth(newTokens(t, "secret"))
			handler := mw(func(c echo.Context) error {
				t.Fatalf("should not reach next")
				return nil
			})

			if err := handler(c); err != nil {
				e.HTTPErrorHandler(err, c)
			}

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}

func TestBearerToken(t *testing.T) {
	cases := []struct {
		header, token, reason string
	}{
		{"", "", "missing"},
		{"Bearer", "", "malformed"},
		{"Basic dXNlcjpwYXNz", "", "malformed"},
		{"Bearer abc", "abc", ""},
		{"  BEARER   abc  ", "abc", ""},
	}
	for _, tc := range cases {
		token, reason := bearerToken(tc.header)
		if token != tc.token || reason != tc.reason {
			t.Errorf("bearerToken(%q) = (%q, %q), want (%q, %q)", tc.header, token, reason, tc.token, tc.reason)
		}
	}
}
