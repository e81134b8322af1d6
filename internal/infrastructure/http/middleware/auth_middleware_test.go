package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/prevue-ai/interview-server/internal/domain/entities"
)

type stubValidator struct {
	user *entities.User
}

func (v *stubValidator) ValidateToken(_ echo.Context, token string) (*entities.User, error) {
	if token == "good-token" && v.user != nil {
		return v.user, nil
	}
	return nil, errors.New("invalid token")
}

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func runRequest(t *testing.T, mw echo.MiddlewareFunc, decorate func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if decorate != nil {
		decorate(req)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := mw(okHandler)(c)
	if err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestEchoAuth_BearerHeader(t *testing.T) {
	user := entities.NewUser("ada@example.com", "Ada")
	mw := EchoAuth(&stubValidator{user: user})

	rec := runRequest(t, mw, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer good-token")
	})
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestEchoAuth_Cookie(t *testing.T) {
	user := entities.NewUser("ada@example.com", "Ada")
	mw := EchoAuth(&stubValidator{user: user})

	rec := runRequest(t, mw, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: "good-token"})
	})
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestEchoAuth_MissingToken(t *testing.T) {
	mw := EchoAuth(&stubValidator{})

	rec := runRequest(t, mw, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestEchoAuth_BadToken(t *testing.T) {
	mw := EchoAuth(&stubValidator{})

	rec := runRequest(t, mw, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer forged")
	})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestEchoOptionalAuth(t *testing.T) {
	user := entities.NewUser("ada@example.com", "Ada")
	mw := EchoOptionalAuth(&stubValidator{user: user})

	// Anonymous requests pass straight through
	rec := runRequest(t, mw, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("anonymous status = %d, want 200", rec.Code)
	}

	// A bad token is ignored rather than rejected
	rec = runRequest(t, mw, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer forged")
	})
	if rec.Code != http.StatusOK {
		t.Errorf("bad-token status = %d, want 200", rec.Code)
	}
}

func TestEchoOptionalAuth_SetsUser(t *testing.T) {
	user := entities.NewUser("ada@example.com", "Ada")
	mw := EchoOptionalAuth(&stubValidator{user: user})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen *entities.User
	handler := func(c echo.Context) error {
		seen, _ = GetUser(c)
		return c.NoContent(http.StatusOK)
	}
	if err := mw(handler)(c); err != nil {
		t.Fatalf("middleware failed: %v", err)
	}
	if seen == nil || seen.Email != "ada@example.com" {
		t.Errorf("user not set in context: %+v", seen)
	}
}

func TestRequireRole(t *testing.T) {
	hr := entities.NewUser("hr@example.com", "HR")
	hr.Role = entities.RoleHR

	mw := RequireRole(entities.RoleHR, entities.RoleAdmin)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user", hr)

	if err := mw(okHandler)(c); err != nil {
		t.Errorf("hr user rejected: %v", err)
	}

	// A candidate is rejected with 403
	cand := entities.NewUser("cand@example.com", "Cand")
	c2 := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c2.Set("user", cand)

	err := mw(okHandler)(c2)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusForbidden {
		t.Errorf("candidate: got %v, want 403", err)
	}

	// No user at all is 401
	c3 := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	err = mw(okHandler)(c3)
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusUnauthorized {
		t.Errorf("anonymous: got %v, want 401", err)
	}
}
