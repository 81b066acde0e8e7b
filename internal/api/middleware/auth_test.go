package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/petitmarche/catalog-api/internal/core/domain"
	"github.com/petitmarche/catalog-api/internal/core/ports"
)

type stubTokens struct {
	userID string
	err    error
}

func (s stubTokens) Issue(string) (string, error) { return "token", nil }

func (s stubTokens) Verify(string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.userID, nil
}

type stubUsers struct {
	users map[string]*domain.User
}

func (s stubUsers) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (s stubUsers) Create(context.Context, *domain.User) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}
func (s stubUsers) FindByEmail(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}
func (s stubUsers) FindAll(context.Context) ([]*domain.User, error) { return nil, nil }
func (s stubUsers) Update(context.Context, string, ports.UserPatch) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}
func (s stubUsers) Delete(context.Context, string) error { return domain.ErrUserNotFound }
func (s stubUsers) Summaries(context.Context, []string) (map[string]ports.UserSummary, error) {
	return nil, nil
}

func runAuth(t *testing.T, mw echo.MiddlewareFunc, header string, next echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := mw(next)(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestAuth_ValidToken(t *testing.T) {
	alice := &domain.User{ID: "u1", Email: "alice@example.com", Nom: "Alice", Role: domain.RoleAdmin}
	mw := Auth(stubTokens{userID: "u1"}, stubUsers{users: map[string]*domain.User{"u1": alice}})

	called := false
	rec := runAuth(t, mw, "Bearer sometoken", func(c echo.Context) error {
		called = true
		identity, ok := c.Get(IdentityKey).(domain.Identity)
		if !ok {
			t.Fatalf("identity not attached")
		}
		if identity.UserID != "u1" || identity.Role != domain.RoleAdmin {
			t.Fatalf("unexpected identity: %+v", identity)
		}
		if identity.User == nil || identity.User.Email != "alice@example.com" {
			t.Fatalf("user record not attached: %+v", identity.User)
		}
		return c.NoContent(http.StatusOK)
	})

	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func failNext(t *testing.T) echo.HandlerFunc {
	return func(echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	mw := Auth(stubTokens{userID: "u1"}, stubUsers{})

	rec := runAuth(t, mw, "", failNext(t))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuth_InvalidHeaderFormat(t *testing.T) {
	mw := Auth(stubTokens{userID: "u1"}, stubUsers{})

	rec := runAuth(t, mw, "Token abc", failNext(t))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	mw := Auth(stubTokens{err: domain.ErrInvalidToken}, stubUsers{})

	rec := runAuth(t, mw, "Bearer not-a-token", failNext(t))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuth_UserNoLongerExists(t *testing.T) {
	// A structurally valid token whose subject was deleted after issuance
	// must be rejected.
	mw := Auth(stubTokens{userID: "ghost"}, stubUsers{users: map[string]*domain.User{}})

	rec := runAuth(t, mw, "Bearer sometoken", failNext(t))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
