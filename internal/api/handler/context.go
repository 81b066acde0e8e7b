package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/petitmarche/catalog-api/internal/api/middleware"
	"github.com/petitmarche/catalog-api/internal/core/domain"
)

// callerIdentity extracts the identity injected by the Auth middleware.
// A missing identity on a protected route means the middleware did not
// run, and a role outside the known set means the stored record is
// corrupt. Both cases reject with 401.
func callerIdentity(c echo.Context) (domain.Identity, error) {
	identity, ok := c.Get(middleware.IdentityKey).(domain.Identity)
	if !ok || identity.UserID == "" {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	if !identity.Role.IsValid() {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "unrecognised role")
	}
	return identity, nil
}
