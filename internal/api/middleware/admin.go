package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chiraggahujaa/metaverse-workspace/internal/api/metrics"
	"github.com/chiraggahujaa/metaverse-workspace/internal/core/domain"
)

// RequireAdmin lets only administrator sessions through. It runs before the
// request body is bound, so a denied request never reaches validation or
// storage.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !domain.IsAdmin(ClaimsFrom(c)) {
				metrics.AdminDeniedTotal.WithLabelValues(c.Path()).Inc()
				return c.JSON(http.StatusForbidden, map[string]string{"error": domain.MsgAdminOnly})
			}
			return next(c)
		}
	}
}
