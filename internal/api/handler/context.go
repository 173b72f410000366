package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chiraggahujaa/metaverse-workspace/internal/api/middleware"
	"github.com/chiraggahujaa/metaverse-workspace/internal/core/domain"
)

// bind decodes the request into req and validates it. Undecodable input is a
// 400 "invalid payload"; rule failures come back as *domain.ValidationError.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return c.Validate(req)
}

// actor returns the caller's session, nil when anonymous.
func actor(c echo.Context) *domain.Claims {
	return middleware.ClaimsFrom(c)
}
