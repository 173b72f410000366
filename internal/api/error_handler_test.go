package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/chiraggahujaa/metaverse-workspace/internal/core/domain"
)

func TestResolveError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"echo error", echo.NewHTTPError(http.StatusBadRequest, "invalid payload"), http.StatusBadRequest, "invalid payload"},
		{"conflict", domain.Conflict(domain.MsgEmailTaken), http.StatusBadRequest, domain.MsgEmailTaken},
		{"duplicate", domain.Duplicate(domain.MsgMapElementExists), http.StatusConflict, domain.MsgMapElementExists},
		{"wrapped not found", fmt.Errorf("find: %w", domain.NotFound("Map not found")), http.StatusNotFound, "Map not found"},
		{"bare not found", domain.ErrNotFound, http.StatusNotFound, domain.ErrNotFound.Error()},
		{"credentials", domain.InvalidCredentials(domain.MsgInvalidCredentials), http.StatusUnauthorized, domain.MsgInvalidCredentials},
		{"unauthenticated", domain.ErrUnauthenticated, http.StatusUnauthorized, domain.ErrUnauthenticated.Error()},
		{"forbidden", domain.Forbidden("nope"), http.StatusForbidden, "nope"},
		{"unexpected", errors.New("connection reset"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

			code, resp := resolveError(tt.err, zerolog.Nop(), c)
			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.msg, resp.Error)
			assert.Empty(t, resp.Details)
		})
	}
}

func TestResolveError_ValidationDetails(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), httptest.NewRecorder())
	err := domain.NewValidationError(
		domain.Violation{Field: "width", Message: "width must be greater than 0"},
		domain.Violation{Field: "imageUrl", Message: "imageUrl must be a valid URL"},
	)

	code, resp := resolveError(err, zerolog.Nop(), c)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "width must be greater than 0, imageUrl must be a valid URL", resp.Error)
	assert.Len(t, resp.Details, 2)
}

func TestHTTPErrorHandler_SkipsCommittedResponse(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	_ = c.String(http.StatusTeapot, "already sent")

	NewHTTPErrorHandler(zerolog.Nop())(errors.New("late"), c)
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "already sent", rec.Body.String())
}
