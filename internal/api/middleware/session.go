package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/chiraggahujaa/metaverse-workspace/internal/core/domain"
	"github.com/chiraggahujaa/metaverse-workspace/internal/core/ports"
)

const claimsKey = "session.claims"

// Session decodes the session token, when one is present, and injects the
// claims into context. The token is read from the session cookie first and
// from an "Authorization: Bearer" header otherwise. Requests without a valid
// token continue anonymously; RequireSession and RequireAdmin reject them
// where a session is needed.
func Session(codec ports.SessionCodec, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := sessionToken(c, cookieName)
			if token == "" {
				return next(c)
			}
			if claims, err := codec.Decode(token); err == nil {
				c.Set(claimsKey, claims)
			}
			return next(c)
		}
	}
}

func sessionToken(c echo.Context, cookieName string) string {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	parts := strings.SplitN(c.Request().Header.Get(echo.HeaderAuthorization), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// ClaimsFrom returns the decoded session, or nil for anonymous requests.
func ClaimsFrom(c echo.Context) *domain.Claims {
	claims, _ := c.Get(claimsKey).(*domain.Claims)
	return claims
}

// RequireSession rejects anonymous requests with 401.
func RequireSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if ClaimsFrom(c) == nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Authentication required"})
			}
			return next(c)
		}
	}
}
