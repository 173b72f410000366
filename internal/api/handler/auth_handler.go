package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/chiraggahujaa/metaverse-workspace/internal/api/metrics"
	"github.com/chiraggahujaa/metaverse-workspace/internal/core/domain"
	"github.com/chiraggahujaa/metaverse-workspace/internal/core/ports"
)

// CookieConfig controls the session cookie.
type CookieConfig struct {
	Name   string
	Secure bool
}

type AuthHandler struct {
	authService ports.AuthService
	cookie      CookieConfig
}

func NewAuthHandler(authService ports.AuthService, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{authService: authService, cookie: cookie}
}

// SignUp creates a new account. Creating an Admin requires an admin session.
//
// @Summary      Sign up
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signUpRequest  true  "Account details"
// @Success      201   {object}  signUpResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /auth/signup [post]
func (h *AuthHandler) SignUp(c echo.Context) error {
	var req signUpRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, err := h.authService.SignUp(c.Request().Context(), actor(c), ports.SignUpInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}

	metrics.SignUpsTotal.WithLabelValues(user.Role).Inc()
	return c.JSON(http.StatusCreated, signUpResponse{
		ID:       user.ID,
		Email:    user.Email,
		Username: user.Username,
		Role:     user.Role,
	})
}

// SignIn verifies credentials and sets the session cookie.
//
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signInRequest  true  "Credentials"
// @Success      200   {object}  signInResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /auth/signin [post]
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req signInRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	session, err := h.authService.SignIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.SignInsTotal.WithLabelValues("password", "failure").Inc()
		return err
	}

	metrics.SignInsTotal.WithLabelValues("password", "success").Inc()
	h.setCookie(c, session.Token, session.ExpiresAt)
	return c.JSON(http.StatusOK, signInResponse{Message: "Login successful!", User: session.User})
}

// SignOut clears the session cookie.
//
// @Summary      Sign out
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Router       /auth/signout [post]
func (h *AuthHandler) SignOut(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return c.JSON(http.StatusOK, messageResponse{Message: "Signed out"})
}

// Session returns the caller's decoded session claims.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  domain.Claims
// @Failure      401  {object}  errorResponse
// @Router       /auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	claims := actor(c)
	if claims == nil {
		return domain.ErrUnauthenticated
	}
	return c.JSON(http.StatusOK, claims)
}

// BeginOAuth redirects the browser to the provider's consent page.
//
// @Summary      Start federated sign-in
// @Tags         auth
// @Param        provider  path  string  true  "google or facebook"
// @Success      302
// @Failure      404  {object}  errorResponse
// @Router       /auth/oauth/{provider} [get]
func (h *AuthHandler) BeginOAuth(c echo.Context) error {
	url, err := h.authService.BeginFederated(c.Request().Context(), c.Param("provider"))
	if err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, url)
}

// OAuthCallback completes federated sign-in and redirects home.
//
// @Summary      Federated sign-in callback
// @Tags         auth
// @Param        provider  path   string  true  "google or facebook"
// @Param        state     query  string  true  "Anti-forgery state"
// @Param        code      query  string  true  "Authorization code"
// @Success      302
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /auth/oauth/{provider}/callback [get]
func (h *AuthHandler) OAuthCallback(c echo.Context) error {
	provider := c.Param("provider")
	if msg := c.QueryParam("error"); msg != "" {
		metrics.SignInsTotal.WithLabelValues(provider, "failure").Inc()
		return domain.InvalidCredentials("Sign-in was cancelled")
	}

	session, err := h.authService.CompleteFederated(c.Request().Context(), provider, c.QueryParam("state"), c.QueryParam("code"))
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			metrics.SignInsTotal.WithLabelValues(provider, "failure").Inc()
		}
		return err
	}

	metrics.SignInsTotal.WithLabelValues(provider, "success").Inc()
	h.setCookie(c, session.Token, session.ExpiresAt)
	return c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) setCookie(c echo.Context, token string, expires time.Time) {
	c.SetCookie(&http.Cookie{
		Name:     h.cookie.Name,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
