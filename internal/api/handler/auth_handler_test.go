package handler

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/chiraggahujaa/metaverse-workspace/internal/core/domain"
	"github.com/chiraggahujaa/metaverse-workspace/internal/core/ports"
)

var testCookie = CookieConfig{Name: "metaverse_session", Secure: true}

func TestAuthHandler_SignUp_Success(t *testing.T) {
	stub := &stubAuthService{
		signUpFn: func(_ context.Context, actor *domain.Claims, in ports.SignUpInput) (*domain.User, error) {
			if actor != nil {
				t.Fatalf("expected anonymous actor, got %+v", actor)
			}
			if in.Email != "alice@example.com" || in.Username != "alice" || in.Role != "" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.User{ID: "u1", Email: in.Email, Username: in.Username, Role: domain.RoleUser}, nil
		},
	}
	h := NewAuthHandler(stub, testCookie)

	rec, err := call(t, h.SignUp, http.MethodPost, "/auth/signup",
		`{"email":"alice@example.com","username":"alice","password":"Secret#123"}`, nil)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	resp := decode(t, rec)
	if resp["id"] != "u1" || resp["role"] != domain.RoleUser || resp["username"] != "alice" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if _, leaked := resp["password"]; leaked {
		t.Fatalf("password leaked in response")
	}
}

func TestAuthHandler_SignUp_PassesAdminActor(t *testing.T) {
	admin := &domain.Claims{UserID: "root", Role: domain.RoleAdmin}
	stub := &stubAuthService{
		signUpFn: func(_ context.Context, actor *domain.Claims, in ports.SignUpInput) (*domain.User, error) {
			if !domain.IsAdmin(actor) || in.Role != domain.RoleAdmin {
				t.Fatalf("actor or role not forwarded: %+v %+v", actor, in)
			}
			return &domain.User{ID: "u2", Role: in.Role}, nil
		},
	}

	rec, err := call(t, NewAuthHandler(stub, testCookie).SignUp, http.MethodPost, "/auth/signup",
		`{"email":"ops@example.com","username":"ops","password":"Secret#123","role":"Admin"}`, admin)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestAuthHandler_SignUp_ListsEveryViolation(t *testing.T) {
	stub := &stubAuthService{
		signUpFn: func(context.Context, *domain.Claims, ports.SignUpInput) (*domain.User, error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	}

	_, err := call(t, NewAuthHandler(stub, testCookie).SignUp, http.MethodPost, "/auth/signup",
		`{"email":"nope","username":"al","password":"short","role":"Root"}`, nil)

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	fields := violations(t, err)
	for _, want := range []string{"email", "username", "password", "role"} {
		if !slices.Contains(fields, want) {
			t.Fatalf("missing violation for %s in %v", want, fields)
		}
	}
	// "short" breaks the length, uppercase, digit and symbol rules.
	var pw int
	for _, v := range ve.Violations {
		if v.Field == "password" {
			pw++
		}
	}
	if pw != 4 {
		t.Fatalf("expected 4 password violations, got %d: %v", pw, ve.Violations)
	}
}

func TestAuthHandler_SignUp_MalformedJSON(t *testing.T) {
	_, err := call(t, NewAuthHandler(&stubAuthService{}, testCookie).SignUp, http.MethodPost, "/auth/signup", `{"email":`, nil)
	if err == nil {
		t.Fatalf("expected error")
	}
	if _, ok := err.(*domain.ValidationError); ok {
		t.Fatalf("malformed json must not be a validation error")
	}
}

func TestAuthHandler_SignIn_SetsCookie(t *testing.T) {
	expires := time.Now().Add(time.Hour)
	stub := &stubAuthService{
		signInFn: func(_ context.Context, email, password string) (*ports.Session, error) {
			if email != "alice@example.com" || password != "Secret#123" {
				t.Fatalf("unexpected credentials %q %q", email, password)
			}
			return &ports.Session{
				User:      &domain.User{ID: "u1", Email: email, Username: "alice", Role: domain.RoleUser},
				Token:     "signed-token",
				ExpiresAt: expires,
			}, nil
		},
	}

	rec, err := call(t, NewAuthHandler(stub, testCookie).SignIn, http.MethodPost, "/auth/signin",
		`{"email":"alice@example.com","password":"Secret#123"}`, nil)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	resp := decode(t, rec)
	if resp["message"] != "Login successful!" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["id"] != "u1" {
		t.Fatalf("unexpected user: %+v", resp["user"])
	}
	if _, ok := user["avatarId"]; !ok {
		t.Fatalf("avatarId missing from user: %+v", user)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}
	ck := cookies[0]
	if ck.Name != testCookie.Name || ck.Value != "signed-token" || !ck.HttpOnly || !ck.Secure || ck.SameSite != http.SameSiteLaxMode {
		t.Fatalf("unexpected cookie: %+v", ck)
	}
}

func TestAuthHandler_SignIn_ServiceError(t *testing.T) {
	stub := &stubAuthService{
		signInFn: func(context.Context, string, string) (*ports.Session, error) {
			return nil, domain.InvalidCredentials(domain.MsgInvalidCredentials)
		},
	}

	rec, err := call(t, NewAuthHandler(stub, testCookie).SignIn, http.MethodPost, "/auth/signin",
		`{"email":"alice@example.com","password":"Wrong#123"}`, nil)
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("no cookie expected on failure")
	}
}

func TestAuthHandler_SignOut_ClearsCookie(t *testing.T) {
	rec, err := call(t, NewAuthHandler(&stubAuthService{}, testCookie).SignOut, http.MethodPost, "/auth/signout", "", nil)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge >= 0 || cookies[0].Value != "" {
		t.Fatalf("expected expired cookie, got %+v", cookies)
	}
}

func TestAuthHandler_Session(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, testCookie)

	if _, err := call(t, h.Session, http.MethodGet, "/auth/session", "", nil); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}

	rec, err := call(t, h.Session, http.MethodGet, "/auth/session", "", &domain.Claims{UserID: "u1", Username: "alice", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	resp := decode(t, rec)
	if resp["id"] != "u1" || resp["username"] != "alice" {
		t.Fatalf("unexpected claims: %+v", resp)
	}
}

func TestAuthHandler_BeginOAuth_Redirects(t *testing.T) {
	stub := &stubAuthService{
		beginFn: func(_ context.Context, provider string) (string, error) {
			if provider != "google" {
				t.Fatalf("unexpected provider %q", provider)
			}
			return "https://accounts.example/consent?state=abc", nil
		},
	}
	h := NewAuthHandler(stub, testCookie)

	rec, err := call(t, func(c echo.Context) error {
		c.SetParamNames("provider")
		c.SetParamValues("google")
		return h.BeginOAuth(c)
	}, http.MethodGet, "/auth/oauth/google", "", nil)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "https://accounts.example/consent?state=abc" {
		t.Fatalf("unexpected redirect %d %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestAuthHandler_OAuthCallback(t *testing.T) {
	stub := &stubAuthService{
		completeFn: func(_ context.Context, provider, state, code string) (*ports.Session, error) {
			if provider != "facebook" || state != "st" || code != "cd" {
				t.Fatalf("unexpected args %q %q %q", provider, state, code)
			}
			return &ports.Session{User: &domain.User{ID: "u1"}, Token: "fed-token", ExpiresAt: time.Now().Add(time.Hour)}, nil
		},
	}
	h := NewAuthHandler(stub, testCookie)

	rec, err := call(t, func(c echo.Context) error {
		c.SetParamNames("provider")
		c.SetParamValues("facebook")
		return h.OAuthCallback(c)
	}, http.MethodGet, "/auth/oauth/facebook/callback?state=st&code=cd", "", nil)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/" {
		t.Fatalf("unexpected redirect %d %q", rec.Code, rec.Header().Get("Location"))
	}
	if cookies := rec.Result().Cookies(); len(cookies) != 1 || cookies[0].Value != "fed-token" {
		t.Fatalf("session cookie not set: %+v", cookies)
	}
}

func TestAuthHandler_OAuthCallback_ProviderError(t *testing.T) {
	stub := &stubAuthService{
		completeFn: func(context.Context, string, string, string) (*ports.Session, error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	}

	_, err := call(t, NewAuthHandler(stub, testCookie).OAuthCallback, http.MethodGet, "/cb?error=access_denied", "", nil)
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}
