package ports

import (
	"context"
	"time"

	"github.com/chiraggahujaa/metaverse-workspace/internal/core/domain"
)

// SignUpInput carries a credentials registration. Role may be empty.
type SignUpInput struct {
	Email    string
	Username string
	Password string
	Role     string
}

// Session is an authenticated user together with its signed token.
type Session struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

type AuthService interface {
	// SignUp registers a credentials account. actor is the caller's session,
	// nil for anonymous callers.
	SignUp(ctx context.Context, actor *domain.Claims, input SignUpInput) (*domain.User, error)
	SignIn(ctx context.Context, email, password string) (*Session, error)
	// BeginFederated returns the provider consent URL for a new sign-in attempt.
	BeginFederated(ctx context.Context, provider string) (string, error)
	CompleteFederated(ctx context.Context, provider, state, code string) (*Session, error)
}

// SessionCodec signs and verifies session tokens.
type SessionCodec interface {
	Encode(claims domain.Claims) (token string, expiresAt time.Time, err error)
	Decode(token string) (*domain.Claims, error)
}
