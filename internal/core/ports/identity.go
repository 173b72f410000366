package ports

import (
	"context"
	"time"

	"github.com/chiraggahujaa/metaverse-workspace/internal/core/domain"
)

// IdentityProvider is a federated sign-in source.
type IdentityProvider interface {
	Name() string
	AuthCodeURL(state string) string
	// Identify exchanges an authorization code for the caller's profile.
	Identify(ctx context.Context, code string) (*domain.ExternalIdentity, error)
}

// StateStore keeps the anti-forgery state of in-flight federated sign-ins.
type StateStore interface {
	Save(ctx context.Context, state, provider string, ttl time.Duration) error
	// Consume returns the provider bound to state and forgets it. Unknown or
	// expired states yield domain.ErrNotFound.
	Consume(ctx context.Context, state string) (string, error)
}
