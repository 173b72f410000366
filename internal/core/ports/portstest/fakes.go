package portstest

import (
	"context"
	"net/url"
	"sync"
	"time"

	"github.com/chiraggahujaa/metaverse-workspace/internal/core/domain"
)

// StateStore is an in-memory ports.StateStore that ignores TTLs.
type StateStore struct {
	mu     sync.Mutex
	states map[string]string
}

func NewStateStore() *StateStore {
	return &StateStore{states: make(map[string]string)}
}

func (s *StateStore) Save(_ context.Context, state, provider string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[state] = provider
	return nil
}

func (s *StateStore) Consume(_ context.Context, state string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	provider, ok := s.states[state]
	if !ok {
		return "", domain.ErrNotFound
	}
	delete(s.states, state)
	return provider, nil
}

// Pending returns the states currently stored.
func (s *StateStore) Pending() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.states))
	for k := range s.states {
		out = append(out, k)
	}
	return out
}

// IdentityProvider returns a fixed identity for any code.
type IdentityProvider struct {
	ProviderName string
	Identity     domain.ExternalIdentity
	Err          error
}

func (p *IdentityProvider) Name() string { return p.ProviderName }

func (p *IdentityProvider) AuthCodeURL(state string) string {
	return "https://idp.test/" + p.ProviderName + "/authorize?state=" + url.QueryEscape(state)
}

func (p *IdentityProvider) Identify(_ context.Context, _ string) (*domain.ExternalIdentity, error) {
	if p.Err != nil {
		return nil, p.Err
	}
	id := p.Identity
	id.Provider = p.ProviderName
	return &id, nil
}

// SessionCodec issues opaque tokens and remembers their claims.
type SessionCodec struct {
	mu     sync.Mutex
	tokens map[string]domain.Claims
	TTL    time.Duration
}

func NewSessionCodec() *SessionCodec {
	return &SessionCodec{tokens: make(map[string]domain.Claims), TTL: time.Hour}
}

func (c *SessionCodec) Encode(claims domain.Claims) (string, time.Time, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	token := "token-" + claims.UserID
	c.tokens[token] = claims
	return token, time.Now().Add(c.TTL), nil
}

func (c *SessionCodec) Decode(token string) (*domain.Claims, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	claims, ok := c.tokens[token]
	if !ok {
		return nil, domain.ErrUnauthenticated
	}
	return &claims, nil
}

// AvatarCache is an in-memory ports.AvatarCache.
type AvatarCache struct {
	mu      sync.Mutex
	avatars []domain.Avatar
	ok      bool
	Hits    int
}

func (c *AvatarCache) Get(_ context.Context) ([]domain.Avatar, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ok {
		c.Hits++
	}
	return c.avatars, c.ok, nil
}

func (c *AvatarCache) Set(_ context.Context, avatars []domain.Avatar) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.avatars, c.ok = avatars, true
	return nil
}

func (c *AvatarCache) Invalidate(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.avatars, c.ok = nil, false
	return nil
}
