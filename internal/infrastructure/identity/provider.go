// Package identity implements federated sign-in providers on top of
// golang.org/x/oauth2.
package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"

	"github.com/chiraggahujaa/metaverse-workspace/internal/core/domain"
)

const (
	googleUserInfoURL   = "https://www.googleapis.com/oauth2/v2/userinfo"
	facebookUserInfoURL = "https://graph.facebook.com/me?fields=id,name,email"
)

// Credentials are the client settings registered with a provider.
type Credentials struct {
	ClientID     string
	ClientSecret string
	// RedirectURL is the absolute callback URL registered with the provider.
	RedirectURL string
}

func (c Credentials) configured() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

// profile is the subset of a provider's user info document we read.
type profile struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Provider exchanges authorization codes and reads the user's profile.
type Provider struct {
	name        string
	config      *oauth2.Config
	userInfoURL string
}

func newProvider(name string, creds Credentials, endpoint oauth2.Endpoint, userInfoURL string, scopes ...string) *Provider {
	return &Provider{
		name: name,
		config: &oauth2.Config{
			ClientID:     creds.ClientID,
			ClientSecret: creds.ClientSecret,
			RedirectURL:  creds.RedirectURL,
			Endpoint:     endpoint,
			Scopes:       scopes,
		},
		userInfoURL: userInfoURL,
	}
}

// NewGoogle returns nil when creds are incomplete.
func NewGoogle(creds Credentials) *Provider {
	if !creds.configured() {
		return nil
	}
	return newProvider("google", creds, endpoints.Google, googleUserInfoURL, "openid", "email", "profile")
}

// NewFacebook returns nil when creds are incomplete.
func NewFacebook(creds Credentials) *Provider {
	if !creds.configured() {
		return nil
	}
	return newProvider("facebook", creds, endpoints.Facebook, facebookUserInfoURL, "email", "public_profile")
}

func (p *Provider) Name() string { return p.name }

func (p *Provider) AuthCodeURL(state string) string {
	return p.config.AuthCodeURL(state)
}

func (p *Provider) Identify(ctx context.Context, code string) (*domain.ExternalIdentity, error) {
	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%s: exchange code: %w", p.name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: build profile request: %w", p.name, err)
	}
	resp, err := p.config.Client(ctx, token).Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: fetch profile: %w", p.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%s: profile status %d: %s", p.name, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var prof profile
	if err := json.NewDecoder(resp.Body).Decode(&prof); err != nil {
		return nil, fmt.Errorf("%s: decode profile: %w", p.name, err)
	}

	return &domain.ExternalIdentity{
		Provider: p.name,
		Subject:  prof.ID,
		Email:    strings.ToLower(strings.TrimSpace(prof.Email)),
		Name:     prof.Name,
	}, nil
}
