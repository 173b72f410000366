package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/chiraggahujaa/metaverse-workspace/internal/core/domain"
	"github.com/chiraggahujaa/metaverse-workspace/internal/core/ports"
)

const (
	passwordCost      = 10
	minUsernameLength = 3
	defaultStateTTL   = 10 * time.Minute
)

var emailRule = validator.New()

// Federation configures federated sign-in. The zero value disables it.
type Federation struct {
	States    ports.StateStore
	Providers []ports.IdentityProvider
	StateTTL  time.Duration
}

// AuthService implements credentials and federated sign-in.
type AuthService struct {
	users     ports.UserRepository
	codec     ports.SessionCodec
	states    ports.StateStore
	providers map[string]ports.IdentityProvider
	stateTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(users ports.UserRepository, codec ports.SessionCodec, fed Federation, log zerolog.Logger) *AuthService {
	s := &AuthService{
		users:     users,
		codec:     codec,
		states:    fed.States,
		providers: make(map[string]ports.IdentityProvider, len(fed.Providers)),
		stateTTL:  fed.StateTTL,
		log:       log,
	}
	if s.stateTTL <= 0 {
		s.stateTTL = defaultStateTTL
	}
	for _, p := range fed.Providers {
		s.providers[p.Name()] = p
	}
	return s
}

func (s *AuthService) SignUp(ctx context.Context, actor *domain.Claims, in ports.SignUpInput) (*domain.User, error) {
	if in.Role == "" {
		in.Role = domain.RoleUser
	}
	if err := validateSignUp(in); err != nil {
		return nil, err
	}
	if in.Role == domain.RoleAdmin && !domain.IsAdmin(actor) {
		return nil, domain.Forbidden("Only administrators can create administrator accounts")
	}

	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return nil, domain.Conflict(domain.MsgEmailTaken)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	if _, err := s.users.FindByUsername(ctx, in.Username); err == nil {
		return nil, domain.Conflict(domain.MsgUsernameTaken)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("find user by username: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), passwordCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        in.Email,
		Username:     in.Username,
		PasswordHash: string(hash),
		Role:         in.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("user signed up")
	return user, nil
}

func validateSignUp(in ports.SignUpInput) error {
	var violations []domain.Violation
	if emailRule.Var(in.Email, "required,email") != nil {
		violations = append(violations, domain.Violation{Field: "email", Message: "Email must be a valid email address"})
	}
	if utf8.RuneCountInString(in.Username) < minUsernameLength {
		violations = append(violations, domain.Violation{Field: "username", Message: "Username must be at least 3 characters long"})
	}
	for _, msg := range domain.PasswordViolations(in.Password) {
		violations = append(violations, domain.Violation{Field: "password", Message: msg})
	}
	if !domain.ValidRole(in.Role) {
		violations = append(violations, domain.Violation{Field: "role", Message: "Role must be one of: User, Admin"})
	}
	if len(violations) > 0 {
		return domain.NewValidationError(violations...)
	}
	return nil
}

func (s *AuthService) SignIn(ctx context.Context, email, password string) (*ports.Session, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NotFound(domain.MsgUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}

	if !user.HasPassword() || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.InvalidCredentials(domain.MsgInvalidCredentials)
	}

	return s.issue(user)
}

func (s *AuthService) BeginFederated(ctx context.Context, provider string) (string, error) {
	p, err := s.provider(provider)
	if err != nil {
		return "", err
	}

	state, err := newState()
	if err != nil {
		return "", err
	}
	if err := s.states.Save(ctx, state, p.Name(), s.stateTTL); err != nil {
		return "", fmt.Errorf("save oauth state: %w", err)
	}
	return p.AuthCodeURL(state), nil
}

func (s *AuthService) CompleteFederated(ctx context.Context, provider, state, code string) (*ports.Session, error) {
	p, err := s.provider(provider)
	if err != nil {
		return nil, err
	}

	bound, err := s.states.Consume(ctx, state)
	if errors.Is(err, domain.ErrNotFound) || (err == nil && bound != p.Name()) {
		return nil, domain.InvalidCredentials("Sign-in attempt expired or invalid")
	}
	if err != nil {
		return nil, fmt.Errorf("consume oauth state: %w", err)
	}

	ident, err := p.Identify(ctx, code)
	if err != nil {
		s.log.Warn().Err(err).Str("provider", p.Name()).Msg("identity exchange failed")
		return nil, domain.InvalidCredentials("Could not verify identity with " + p.Name())
	}
	if ident.Email == "" {
		return nil, domain.InvalidCredentials("The provider did not share an email address")
	}

	user, err := s.findOrCreateFederated(ctx, ident)
	if err != nil {
		return nil, err
	}
	return s.issue(user)
}

func (s *AuthService) provider(name string) (ports.IdentityProvider, error) {
	p, ok := s.providers[name]
	if !ok || s.states == nil {
		return nil, domain.NotFound("Unknown sign-in provider")
	}
	return p, nil
}

// findOrCreateFederated reuses the account registered under the identity's
// email, creating one on first sight.
func (s *AuthService) findOrCreateFederated(ctx context.Context, ident *domain.ExternalIdentity) (*domain.User, error) {
	user, err := s.users.FindByEmail(ctx, ident.Email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("find user by email: %w", err)
	}

	username, err := s.freeUsername(ctx, usernameFromEmail(ident.Email))
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user = &domain.User{
		ID:        uuid.NewString(),
		Email:     ident.Email,
		Username:  username,
		Role:      domain.RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			// a concurrent first sign-in with the same email won
			if existing, ferr := s.users.FindByEmail(ctx, ident.Email); ferr == nil {
				return existing, nil
			}
		}
		return nil, fmt.Errorf("create federated user: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Str("provider", ident.Provider).Msg("federated user created")
	return user, nil
}

func (s *AuthService) freeUsername(ctx context.Context, base string) (string, error) {
	candidate := base
	for attempt := 0; attempt < 5; attempt++ {
		_, err := s.users.FindByUsername(ctx, candidate)
		if errors.Is(err, domain.ErrNotFound) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("find user by username: %w", err)
		}
		candidate = base + "-" + uuid.NewString()[:6]
	}
	return "", fmt.Errorf("no free username for %q", base)
}

func usernameFromEmail(email string) string {
	local, _, _ := strings.Cut(strings.ToLower(email), "@")
	var b strings.Builder
	for _, r := range local {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '.' || r == '_' || r == '-' {
			b.WriteRune(r)
		}
	}
	name := b.String()
	if len(name) < minUsernameLength {
		name = "user" + name
	}
	return name
}

func (s *AuthService) issue(user *domain.User) (*ports.Session, error) {
	token, expiresAt, err := s.codec.Encode(domain.ClaimsFor(user))
	if err != nil {
		return nil, fmt.Errorf("issue session: %w", err)
	}
	return &ports.Session{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

func newState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate oauth state: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
