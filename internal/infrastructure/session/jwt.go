// Package session signs and verifies the HS256 session tokens carried in the
// session cookie.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/chiraggahujaa/metaverse-workspace/internal/core/domain"
)

const issuer = "metaverse-workspace"

type tokenClaims struct {
	Email    string  `json:"email"`
	Role     string  `json:"role"`
	Username string  `json:"username"`
	AvatarID *string `json:"avatarId,omitempty"`
	jwt.RegisteredClaims
}

// Codec implements ports.SessionCodec with a shared secret.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewCodec(secret string, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &Codec{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (c *Codec) Encode(claims domain.Claims) (string, time.Time, error) {
	now := c.now()
	expiresAt := now.Add(c.ttl)

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		Email:    claims.Email,
		Role:     claims.Role,
		Username: claims.Username,
		AvatarID: claims.AvatarID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.UserID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})
	signed, err := t.SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session: %w", err)
	}
	return signed, expiresAt, nil
}

// Decode verifies the signature and expiry of token. Any failure is reported
// as domain.ErrUnauthenticated.
func (c *Codec) Decode(token string) (*domain.Claims, error) {
	var tc tokenClaims
	parsed, err := jwt.ParseWithClaims(token, &tc, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return nil, errors.Join(domain.ErrUnauthenticated, err)
	}
	if tc.Subject == "" || !domain.ValidRole(tc.Role) {
		return nil, domain.ErrUnauthenticated
	}

	return &domain.Claims{
		UserID:   tc.Subject,
		Email:    tc.Email,
		Role:     tc.Role,
		Username: tc.Username,
		AvatarID: tc.AvatarID,
	}, nil
}
