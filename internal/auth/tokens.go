package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Tokens issues and verifies HS256 access tokens.
type Tokens struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewTokens creates a token service. now may be nil to use time.Now.
func NewTokens(secret []byte, issuer string, ttl time.Duration, now func() time.Time) *Tokens {
	if now == nil {
		now = time.Now
	}
	return &Tokens{
		secret: secret,
		issuer: issuer,
		ttl:    ttl,
		now:    now,
	}
}

// Issue signs an access token for u.
func (t *Tokens) Issue(u User) (Token, error) {
	now := t.now()
	c := claims{
		Email: u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.issuer,
			Subject:   u.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(t.secret)
	if err != nil {
		return Token{}, fmt.Errorf("sign token: %w", err)
	}

	return Token{
		AccessToken: signed,
		TokenType:   "bearer",
		ExpiresIn:   int(t.ttl.Seconds()),
	}, nil
}

// Verify parses raw and returns the identity it carries.
func (t *Tokens) Verify(raw string) (Identity, error) {
	if raw == "" {
		return Identity{}, ErrMissingToken
	}

	var c claims
	_, err := jwt.ParseWithClaims(
		raw,
		&c,
		func(*jwt.Token) (any, error) { return t.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(t.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return Identity{}, errors.Join(ErrInvalidToken, err)
	}

	id, err := uuid.Parse(c.Subject)
	if err != nil {
		return Identity{}, errors.Join(ErrInvalidToken, err)
	}

	return Identity{UserID: id, Email: c.Email}, nil
}
