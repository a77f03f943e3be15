package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sidequesthq/sidequest/internal/application/ports"
	domerrors "github.com/sidequesthq/sidequest/internal/domain/errors"
)

// DefaultTokenTTL is how long issued tokens stay valid.
const DefaultTokenTTL = 7 * 24 * time.Hour

// TokenIssuer implements ports.TokenIssuer with HS256 over a process-wide
// secret. Verification is pure computation: the secret plus a clock read,
// no storage round-trip.
type TokenIssuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

type accessClaims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// Option configures a TokenIssuer.
type Option func(*TokenIssuer)

// WithClock overrides the time source (tests).
func WithClock(now func() time.Time) Option {
	return func(t *TokenIssuer) { t.now = now }
}

// WithTTL overrides the token lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(t *TokenIssuer) { t.ttl = ttl }
}

func NewTokenIssuer(secret []byte, issuer string, opts ...Option) (*TokenIssuer, error) {
	if len(secret) == 0 {
		return nil, errors.New("jwt secret must not be empty")
	}
	t := &TokenIssuer{
		secret: secret,
		issuer: issuer,
		ttl:    DefaultTokenTTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

func (t *TokenIssuer) Issue(userID, username string) (string, error) {
	now := t.now()
	claims := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
		Username: username,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify returns the subject identity. All failure causes (malformed,
// bad signature, expired) collapse into ErrInvalidToken; the cause stays
// attached for internal logging via errors.Unwrap, never for clients.
func (t *TokenIssuer) Verify(tokenString string) (userID, username string, err error) {
	token, err := jwt.ParseWithClaims(tokenString, &accessClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(t.now))
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", domerrors.ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*accessClaims)
	if !ok || !token.Valid {
		return "", "", domerrors.ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", "", domerrors.ErrInvalidToken
	}
	return claims.Subject, claims.Username, nil
}

var _ ports.TokenIssuer = (*TokenIssuer)(nil)
