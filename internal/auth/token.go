// ABOUTME: JWT session token issuing and verification for starship-api
// ABOUTME: Uses HS256 signing with configured key, issuer, audience and TTL

package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// MinKeyLength is the minimum signing key length in bytes. A shorter key is a
// startup error, never a per-request one.
const MinKeyLength = 32

// Token errors
var (
	// ErrUnauthenticated is the uniform verification failure. The verifier
	// never tells a caller whether a token was expired, tampered with, or
	// issued elsewhere; the specific cause only reaches the debug log.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrWeakKey is returned when the signing key is missing or too short
	ErrWeakKey = fmt.Errorf("jwt signing key must be at least %d bytes", MinKeyLength)

	// ErrInvalidIdentity is returned when issuing a token for an identity
	// without an email
	ErrInvalidIdentity = errors.New("identity has no email")
)

// Claims holds the identity attributes embedded in a session token
type Claims struct {
	Email string   `json:"email"`
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// UserID returns the subject identity id carried by the claims
func (c *Claims) UserID() string {
	return c.Subject
}

// HasRole reports whether the claims carry the given role
func (c *Claims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the claims carry the Admin role
func (c *Claims) IsAdmin() bool {
	return c.HasRole("Admin")
}

// Owns reports whether the claims' subject matches the given owner id
func (c *Claims) Owns(ownerID string) bool {
	return c.Subject != "" && c.Subject == ownerID
}

// Tokens issues and verifies session tokens. All parameters are fixed at
// construction from loaded configuration; nothing is read at call time.
type Tokens struct {
	key      []byte
	issuer   string
	audience string
	ttl      time.Duration
	logger   *slog.Logger
}

// NewTokens creates a token issuer/verifier. Returns ErrWeakKey if the key is
// shorter than MinKeyLength.
func NewTokens(key []byte, issuer, audience string, ttl time.Duration) (*Tokens, error) {
	if len(key) < MinKeyLength {
		return nil, ErrWeakKey
	}

	return &Tokens{
		key:      key,
		issuer:   issuer,
		audience: audience,
		ttl:      ttl,
		logger:   slog.Default().With("component", "auth"),
	}, nil
}

// Issue mints a signed session token for the identity. The roles slice must
// reflect the identity's role memberships at this instant; the token freezes
// them until it expires.
func (t *Tokens) Issue(userID, email string, roles []string) (string, error) {
	if email == "" {
		return "", ErrInvalidIdentity
	}

	if roles == nil {
		roles = []string{}
	}

	now := time.Now()
	claims := &Claims{
		Email: email,
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    t.issuer,
			Audience:  jwt.ClaimStrings{t.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.key)
}

// Verify validates a session token and extracts its claims. Signature, issuer,
// audience, expiry (zero leeway) and the presence of a subject are all checked;
// any failure yields ErrUnauthenticated.
func (t *Tokens) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (interface{}, error) {
			// Validate the signing method is HS256
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return t.key, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(t.issuer),
		jwt.WithAudience(t.audience),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(0),
	)
	if err != nil {
		t.logger.Debug("token rejected", "cause", err)
		return nil, ErrUnauthenticated
	}

	if !token.Valid {
		t.logger.Debug("token rejected", "cause", "invalid")
		return nil, ErrUnauthenticated
	}

	if claims.Subject == "" {
		t.logger.Debug("token rejected", "cause", "missing sub claim")
		return nil, ErrUnauthenticated
	}

	return claims, nil
}
