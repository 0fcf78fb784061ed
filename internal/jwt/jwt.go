// Package jwt issues and validates the bearer tokens used by the API.
package jwt

import (
	"fmt"
	"time"

	"github.com/go-jose/go-jose/v4"
	"github.com/go-jose/go-jose/v4/jwt"
)

// AccessTokenClaims are the custom claims carried alongside the
// standard set.
type AccessTokenClaims struct {
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

// Generator signs access tokens with a shared HMAC secret.
type Generator struct {
	secret []byte
	ttl    time.Duration
}

// NewGenerator creates a Generator with the given signing secret and
// token lifetime.
func NewGenerator(secret []byte, ttl time.Duration) *Generator {
	return &Generator{secret: secret, ttl: ttl}
}

// TTL reports the configured token lifetime.
func (g *Generator) TTL() time.Duration {
	return g.ttl
}

// Generate returns a signed token whose subject is the user ID.
func (g *Generator) Generate(userID, email, role string) (string, error) {
	signer, err := jose.NewSigner(
		jose.SigningKey{Algorithm: jose.HS256, Key: g.secret},
		(&jose.SignerOptions{}).WithType("JWT"),
	)
	if err != nil {
		return "", fmt.Errorf("create signer: %w", err)
	}

	now := time.Now()
	std := jwt.Claims{
		Subject:  userID,
		IssuedAt: jwt.NewNumericDate(now),
		Expiry:   jwt.NewNumericDate(now.Add(g.ttl)),
	}
	custom := AccessTokenClaims{Email: email, Role: role}

	raw, err := jwt.Signed(signer).Claims(std).Claims(custom).Serialize()
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return raw, nil
}

// Validate parses and verifies a raw token, returning the standard and
// custom claim sets.
func (g *Generator) Validate(raw string) (*jwt.Claims, *AccessTokenClaims, error) {
	tok, err := jwt.ParseSigned(raw, []jose.SignatureAlgorithm{jose.HS256})
	if err != nil {
		return nil, nil, fmt.Errorf("parse token: %w", err)
	}

	var std jwt.Claims
	var custom AccessTokenClaims
	if err := tok.Claims(g.secret, &std, &custom); err != nil {
		return nil, nil, fmt.Errorf("verify token: %w", err)
	}

	if err := std.Validate(jwt.Expected{Time: time.Now()}); err != nil {
		return nil, nil, fmt.Errorf("validate claims: %w", err)
	}

	return &std, &custom, nil
}
