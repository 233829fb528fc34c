// Package token issues and verifies the signed identity token delivered to
// clients on login and resubmitted as a bearer token on every call.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/atlas-console/atlas-console/internal/shared"
)

// Claims embeds the caller identity inside the JWT payload.
type Claims struct {
	UserID  string      `json:"userId"`
	AdminID string      `json:"adminId"`
	Role    shared.Role `json:"userRole"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies identity tokens with an HMAC-SHA256 secret.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

// NewIssuer constructs an Issuer. The ttl is the fixed token expiry.
func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl}
}

// Issue produces a signed token embedding the identity. No side effects
// beyond signing.
func (i *Issuer) Issue(id shared.Identity) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:  id.UserID.String(),
		AdminID: id.AdminID.String(),
		Role:    id.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("token: sign: %w", err)
	}
	return signed, nil
}

// Verify validates the signature and expiry and returns the embedded
// identity. Malformed, badly signed and expired tokens all map to
// shared.ErrTokenInvalid so callers cannot distinguish them.
func (i *Issuer) Verify(raw string) (shared.Identity, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return shared.Identity{}, fmt.Errorf("%w: expired", shared.ErrTokenInvalid)
		}
		return shared.Identity{}, shared.ErrTokenInvalid
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return shared.Identity{}, shared.ErrTokenInvalid
	}
	adminID, err := uuid.Parse(claims.AdminID)
	if err != nil {
		return shared.Identity{}, shared.ErrTokenInvalid
	}
	if !claims.Role.Valid() {
		return shared.Identity{}, shared.ErrTokenInvalid
	}
	return shared.Identity{UserID: userID, AdminID: adminID, Role: claims.Role}, nil
}
