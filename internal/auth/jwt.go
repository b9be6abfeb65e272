// Package auth issues and verifies the bearer tokens that journal clients
// present to the analysis proxy.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ScopeJournal is the only scope a client token carries.
const ScopeJournal = "journal"

// JWTManager handles client token generation and validation.
type JWTManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewJWTManager creates a new JWT manager.
// secret must be at least 32 characters for HS256 security.
func NewJWTManager(secret string, issuer string, ttl time.Duration) *JWTManager {
	return &JWTManager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}
}

// clientClaims extends standard JWT claims with the granted scope.
type clientClaims struct {
	jwt.RegisteredClaims
	Scope string `json:"scope"`
}

// GenerateClientToken creates a signed HS256 JWT with the client ID as subject.
func (m *JWTManager) GenerateClientToken(clientID string) (string, error) {
	if clientID == "" {
		return "", errors.New("client id is empty")
	}

	now := time.Now()
	claims := clientClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   clientID,
			Issuer:    m.issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Scope: ScopeJournal,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

// ValidateClientToken parses and validates a client token.
// Returns the client ID if valid.
func (m *JWTManager) ValidateClientToken(tokenString string) (string, error) {
	if tokenString == "" {
		return "", fmt.Errorf("token is empty")
	}

	token, err := jwt.ParseWithClaims(tokenString, &clientClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithIssuer(m.issuer), jwt.WithExpirationRequired())
	if err != nil {
		return "", fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*clientClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid token claims")
	}

	if claims.Scope != ScopeJournal {
		return "", fmt.Errorf("invalid scope %q", claims.Scope)
	}

	if claims.Subject == "" {
		return "", fmt.Errorf("missing subject")
	}

	return claims.Subject, nil
}
