// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/danielhkuo/pollboard/models"
)

var ErrEmptySecret = errors.New("token secret must not be empty")

// Claims carried by a session token
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Resolver issues and verifies HS256 session tokens
type Resolver struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewResolver(secret string, ttl time.Duration) (*Resolver, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &Resolver{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Issue signs a token for the user that expires after the configured TTL
func (r *Resolver) Issue(user models.User) (string, error) {
	now := r.now()
	claims := Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(r.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(r.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Resolve verifies a token and returns its identity.
// Missing, malformed, forged, or expired tokens resolve to the anonymous identity.
func (r *Resolver) Resolve(token string) models.Identity {
	token = strings.TrimSpace(token)
	if token == "" {
		return models.Identity{}
	}

	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return r.secret, nil
	})
	if err != nil || !parsed.Valid {
		return models.Identity{}
	}

	if claims.UserID == "" || (claims.Role != models.RoleAdmin && claims.Role != models.RoleUser) {
		return models.Identity{}
	}

	return models.Identity{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   claims.Role,
	}
}
