// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielhkuo/pollboard/auth"
	"github.com/danielhkuo/pollboard/models"
)

// SessionCookie is the cookie carrying the session token
const SessionCookie = "token"

// IdentityResolver turns a session token into an identity
type IdentityResolver interface {
	Resolve(token string) models.Identity
}

type identityKey struct{}

// TokenFromRequest returns the session token from the cookie,
// falling back to an Authorization: Bearer header
func TokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}

// WithIdentity resolves the caller once per request. Requests without a valid
// token continue as the anonymous identity.
func WithIdentity(resolver IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := resolver.Resolve(TokenFromRequest(r))
			ctx := context.WithValue(r.Context(), identityKey{}, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFrom returns the identity stored by WithIdentity, or anonymous
func IdentityFrom(ctx context.Context) models.Identity {
	id, _ := ctx.Value(identityKey{}).(models.Identity)
	return id
}

// RequireAdmin rejects requests whose identity is not an ADMIN
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := auth.RequireAdmin(IdentityFrom(r.Context())); err != nil {
			WriteError(w, r, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}
