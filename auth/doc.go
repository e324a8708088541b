// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides identity resolution, password hashing, and the access policy.

# Session Tokens

Session tokens are HS256 JWTs signed with the configured secret:

	resolver, err := auth.NewResolver(cfg.JWTSecret, cfg.TokenTTL)
	token, err := resolver.Issue(user)

Tokens carry user_id, email, role, iat and exp.

# Identity Resolution

Resolve never fails. Anything it cannot verify becomes the anonymous identity:

	id := resolver.Resolve(token)
	if id.IsAnonymous() {
		// no session, bad signature, wrong algorithm, expired, or unknown role
	}

Tokens signed with a non-HMAC algorithm are rejected.

# Passwords

Passwords are stored as bcrypt hashes:

	hash, err := auth.HashPassword(password)
	ok := auth.CheckPassword(hash, password)

# Access Policy

	auth.RequireUser(id)   // ErrUnauthorized when anonymous
	auth.RequireAdmin(id)  // ErrUnauthorized when anonymous, ErrForbidden when not ADMIN

Operations receive the identity as a parameter; there is no ambient session state.
*/
package auth
