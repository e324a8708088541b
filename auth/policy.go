// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import "github.com/danielhkuo/pollboard/models"

// RequireUser fails with ErrUnauthorized for the anonymous identity
func RequireUser(id models.Identity) error {
	if id.IsAnonymous() {
		return models.ErrUnauthorized
	}
	return nil
}

// RequireAdmin fails with ErrUnauthorized for the anonymous identity
// and ErrForbidden for any role other than ADMIN
func RequireAdmin(id models.Identity) error {
	if id.IsAnonymous() {
		return models.ErrUnauthorized
	}
	if id.Role != models.RoleAdmin {
		return models.ErrForbidden
	}
	return nil
}
