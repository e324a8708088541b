// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

	r.Use(middleware.WithLogging)

Logs method, path, status, remote IP, chi request id, and duration_ms when
the request completes.

# Identity

WithIdentity resolves the session token (cookie "token", or
Authorization: Bearer) once per request and stores the identity in the
request context:

	r.Use(middleware.WithIdentity(resolver))
	id := middleware.IdentityFrom(r.Context())

Invalid or missing tokens produce the anonymous identity; the request is not
rejected. Route groups that need an admin add RequireAdmin.

# CORS Middleware

	server := http.Server{
		Handler: middleware.CORS(router),
	}

Echoes the request Origin and allows credentials so the session cookie is sent.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")
	middleware.WriteError(w, r, err)

WriteError maps the sentinel errors from models to status codes (see
StatusFor). Unrecognised errors are logged and answered with a bare 500.

# Client IP Extraction

	ip := middleware.GetClientIP(r)

Handles X-Forwarded-For and X-Real-IP; used in request logs.
*/
package middleware
