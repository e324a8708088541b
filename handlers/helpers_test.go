// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/danielhkuo/pollboard/middleware"
	"github.com/danielhkuo/pollboard/testutil"
)

// serve runs handler behind identity resolution with the given chi URL params
func serve(t *testing.T, handler http.HandlerFunc, req *http.Request, params map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	w := httptest.NewRecorder()
	middleware.WithIdentity(testutil.NewTestResolver(t))(handler).ServeHTTP(w, req)
	return w
}
