// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/pollboard/auth"
	"github.com/danielhkuo/pollboard/cliparse"
	"github.com/danielhkuo/pollboard/middleware"
	"github.com/danielhkuo/pollboard/models"
	"github.com/danielhkuo/pollboard/store"
)

type AuthHandler struct {
	users    *store.UserStore
	resolver *auth.Resolver
	cfg      cliparse.Config
}

func NewAuthHandler(users *store.UserStore, resolver *auth.Resolver, cfg cliparse.Config) *AuthHandler {
	return &AuthHandler{users: users, resolver: resolver, cfg: cfg}
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := middleware.ParseJSONBody(w, r, &req); err != nil {
		middleware.WriteBodyError(w, err)
		return
	}

	user, err := h.users.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, user)
}

// Login handles POST /auth/login
// Returns the token in the body and sets it as the session cookie
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(w, r, &req); err != nil {
		middleware.WriteBodyError(w, err)
		return
	}

	user, err := h.users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	token, err := h.resolver.Issue(user)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	h.setSessionCookie(w, token, int(h.cfg.TokenTTL/time.Second))
	slog.Info("user logged in", "user_id", user.ID)

	middleware.JSONResponse(w, http.StatusOK, models.LoginResponse{
		Token: token,
		User:  user,
	})
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.setSessionCookie(w, "", -1)
	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Logged out"})
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	id := middleware.IdentityFrom(r.Context())
	if id.IsAnonymous() {
		middleware.JSONResponse(w, http.StatusOK, models.MeResponse{LoggedIn: false})
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.MeResponse{LoggedIn: true, User: &id})
}

// ResetPassword handles PATCH /auth/password
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ResetPasswordRequest
	if err := middleware.ParseJSONBody(w, r, &req); err != nil {
		middleware.WriteBodyError(w, err)
		return
	}

	if err := h.users.ResetPassword(r.Context(), req.Email, req.Password); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Password reset successfully"})
}

// ListUsers handles GET /admin/users
func (h *AuthHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, users)
}
