// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/danielhkuo/pollboard/middleware"
	"github.com/danielhkuo/pollboard/models"
	"github.com/danielhkuo/pollboard/store"
)

type PollHandler struct {
	polls *store.PollRepository
}

func NewPollHandler(polls *store.PollRepository) *PollHandler {
	return &PollHandler{polls: polls}
}

// ListActive handles GET /polls/active
// Public: no identity needed to browse active polls
func (h *PollHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	polls, err := h.polls.ListActive(r.Context())
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, polls)
}

// List handles GET /admin/polls
func (h *PollHandler) List(w http.ResponseWriter, r *http.Request) {
	polls, err := h.polls.List(r.Context())
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, polls)
}

// Get handles GET /admin/polls/{id}
func (h *PollHandler) Get(w http.ResponseWriter, r *http.Request) {
	poll, err := h.polls.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, poll)
}

// Create handles POST /admin/polls
func (h *PollHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(w, r, &req); err != nil {
		middleware.WriteBodyError(w, err)
		return
	}

	poll, err := h.polls.Create(r.Context(), middleware.IdentityFrom(r.Context()), req)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusCreated, poll)
}

// Update handles PUT /admin/polls/{id}
func (h *PollHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.UpdatePollRequest
	if err := middleware.ParseJSONBody(w, r, &req); err != nil {
		middleware.WriteBodyError(w, err)
		return
	}

	poll, err := h.polls.Update(r.Context(), middleware.IdentityFrom(r.Context()), chi.URLParam(r, "id"), req)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, poll)
}

// UpdateStatus handles PATCH /admin/polls/{id}/status
func (h *PollHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateStatusRequest
	if err := middleware.ParseJSONBody(w, r, &req); err != nil {
		middleware.WriteBodyError(w, err)
		return
	}

	err := h.polls.UpdateStatus(r.Context(), middleware.IdentityFrom(r.Context()), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Status updated"})
}

// Delete handles DELETE /admin/polls/{id}
func (h *PollHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.polls.Delete(r.Context(), middleware.IdentityFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Poll deleted"})
}
