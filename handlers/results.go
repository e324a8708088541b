// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/danielhkuo/pollboard/middleware"
	"github.com/danielhkuo/pollboard/stats"
)

type ResultsHandler struct {
	engine *stats.Engine
}

func NewResultsHandler(engine *stats.Engine) *ResultsHandler {
	return &ResultsHandler{engine: engine}
}

// PollResults handles GET /admin/polls/{id}/results
func (h *ResultsHandler) PollResults(w http.ResponseWriter, r *http.Request) {
	results, err := h.engine.Results(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, results)
}

// AllResults handles GET /admin/results
func (h *ResultsHandler) AllResults(w http.ResponseWriter, r *http.Request) {
	results, err := h.engine.AllResults(r.Context())
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, results)
}

// Dashboard handles GET /admin/dashboard/{id}
func (h *ResultsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dash, err := h.engine.PollDashboard(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, dash)
}

// Overview handles GET /admin/dashboard
func (h *ResultsHandler) Overview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.engine.Overview(r.Context())
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, overview)
}
