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

type VotingHandler struct {
	ledger *store.Ledger
}

func NewVotingHandler(ledger *store.Ledger) *VotingHandler {
	return &VotingHandler{ledger: ledger}
}

// CastVote handles POST /polls/{id}/votes
func (h *VotingHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	voter := middleware.IdentityFrom(r.Context())
	if voter.IsAnonymous() {
		middleware.WriteError(w, r, models.ErrUnauthorized)
		return
	}

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(w, r, &req); err != nil {
		middleware.WriteBodyError(w, err)
		return
	}
	if req.OptionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "option_id is required")
		return
	}

	vote, err := h.ledger.CastVote(r.Context(), chi.URLParam(r, "id"), req.OptionID, voter)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.CastVoteResponse{
		VoteID:  vote.ID,
		Message: "Vote recorded",
	})
}

// HasVoted handles GET /polls/{id}/voted
func (h *VotingHandler) HasVoted(w http.ResponseWriter, r *http.Request) {
	voter := middleware.IdentityFrom(r.Context())
	if voter.IsAnonymous() {
		middleware.WriteError(w, r, models.ErrUnauthorized)
		return
	}

	voted, err := h.ledger.HasVoted(r.Context(), chi.URLParam(r, "id"), voter.UserID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.HasVotedResponse{HasVoted: voted})
}

// VotedPolls handles GET /polls/voted
// Anonymous callers get an empty list rather than an error
func (h *VotingHandler) VotedPolls(w http.ResponseWriter, r *http.Request) {
	voter := middleware.IdentityFrom(r.Context())
	if voter.IsAnonymous() {
		middleware.JSONResponse(w, http.StatusOK, models.VotedPollsResponse{VotedPollIDs: []string{}})
		return
	}

	ids, err := h.ledger.VotedPollIDs(r.Context(), voter.UserID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.VotedPollsResponse{VotedPollIDs: ids})
}
