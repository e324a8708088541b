// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/danielhkuo/pollboard/auth"
	"github.com/danielhkuo/pollboard/cliparse"
	"github.com/danielhkuo/pollboard/handlers"
	"github.com/danielhkuo/pollboard/middleware"
	"github.com/danielhkuo/pollboard/stats"
	"github.com/danielhkuo/pollboard/store"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) (http.Handler, error) {
	resolver, err := auth.NewResolver(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to create token resolver: %w", err)
	}

	// Initialize stores and handlers
	users := store.NewUserStore(db)
	polls := store.NewPollRepository(db)
	ledger := store.NewLedger(db)
	engine := stats.NewEngine(db, polls)

	authHandler := handlers.NewAuthHandler(users, resolver, cfg)
	pollHandler := handlers.NewPollHandler(polls)
	votingHandler := handlers.NewVotingHandler(ledger)
	resultsHandler := handlers.NewResultsHandler(engine)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.WithLogging)
	r.Use(middleware.CORS)
	r.Use(middleware.WithIdentity(resolver))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Accounts and sessions
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Post("/logout", authHandler.Logout)
		r.Get("/me", authHandler.Me)
		r.Patch("/password", authHandler.ResetPassword)
	})

	// Voting (active list is public, the rest needs a signed-in user)
	r.Route("/polls", func(r chi.Router) {
		r.Get("/active", pollHandler.ListActive)
		r.Get("/voted", votingHandler.VotedPolls)
		r.Get("/{id}/voted", votingHandler.HasVoted)
		r.Post("/{id}/votes", votingHandler.CastVote)
	})

	// Administration
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.RequireAdmin)

		r.Get("/polls", pollHandler.List)
		r.Post("/polls", pollHandler.Create)
		r.Get("/polls/{id}", pollHandler.Get)
		r.Put("/polls/{id}", pollHandler.Update)
		r.Delete("/polls/{id}", pollHandler.Delete)
		r.Patch("/polls/{id}/status", pollHandler.UpdateStatus)
		r.Get("/polls/{id}/results", resultsHandler.PollResults)

		r.Get("/users", authHandler.ListUsers)
		r.Get("/results", resultsHandler.AllResults)
		r.Get("/dashboard", resultsHandler.Overview)
		r.Get("/dashboard/{id}", resultsHandler.Dashboard)
	})

	// Root endpoint
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("pollboard API v1"))
	})

	return r, nil
}
