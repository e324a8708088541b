// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"
	"testing"

	"github.com/danielhkuo/pollboard/models"
	"github.com/danielhkuo/pollboard/store"
	"github.com/danielhkuo/pollboard/testutil"
)

func newTestPollHandler(t *testing.T) (*PollHandler, *sql.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return NewPollHandler(store.NewPollRepository(db)), db
}

func TestCreatePollHandler(t *testing.T) {
	h, db := newTestPollHandler(t)
	admin := testutil.CreateTestUser(t, db, "admin@example.com", models.RoleAdmin)
	user := testutil.CreateTestUser(t, db, "user@example.com", models.RoleUser)

	valid := models.CreatePollRequest{
		Title:   "Best editor",
		Type:    models.TypeMultipleChoice,
		Status:  models.StatusActive,
		Options: []models.OptionInput{{Label: "vim"}, {Label: "emacs"}, {Label: ""}},
	}

	tests := []struct {
		name           string
		headers        map[string]string
		body           interface{}
		expectedStatus int
	}{
		{"admin creates poll", testutil.BearerHeader(t, admin), valid, http.StatusCreated},
		{"regular user forbidden", testutil.BearerHeader(t, user), valid, http.StatusForbidden},
		{"anonymous unauthorized", nil, valid, http.StatusUnauthorized},
		{
			"too few options",
			testutil.BearerHeader(t, admin),
			models.CreatePollRequest{Title: "x", Type: models.TypeMultipleChoice, Status: models.StatusDraft, Options: []models.OptionInput{{Label: "one"}}},
			http.StatusBadRequest,
		},
		{"invalid JSON", testutil.BearerHeader(t, admin), "nope", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest(http.MethodPost, "/admin/polls", tt.body, tt.headers)
			w := serve(t, h.Create, req, nil)
			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedStatus == http.StatusCreated {
				var poll models.PollWithOptions
				testutil.AssertJSON(t, w, &poll)
				if len(poll.Options) != 2 {
					t.Errorf("Expected 2 options, got %d", len(poll.Options))
				}
			}
		})
	}
}

func TestGetPollHandler(t *testing.T) {
	h, db := newTestPollHandler(t)
	admin := testutil.CreateTestUser(t, db, "admin@example.com", models.RoleAdmin)
	pollID := testutil.CreateTestPoll(t, db, models.TypeYesNo, models.StatusDraft)
	testutil.AddTestOption(t, db, pollID, "YES", 0)
	testutil.AddTestOption(t, db, pollID, "NO", 1)

	tests := []struct {
		name           string
		pollID         string
		expectedStatus int
	}{
		{"existing poll", pollID, http.StatusOK},
		{"missing poll", "missing", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest(http.MethodGet, "/admin/polls/"+tt.pollID, nil, testutil.BearerHeader(t, admin))
			w := serve(t, h.Get, req, map[string]string{"id": tt.pollID})
			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}
}

func TestUpdatePollHandler(t *testing.T) {
	h, db := newTestPollHandler(t)
	admin := testutil.CreateTestUser(t, db, "admin@example.com", models.RoleAdmin)
	pollID := testutil.CreateTestPoll(t, db, models.TypeMultipleChoice, models.StatusDraft)
	testutil.AddTestOption(t, db, pollID, "A", 0)
	testutil.AddTestOption(t, db, pollID, "B", 1)

	body := models.UpdatePollRequest{
		Title:   "Renamed",
		Type:    models.TypeMultipleChoice,
		Status:  models.StatusActive,
		Options: []models.OptionInput{{Label: "C"}, {Label: "D"}},
	}

	req := testutil.MakeRequest(http.MethodPut, "/admin/polls/"+pollID, body, testutil.BearerHeader(t, admin))
	w := serve(t, h.Update, req, map[string]string{"id": pollID})
	testutil.AssertStatus(t, w, http.StatusOK)

	var poll models.PollWithOptions
	testutil.AssertJSON(t, w, &poll)
	if poll.Poll.Title != "Renamed" || poll.Poll.Status != models.StatusActive {
		t.Errorf("Unexpected poll after update: %+v", poll.Poll)
	}
	if len(poll.Options) != 2 || poll.Options[0].Label != "C" {
		t.Errorf("Unexpected options after update: %+v", poll.Options)
	}

	req = testutil.MakeRequest(http.MethodPut, "/admin/polls/missing", body, testutil.BearerHeader(t, admin))
	w = serve(t, h.Update, req, map[string]string{"id": "missing"})
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestUpdateStatusHandler(t *testing.T) {
	h, db := newTestPollHandler(t)
	admin := testutil.CreateTestUser(t, db, "admin@example.com", models.RoleAdmin)
	pollID := testutil.CreateTestPoll(t, db, models.TypeYesNo, models.StatusDraft)

	tests := []struct {
		name           string
		pollID         string
		status         string
		expectedStatus int
	}{
		{"activate", pollID, models.StatusActive, http.StatusOK},
		{"close", pollID, models.StatusClosed, http.StatusOK},
		{"reopen", pollID, models.StatusActive, http.StatusOK},
		{"invalid status", pollID, "PAUSED", http.StatusBadRequest},
		{"missing poll", "missing", models.StatusClosed, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest(http.MethodPatch, "/admin/polls/"+tt.pollID+"/status",
				models.UpdateStatusRequest{Status: tt.status}, testutil.BearerHeader(t, admin))
			w := serve(t, h.UpdateStatus, req, map[string]string{"id": tt.pollID})
			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}
}

func TestDeletePollHandler(t *testing.T) {
	h, db := newTestPollHandler(t)
	admin := testutil.CreateTestUser(t, db, "admin@example.com", models.RoleAdmin)
	user := testutil.CreateTestUser(t, db, "user@example.com", models.RoleUser)
	pollID := testutil.CreateTestPoll(t, db, models.TypeYesNo, models.StatusActive)

	req := testutil.MakeRequest(http.MethodDelete, "/admin/polls/"+pollID, nil, testutil.BearerHeader(t, user))
	w := serve(t, h.Delete, req, map[string]string{"id": pollID})
	testutil.AssertStatus(t, w, http.StatusForbidden)

	req = testutil.MakeRequest(http.MethodDelete, "/admin/polls/"+pollID, nil, testutil.BearerHeader(t, admin))
	w = serve(t, h.Delete, req, map[string]string{"id": pollID})
	testutil.AssertStatus(t, w, http.StatusOK)

	req = testutil.MakeRequest(http.MethodDelete, "/admin/polls/"+pollID, nil, testutil.BearerHeader(t, admin))
	w = serve(t, h.Delete, req, map[string]string{"id": pollID})
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestListActiveHandler(t *testing.T) {
	h, db := newTestPollHandler(t)

	active := testutil.CreateTestPoll(t, db, models.TypeYesNo, models.StatusActive)
	testutil.AddTestOption(t, db, active, "YES", 0)
	testutil.AddTestOption(t, db, active, "NO", 1)
	testutil.CreateTestPoll(t, db, models.TypeYesNo, models.StatusDraft)

	req := testutil.MakeRequest(http.MethodGet, "/polls/active", nil, nil)
	w := serve(t, h.ListActive, req, nil)
	testutil.AssertStatus(t, w, http.StatusOK)

	var polls []models.PollWithOptions
	testutil.AssertJSON(t, w, &polls)
	if len(polls) != 1 || polls[0].Poll.ID != active {
		t.Errorf("Expected only the active poll, got %+v", polls)
	}
}
