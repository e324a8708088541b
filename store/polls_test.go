// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/danielhkuo/pollboard/models"
	"github.com/danielhkuo/pollboard/testutil"
)

func labels(options []models.Option) []string {
	out := make([]string, len(options))
	for i, o := range options {
		out[i] = o.Label
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestCreatePoll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewPollRepository(db)
	ctx := context.Background()
	admin := testutil.IdentityOf(testutil.CreateTestUser(t, db, "admin@example.com", models.RoleAdmin))

	tests := []struct {
		name       string
		req        models.CreatePollRequest
		wantErr    error
		wantLabels []string
	}{
		{
			name: "yes/no ignores supplied options",
			req: models.CreatePollRequest{
				Title:   "Pizza Friday?",
				Type:    models.TypeYesNo,
				Status:  models.StatusActive,
				Options: []models.OptionInput{{Label: "Maybe"}},
			},
			wantLabels: []string{"YES", "NO"},
		},
		{
			name: "multiple choice drops blank labels",
			req: models.CreatePollRequest{
				Title:  "Favourite colour",
				Type:   models.TypeMultipleChoice,
				Status: models.StatusDraft,
				Options: []models.OptionInput{
					{Label: "Red"}, {Label: "  "}, {Label: " Blue "}, {Label: ""},
				},
			},
			wantLabels: []string{"Red", "Blue"},
		},
		{
			name: "multiple choice needs two options",
			req: models.CreatePollRequest{
				Title:   "Lonely",
				Type:    models.TypeMultipleChoice,
				Status:  models.StatusDraft,
				Options: []models.OptionInput{{Label: "Only"}, {Label: " "}},
			},
			wantErr: models.ErrInvalidInput,
		},
		{
			name:    "missing title",
			req:     models.CreatePollRequest{Title: " ", Type: models.TypeYesNo, Status: models.StatusDraft},
			wantErr: models.ErrInvalidInput,
		},
		{
			name:    "unknown type",
			req:     models.CreatePollRequest{Title: "x", Type: "RANKED", Status: models.StatusDraft},
			wantErr: models.ErrInvalidInput,
		},
		{
			name:    "unknown status",
			req:     models.CreatePollRequest{Title: "x", Type: models.TypeYesNo, Status: "OPEN"},
			wantErr: models.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.CountRows(t, db, "polls", "")

			poll, err := repo.Create(ctx, admin, tt.req)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Expected %v, got %v", tt.wantErr, err)
				}
				if after := testutil.CountRows(t, db, "polls", ""); after != before {
					t.Errorf("Failed create left %d new poll rows", after-before)
				}
				return
			}
			if err != nil {
				t.Fatalf("Create failed: %v", err)
			}

			if got := labels(poll.Options); !equalStrings(got, tt.wantLabels) {
				t.Errorf("Expected options %v, got %v", tt.wantLabels, got)
			}

			stored, err := repo.Get(ctx, poll.Poll.ID)
			if err != nil {
				t.Fatalf("Get failed: %v", err)
			}
			if got := labels(stored.Options); !equalStrings(got, tt.wantLabels) {
				t.Errorf("Expected stored options %v, got %v", tt.wantLabels, got)
			}
			for i, o := range stored.Options {
				if o.Position != i {
					t.Errorf("Option %q has position %d, want %d", o.Label, o.Position, i)
				}
			}
		})
	}
}

func TestPollMutations_RequireAdmin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewPollRepository(db)
	ctx := context.Background()

	user := testutil.IdentityOf(testutil.CreateTestUser(t, db, "user@example.com", models.RoleUser))
	pollID := testutil.CreateTestPoll(t, db, models.TypeYesNo, models.StatusDraft)

	req := models.CreatePollRequest{Title: "t", Type: models.TypeYesNo, Status: models.StatusDraft}
	upd := models.UpdatePollRequest{Title: "t", Type: models.TypeYesNo, Status: models.StatusDraft}

	tests := []struct {
		name    string
		actor   models.Identity
		wantErr error
	}{
		{name: "anonymous", actor: models.Identity{}, wantErr: models.ErrUnauthorized},
		{name: "regular user", actor: user, wantErr: models.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := repo.Create(ctx, tt.actor, req); !errors.Is(err, tt.wantErr) {
				t.Errorf("Create: expected %v, got %v", tt.wantErr, err)
			}
			if _, err := repo.Update(ctx, tt.actor, pollID, upd); !errors.Is(err, tt.wantErr) {
				t.Errorf("Update: expected %v, got %v", tt.wantErr, err)
			}
			if err := repo.UpdateStatus(ctx, tt.actor, pollID, models.StatusActive); !errors.Is(err, tt.wantErr) {
				t.Errorf("UpdateStatus: expected %v, got %v", tt.wantErr, err)
			}
			if err := repo.Delete(ctx, tt.actor, pollID); !errors.Is(err, tt.wantErr) {
				t.Errorf("Delete: expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	if testutil.CountRows(t, db, "polls", "") != 1 {
		t.Error("Rejected mutations must not change the database")
	}
}

func TestUpdatePoll_ReplacesOptionsAndVotes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewPollRepository(db)
	ctx := context.Background()
	admin := testutil.IdentityOf(testutil.CreateTestUser(t, db, "admin@example.com", models.RoleAdmin))
	voter := testutil.CreateTestUser(t, db, "voter@example.com", models.RoleUser)

	created, err := repo.Create(ctx, admin, models.CreatePollRequest{
		Title:   "Lunch",
		Type:    models.TypeMultipleChoice,
		Status:  models.StatusActive,
		Options: []models.OptionInput{{Label: "Tacos"}, {Label: "Sushi"}},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	testutil.CastTestVote(t, db, created.Poll.ID, created.Options[0].ID, voter.ID, time.Now())

	updated, err := repo.Update(ctx, admin, created.Poll.ID, models.UpdatePollRequest{
		Title:   "Lunch v2",
		Type:    models.TypeMultipleChoice,
		Status:  models.StatusActive,
		Options: []models.OptionInput{{Label: "Tacos"}, {Label: "Ramen"}, {Label: "Salad"}},
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if updated.Poll.Title != "Lunch v2" {
		t.Errorf("Expected updated title, got %q", updated.Poll.Title)
	}
	if got := labels(updated.Options); !equalStrings(got, []string{"Tacos", "Ramen", "Salad"}) {
		t.Errorf("Unexpected options after update: %v", got)
	}
	if updated.Options[0].ID == created.Options[0].ID {
		t.Error("Options should be replaced with new rows")
	}
	if n := testutil.CountRows(t, db, "votes", created.Poll.ID); n != 0 {
		t.Errorf("Expected votes for replaced options to be gone, found %d", n)
	}
}

func TestUpdatePoll_TypeSwitching(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewPollRepository(db)
	ctx := context.Background()
	admin := testutil.IdentityOf(testutil.CreateTestUser(t, db, "admin@example.com", models.RoleAdmin))

	created, err := repo.Create(ctx, admin, models.CreatePollRequest{
		Title:  "Switch",
		Type:   models.TypeYesNo,
		Status: models.StatusDraft,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Staying YES_NO keeps the existing option rows
	same, err := repo.Update(ctx, admin, created.Poll.ID, models.UpdatePollRequest{
		Title: "Switch", Type: models.TypeYesNo, Status: models.StatusDraft,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if same.Options[0].ID != created.Options[0].ID {
		t.Error("YES_NO poll kept as YES_NO should keep its options")
	}

	mc, err := repo.Update(ctx, admin, created.Poll.ID, models.UpdatePollRequest{
		Title: "Switch", Type: models.TypeMultipleChoice, Status: models.StatusDraft,
		Options: []models.OptionInput{{Label: "A"}, {Label: "B"}},
	})
	if err != nil {
		t.Fatalf("Update to MULTIPLE_CHOICE failed: %v", err)
	}
	if got := labels(mc.Options); !equalStrings(got, []string{"A", "B"}) {
		t.Errorf("Expected [A B], got %v", got)
	}

	yn, err := repo.Update(ctx, admin, created.Poll.ID, models.UpdatePollRequest{
		Title: "Switch", Type: models.TypeYesNo, Status: models.StatusDraft,
	})
	if err != nil {
		t.Fatalf("Update back to YES_NO failed: %v", err)
	}
	if got := labels(yn.Options); !equalStrings(got, []string{"YES", "NO"}) {
		t.Errorf("Expected [YES NO], got %v", got)
	}
}

func TestUpdatePoll_Errors(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewPollRepository(db)
	ctx := context.Background()
	admin := testutil.IdentityOf(testutil.CreateTestUser(t, db, "admin@example.com", models.RoleAdmin))

	_, err := repo.Update(ctx, admin, "missing", models.UpdatePollRequest{
		Title: "x", Type: models.TypeYesNo, Status: models.StatusDraft,
	})
	if !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	created, err := repo.Create(ctx, admin, models.CreatePollRequest{
		Title: "MC", Type: models.TypeMultipleChoice, Status: models.StatusDraft,
		Options: []models.OptionInput{{Label: "A"}, {Label: "B"}},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	_, err = repo.Update(ctx, admin, created.Poll.ID, models.UpdatePollRequest{
		Title: "MC", Type: models.TypeMultipleChoice, Status: models.StatusDraft,
		Options: []models.OptionInput{{Label: "A"}},
	})
	if !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}

	stored, err := repo.Get(ctx, created.Poll.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got := labels(stored.Options); !equalStrings(got, []string{"A", "B"}) {
		t.Errorf("Rejected update must leave options untouched, got %v", got)
	}
}

func TestUpdateStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewPollRepository(db)
	ctx := context.Background()
	admin := testutil.IdentityOf(testutil.CreateTestUser(t, db, "admin@example.com", models.RoleAdmin))
	pollID := testutil.CreateTestPoll(t, db, models.TypeYesNo, models.StatusDraft)

	// Every transition is permitted, including reopening a closed poll
	for _, status := range []string{models.StatusActive, models.StatusClosed, models.StatusActive, models.StatusDraft} {
		if err := repo.UpdateStatus(ctx, admin, pollID, status); err != nil {
			t.Fatalf("UpdateStatus(%s) failed: %v", status, err)
		}
		stored, err := repo.Get(ctx, pollID)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if stored.Poll.Status != status {
			t.Errorf("Expected status %s, got %s", status, stored.Poll.Status)
		}
	}

	if err := repo.UpdateStatus(ctx, admin, pollID, "ARCHIVED"); !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}
	if err := repo.UpdateStatus(ctx, admin, "missing", models.StatusActive); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestDeletePoll_Cascades(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewPollRepository(db)
	ctx := context.Background()
	admin := testutil.IdentityOf(testutil.CreateTestUser(t, db, "admin@example.com", models.RoleAdmin))
	voter := testutil.CreateTestUser(t, db, "voter@example.com", models.RoleUser)

	pollID := testutil.CreateTestPoll(t, db, models.TypeYesNo, models.StatusActive)
	yes := testutil.AddTestOption(t, db, pollID, "YES", 0)
	testutil.AddTestOption(t, db, pollID, "NO", 1)
	testutil.CastTestVote(t, db, pollID, yes, voter.ID, time.Now())

	if err := repo.Delete(ctx, admin, pollID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := repo.Get(ctx, pollID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected deleted poll to be gone, got %v", err)
	}
	for _, table := range []string{"poll_options", "votes"} {
		if n := testutil.CountRows(t, db, table, pollID); n != 0 {
			t.Errorf("Expected no orphaned %s rows, found %d", table, n)
		}
	}

	if err := repo.Delete(ctx, admin, pollID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected ErrNotFound on second delete, got %v", err)
	}
}

func TestListActive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewPollRepository(db)
	ctx := context.Background()

	active := testutil.CreateTestPoll(t, db, models.TypeYesNo, models.StatusActive)
	testutil.AddTestOption(t, db, active, "YES", 0)
	testutil.AddTestOption(t, db, active, "NO", 1)
	testutil.CreateTestPoll(t, db, models.TypeYesNo, models.StatusDraft)
	testutil.CreateTestPoll(t, db, models.TypeYesNo, models.StatusClosed)

	polls, err := repo.ListActive(ctx)
	if err != nil {
		t.Fatalf("ListActive failed: %v", err)
	}
	if len(polls) != 1 {
		t.Fatalf("Expected 1 active poll, got %d", len(polls))
	}
	if polls[0].Poll.ID != active {
		t.Errorf("Expected poll %s, got %s", active, polls[0].Poll.ID)
	}
	if len(polls[0].Options) != 2 {
		t.Errorf("Expected 2 options, got %d", len(polls[0].Options))
	}

	all, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("Expected 3 polls, got %d", len(all))
	}
}
