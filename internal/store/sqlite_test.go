package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/akarpov/mentor-labs/internal/domain"
)

func testProfile(userID string) *domain.Profile {
	now := time.Unix(1700000000, 0).UTC()
	return &domain.Profile{
		UserID: userID,
		Name:   "Demo User",
		Email:  "demo@example.com",
		Progress: domain.Progress{
			TotalSessions: 2,
			TotalMinutes:  75,
		},
		MentorshipHistory: []domain.MentorshipSession{
			{ID: "s1", MentorID: "elena-vasquez", Topic: "onboarding", Duration: 45, CreatedAt: now},
		},
		JournalEntries: []domain.JournalEntry{
			{ID: "j1", Title: "day one", Content: "started", CreatedAt: now, UpdatedAt: now},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestSQLiteRoundTrip(t *testing.T) {
	t.Parallel()

	repo, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLite failed: %v", err)
	}
	defer func() { _ = repo.Close() }()

	ctx := context.Background()
	if err := repo.Ping(ctx); err != nil {
		t.Fatalf("Ping failed: %v", err)
	}

	got, err := repo.LoadProfile(ctx, "missing")
	if err != nil {
		t.Fatalf("LoadProfile on missing user: %v", err)
	}
	if got != nil {
		t.Fatal("missing profile should load as nil")
	}

	want := testProfile("user-1")
	if err := repo.SaveProfile(ctx, want); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}

	got, err = repo.LoadProfile(ctx, "user-1")
	if err != nil {
		t.Fatalf("LoadProfile failed: %v", err)
	}
	if got == nil {
		t.Fatal("saved profile not found")
	}
	if got.Name != want.Name || got.Progress.TotalMinutes != want.Progress.TotalMinutes {
		t.Errorf("loaded profile = %+v, want %+v", got, want)
	}
	if len(got.MentorshipHistory) != 1 || got.MentorshipHistory[0].ID != "s1" {
		t.Errorf("mentorship history not preserved: %+v", got.MentorshipHistory)
	}
}

func TestSQLiteSaveReplacesSnapshot(t *testing.T) {
	t.Parallel()

	repo, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLite failed: %v", err)
	}
	defer func() { _ = repo.Close() }()

	ctx := context.Background()
	p := testProfile("user-1")
	if err := repo.SaveProfile(ctx, p); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}

	p.Progress.TotalSessions = 5
	if err := repo.SaveProfile(ctx, p); err != nil {
		t.Fatalf("second SaveProfile failed: %v", err)
	}

	got, err := repo.LoadProfile(ctx, "user-1")
	if err != nil {
		t.Fatalf("LoadProfile failed: %v", err)
	}
	if got.Progress.TotalSessions != 5 {
		t.Errorf("TotalSessions = %d, want 5", got.Progress.TotalSessions)
	}
}

func TestSQLiteDeleteProfile(t *testing.T) {
	t.Parallel()

	repo, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLite failed: %v", err)
	}
	defer func() { _ = repo.Close() }()

	ctx := context.Background()
	if err := repo.SaveProfile(ctx, testProfile("user-1")); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}
	if err := repo.DeleteProfile(ctx, "user-1"); err != nil {
		t.Fatalf("DeleteProfile failed: %v", err)
	}
	got, err := repo.LoadProfile(ctx, "user-1")
	if err != nil {
		t.Fatalf("LoadProfile after delete: %v", err)
	}
	if got != nil {
		t.Error("profile should be gone after delete")
	}

	// Deleting an absent snapshot is not an error.
	if err := repo.DeleteProfile(ctx, "user-1"); err != nil {
		t.Errorf("DeleteProfile on absent user: %v", err)
	}
}
