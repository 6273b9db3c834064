package progress

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/akarpov/mentor-labs/internal/domain"
	"github.com/akarpov/mentor-labs/internal/store"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	repo, err := store.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLite failed: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return NewStore(repo, nil)
}

func TestGetSeedsDemoProfileOnce(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	first, err := s.Get(ctx, "user-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if first.Name != "Demo User" {
		t.Errorf("seeded name = %q, want %q", first.Name, "Demo User")
	}
	if len(first.Achievements) != 1 {
		t.Errorf("seed should grant one achievement, got %d", len(first.Achievements))
	}

	// Mutate, then confirm a second Get does not reseed.
	if _, err := s.SetUser(ctx, "user-1", "Ada", "ada@example.com"); err != nil {
		t.Fatalf("SetUser failed: %v", err)
	}
	second, err := s.Get(ctx, "user-1")
	if err != nil {
		t.Fatalf("second Get failed: %v", err)
	}
	if second.Name != "Ada" {
		t.Errorf("Get reseeded over mutation: name = %q", second.Name)
	}
}

func TestAddSessionCountersAndOrder(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	p, err := s.AddSession(ctx, "user-1", domain.MentorshipSession{MentorID: "elena-vasquez", Topic: "first", Duration: 45})
	if err != nil {
		t.Fatalf("AddSession failed: %v", err)
	}
	if p.Progress.TotalSessions != 1 || p.Progress.TotalMinutes != 45 {
		t.Errorf("counters = %d sessions / %d minutes, want 1 / 45", p.Progress.TotalSessions, p.Progress.TotalMinutes)
	}

	p, err = s.AddSession(ctx, "user-1", domain.MentorshipSession{MentorID: "viktor-hale", Topic: "second", Duration: 30})
	if err != nil {
		t.Fatalf("second AddSession failed: %v", err)
	}
	if p.Progress.TotalSessions != 2 || p.Progress.TotalMinutes != 75 {
		t.Errorf("counters = %d sessions / %d minutes, want 2 / 75", p.Progress.TotalSessions, p.Progress.TotalMinutes)
	}
	if len(p.MentorshipHistory) != 2 || p.MentorshipHistory[0].Topic != "second" {
		t.Errorf("newest session must be first: %+v", p.MentorshipHistory)
	}
	if p.MentorshipHistory[0].ID == "" {
		t.Error("session id should be generated when absent")
	}
}

func TestJournalEntryLifecycle(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	p, err := s.AddJournalEntry(ctx, "user-1", domain.JournalEntry{Title: "day one", Content: "started"})
	if err != nil {
		t.Fatalf("AddJournalEntry failed: %v", err)
	}
	if p.Progress.JournalEntries != 1 {
		t.Errorf("journal counter = %d, want 1", p.Progress.JournalEntries)
	}
	entryID := p.JournalEntries[0].ID
	if entryID == "" {
		t.Fatal("entry id should be generated")
	}

	newContent := "revised"
	p, err = s.UpdateJournalEntry(ctx, "user-1", entryID, JournalPatch{Content: &newContent})
	if err != nil {
		t.Fatalf("UpdateJournalEntry failed: %v", err)
	}
	if p.JournalEntries[0].Content != "revised" {
		t.Errorf("content = %q, want %q", p.JournalEntries[0].Content, "revised")
	}
	if p.JournalEntries[0].Title != "day one" {
		t.Error("unpatched fields must be preserved")
	}

	// Unknown id is a no-op, not an error.
	before := len(p.JournalEntries)
	p, err = s.UpdateJournalEntry(ctx, "user-1", "nope", JournalPatch{Content: &newContent})
	if err != nil {
		t.Fatalf("UpdateJournalEntry on unknown id: %v", err)
	}
	if len(p.JournalEntries) != before {
		t.Error("no-op update must not change the entry list")
	}
}

func TestUpdateProgressPatchesOnlyProvidedFields(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.AddSession(ctx, "user-1", domain.MentorshipSession{Duration: 45}); err != nil {
		t.Fatalf("AddSession failed: %v", err)
	}

	streak := 7
	p, err := s.UpdateProgress(ctx, "user-1", ProgressPatch{CurrentStreak: &streak})
	if err != nil {
		t.Fatalf("UpdateProgress failed: %v", err)
	}
	if p.Progress.CurrentStreak != 7 {
		t.Errorf("streak = %d, want 7", p.Progress.CurrentStreak)
	}
	if p.Progress.TotalMinutes != 45 {
		t.Errorf("unpatched counter changed: minutes = %d", p.Progress.TotalMinutes)
	}
}

func TestAddAchievementPrepends(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	p, err := s.AddAchievement(ctx, "user-1", domain.Achievement{Title: "Streak Week"})
	if err != nil {
		t.Fatalf("AddAchievement failed: %v", err)
	}
	if p.Achievements[0].Title != "Streak Week" {
		t.Errorf("newest achievement must be first: %+v", p.Achievements)
	}
}

func TestLogoutClearsProfile(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.SetUser(ctx, "user-1", "Ada", "ada@example.com"); err != nil {
		t.Fatalf("SetUser failed: %v", err)
	}
	if err := s.Logout(ctx, "user-1"); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}

	p, err := s.Get(ctx, "user-1")
	if err != nil {
		t.Fatalf("Get after logout failed: %v", err)
	}
	if p.Name != "Demo User" {
		t.Errorf("post-logout read should reseed the demo profile, got name %q", p.Name)
	}
}
