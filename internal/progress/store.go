// Package progress owns the per-user progress aggregate: sessions, journal
// entries and achievements, persisted as opaque snapshots.
package progress

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/akarpov/mentor-labs/internal/domain"
	"github.com/akarpov/mentor-labs/internal/store"
	"github.com/google/uuid"
)

// Store applies discrete mutations to profile snapshots. Each mutation is a
// total function of (current profile, input): load, reduce, save. The mutex
// serializes writers so a profile never sees a partial update.
type Store struct {
	mu     sync.Mutex
	repo   store.Repository
	logger *slog.Logger
}

// NewStore creates a progress store on top of a snapshot repository.
func NewStore(repo store.Repository, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{repo: repo, logger: logger}
}

// ProgressPatch is a partial update of the dashboard counters. Nil fields
// are left untouched.
type ProgressPatch struct {
	TotalSessions  *int `json:"totalSessions,omitempty"`
	TotalMinutes   *int `json:"totalMinutes,omitempty"`
	JournalEntries *int `json:"journalEntries,omitempty"`
	CurrentStreak  *int `json:"currentStreak,omitempty"`
}

// JournalPatch is a partial update of a journal entry. Nil fields are left
// untouched.
type JournalPatch struct {
	Title   *string   `json:"title,omitempty"`
	Content *string   `json:"content,omitempty"`
	Mood    *string   `json:"mood,omitempty"`
	Tags    *[]string `json:"tags,omitempty"`
}

// Get returns the user's profile, seeding the demo profile on first read.
func (s *Store) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadOrSeedLocked(ctx, userID)
}

// SetUser updates the identity fields on the profile.
func (s *Store) SetUser(ctx context.Context, userID, name, email string) (*domain.Profile, error) {
	return s.mutate(ctx, userID, func(p *domain.Profile) {
		p.Name = name
		p.Email = email
	})
}

// UpdateProgress patches the dashboard counters.
func (s *Store) UpdateProgress(ctx context.Context, userID string, patch ProgressPatch) (*domain.Profile, error) {
	return s.mutate(ctx, userID, func(p *domain.Profile) {
		if patch.TotalSessions != nil {
			p.Progress.TotalSessions = *patch.TotalSessions
		}
		if patch.TotalMinutes != nil {
			p.Progress.TotalMinutes = *patch.TotalMinutes
		}
		if patch.JournalEntries != nil {
			p.Progress.JournalEntries = *patch.JournalEntries
		}
		if patch.CurrentStreak != nil {
			p.Progress.CurrentStreak = *patch.CurrentStreak
		}
	})
}

// AddSession prepends a completed session and bumps the counters: sessions
// by one, minutes by the session's duration.
func (s *Store) AddSession(ctx context.Context, userID string, sess domain.MentorshipSession) (*domain.Profile, error) {
	if sess.ID == "" {
		sess.ID = uuid.NewString()
	}
	if sess.CreatedAt.IsZero() {
		sess.CreatedAt = time.Now().UTC()
	}
	return s.mutate(ctx, userID, func(p *domain.Profile) {
		p.MentorshipHistory = append([]domain.MentorshipSession{sess}, p.MentorshipHistory...)
		p.Progress.TotalSessions++
		p.Progress.TotalMinutes += sess.Duration
	})
}

// AddJournalEntry prepends a journal entry and bumps the journal counter.
func (s *Store) AddJournalEntry(ctx context.Context, userID string, entry domain.JournalEntry) (*domain.Profile, error) {
	now := time.Now().UTC()
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = now
	}
	entry.UpdatedAt = entry.CreatedAt
	return s.mutate(ctx, userID, func(p *domain.Profile) {
		p.JournalEntries = append([]domain.JournalEntry{entry}, p.JournalEntries...)
		p.Progress.JournalEntries++
	})
}

// UpdateJournalEntry patches the entry with the given id. Updating an
// unknown id is a no-op.
func (s *Store) UpdateJournalEntry(ctx context.Context, userID, entryID string, patch JournalPatch) (*domain.Profile, error) {
	return s.mutate(ctx, userID, func(p *domain.Profile) {
		for i := range p.JournalEntries {
			if p.JournalEntries[i].ID != entryID {
				continue
			}
			e := &p.JournalEntries[i]
			if patch.Title != nil {
				e.Title = *patch.Title
			}
			if patch.Content != nil {
				e.Content = *patch.Content
			}
			if patch.Mood != nil {
				e.Mood = *patch.Mood
			}
			if patch.Tags != nil {
				e.Tags = *patch.Tags
			}
			e.UpdatedAt = time.Now().UTC()
			return
		}
	})
}

// AddAchievement prepends an earned achievement.
func (s *Store) AddAchievement(ctx context.Context, userID string, a domain.Achievement) (*domain.Profile, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.EarnedAt.IsZero() {
		a.EarnedAt = time.Now().UTC()
	}
	return s.mutate(ctx, userID, func(p *domain.Profile) {
		p.Achievements = append([]domain.Achievement{a}, p.Achievements...)
	})
}

// Logout clears the user's snapshot. The next read reseeds the demo profile.
func (s *Store) Logout(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.repo.DeleteProfile(ctx, userID); err != nil {
		return fmt.Errorf("clear profile: %w", err)
	}
	s.logger.Info("profile cleared", "user_id", userID)
	return nil
}

func (s *Store) mutate(ctx context.Context, userID string, apply func(*domain.Profile)) (*domain.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, err := s.loadOrSeedLocked(ctx, userID)
	if err != nil {
		return nil, err
	}

	apply(profile)
	profile.UpdatedAt = time.Now().UTC()

	if err := s.repo.SaveProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	return profile, nil
}

func (s *Store) loadOrSeedLocked(ctx context.Context, userID string) (*domain.Profile, error) {
	profile, err := s.repo.LoadProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if profile != nil {
		return profile, nil
	}

	profile = demoProfile(userID)
	if err := s.repo.SaveProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("seed demo profile: %w", err)
	}
	s.logger.Info("demo profile seeded", "user_id", userID)
	return profile, nil
}

// demoProfile is the snapshot a fresh user starts from.
func demoProfile(userID string) *domain.Profile {
	now := time.Now().UTC()
	return &domain.Profile{
		UserID: userID,
		Name:   "Demo User",
		Email:  "demo@mentorlabs.app",
		Preferences: domain.Preferences{
			FocusAreas: []string{"leadership", "communication"},
			Reminders:  true,
			Theme:      "light",
		},
		Achievements: []domain.Achievement{
			{
				ID:          "first-steps",
				Title:       "First Steps",
				Description: "Created your Mentor Labs profile",
				EarnedAt:    now,
			},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}
