package domain

import "time"

// Preferences holds UI-facing settings a user can change.
type Preferences struct {
	FocusAreas []string `json:"focusAreas,omitempty"`
	Reminders  bool     `json:"reminders"`
	Theme      string   `json:"theme,omitempty"`
}

// Progress aggregates the counters shown on the dashboard.
type Progress struct {
	TotalSessions  int `json:"totalSessions"`
	TotalMinutes   int `json:"totalMinutes"`
	JournalEntries int `json:"journalEntries"`
	CurrentStreak  int `json:"currentStreak"`
}

// MentorshipSession is one completed mentoring session.
type MentorshipSession struct {
	ID        string    `json:"id"`
	MentorID  string    `json:"mentorId"`
	Topic     string    `json:"topic"`
	Duration  int       `json:"duration"` // minutes
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// JournalEntry is one reflection entry, unique by ID.
type JournalEntry struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Mood      string    `json:"mood,omitempty"`
	Tags      []string  `json:"tags,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Achievement is an earned milestone badge.
type Achievement struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	EarnedAt    time.Time `json:"earnedAt"`
}

// Profile is the per-user progress aggregate. History slices are ordered
// newest-first; mutations prepend.
type Profile struct {
	UserID            string              `json:"userId"`
	Name              string              `json:"name"`
	Email             string              `json:"email"`
	Preferences       Preferences         `json:"preferences"`
	Progress          Progress            `json:"progress"`
	MentorshipHistory []MentorshipSession `json:"mentorshipHistory"`
	JournalEntries    []JournalEntry      `json:"journalEntries"`
	Achievements      []Achievement       `json:"achievements"`
	CreatedAt         time.Time           `json:"createdAt"`
	UpdatedAt         time.Time           `json:"updatedAt"`
}
