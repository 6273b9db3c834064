// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"

	"github.com/akarpov/mentor-labs/internal/domain"
)

// Repository persists user profile snapshots. Snapshots are opaque to the
// backend; the progress store owns their shape.
type Repository interface {
	// LoadProfile retrieves a profile snapshot. Returns (nil, nil) when no
	// snapshot exists for the user.
	LoadProfile(ctx context.Context, userID string) (*domain.Profile, error)

	// SaveProfile creates or replaces the profile snapshot.
	SaveProfile(ctx context.Context, profile *domain.Profile) error

	// DeleteProfile removes the profile snapshot. Deleting an absent
	// snapshot is not an error.
	DeleteProfile(ctx context.Context, userID string) error

	// Ping verifies backend connectivity.
	Ping(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}
