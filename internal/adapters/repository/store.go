// Package repository defines the catalog and feedback store interfaces
// and their in-memory implementations.
package repository

import (
	"context"

	"github.com/okian/courserec/internal/domain/model"
)

// CatalogStore provides access to versioned, immutable catalog snapshots.
type CatalogStore interface {
	// Replace fits a new snapshot from the given courses and installs it
	// as the current one. In-flight rankings keep the snapshot they
	// started with.
	Replace(ctx context.Context, courses []model.Course) (*Snapshot, error)

	// Current returns the installed snapshot. The boolean is false until
	// the first Replace succeeds.
	Current() (*Snapshot, bool)

	// Count returns the number of courses in the current snapshot.
	Count(ctx context.Context) int
}

// FeedbackStore provides read/write access to per-user course ratings.
type FeedbackStore interface {
	// Upsert stores a rating, replacing any previous rating the user gave
	// the same course. Returns true when a new row was created, false when
	// an existing one was overwritten.
	Upsert(ctx context.Context, rec model.FeedbackRecord) (bool, error)

	// ListByUser returns all ratings stored for a user.
	ListByUser(ctx context.Context, userID string) ([]model.FeedbackRecord, error)

	// Count returns the total number of stored ratings.
	Count(ctx context.Context) int
}
