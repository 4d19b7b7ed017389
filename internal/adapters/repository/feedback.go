package repository

import (
	"context"
	"sync"

	"github.com/okian/courserec/internal/domain/model"
	"github.com/okian/courserec/pkg/metrics"
)

// feedbackKey identifies one (user, course) rating row.
type feedbackKey struct {
	userID   string
	courseID string
}

// MemoryFeedbackStore is an in-memory FeedbackStore. The latest rating
// per (user, course) pair wins; replaying an event therefore converges
// to the same state.
type MemoryFeedbackStore struct {
	mu     sync.RWMutex
	rows   map[feedbackKey]model.Rating
	byUser map[string][]string // user -> course ids in first-rating order
}

// NewMemoryFeedbackStore creates an empty feedback store.
func NewMemoryFeedbackStore() *MemoryFeedbackStore {
	return &MemoryFeedbackStore{
		rows:   make(map[feedbackKey]model.Rating),
		byUser: make(map[string][]string),
	}
}

// Upsert stores a rating, replacing any previous rating for the pair.
func (s *MemoryFeedbackStore) Upsert(_ context.Context, rec model.FeedbackRecord) (bool, error) {
	if rec.UserID == "" || rec.CourseID == "" || !rec.Rating.Valid() {
		return false, ErrInvalidRecord
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := feedbackKey{userID: rec.UserID, courseID: rec.CourseID}
	_, existed := s.rows[key]
	s.rows[key] = rec.Rating
	if !existed {
		s.byUser[rec.UserID] = append(s.byUser[rec.UserID], rec.CourseID)
	}

	metrics.RecordFeedbackUpsert()
	metrics.UpdateFeedbackRecords(len(s.rows))

	return !existed, nil
}

// ListByUser returns all ratings stored for a user, in first-rating order.
func (s *MemoryFeedbackStore) ListByUser(_ context.Context, userID string) ([]model.FeedbackRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	courseIDs := s.byUser[userID]
	if len(courseIDs) == 0 {
		return nil, nil
	}

	out := make([]model.FeedbackRecord, 0, len(courseIDs))
	for _, cid := range courseIDs {
		out = append(out, model.FeedbackRecord{
			UserID:   userID,
			CourseID: cid,
			Rating:   s.rows[feedbackKey{userID: userID, courseID: cid}],
		})
	}
	return out, nil
}

// Count returns the total number of stored ratings.
func (s *MemoryFeedbackStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows)
}
