package model

import (
	"fmt"
	"time"
)

// Rating is a user's vote on a course.
type Rating int

// Rating values. Anything else is rejected at the boundary.
const (
	RatingUp   Rating = 1
	RatingDown Rating = -1
)

// Valid reports whether the rating is one of the two accepted values.
func (r Rating) Valid() bool {
	return r == RatingUp || r == RatingDown
}

// FeedbackRecord is a live (user, course) rating row as stored.
// The store keeps at most one record per pair; a new rating replaces
// the previous one.
type FeedbackRecord struct {
	UserID   string
	CourseID string
	Rating   Rating
}

// FeedbackEvent is a feedback submission flowing through the ingestion
// queue. EventID makes ingestion idempotent.
type FeedbackEvent struct {
	EventID  string
	UserID   string
	CourseID string
	Rating   Rating
	TS       time.Time
}

// Validate rejects malformed feedback events.
func (e FeedbackEvent) Validate() error {
	switch {
	case e.EventID == "":
		return fmt.Errorf("%w: missing event id", ErrInvalidFeedback)
	case e.UserID == "":
		return fmt.Errorf("%w: missing user id", ErrInvalidFeedback)
	case e.CourseID == "":
		return fmt.Errorf("%w: missing course id", ErrInvalidFeedback)
	case !e.Rating.Valid():
		return fmt.Errorf("%w: rating must be +1 or -1, got %d", ErrInvalidFeedback, int(e.Rating))
	}
	return nil
}
