// Package feedback turns a user's historical ratings into bounded
// per-course score adjustments.
package feedback

import (
	"github.com/okian/courserec/internal/domain/model"
)

// Default adjustment configuration constants.
const (
	defaultCap          = 0.2
	defaultCategoryStep = 0.05
)

// History is a per-request aggregate of one user's ratings: the exact
// rating per course and the net vote balance per category. It is built
// once from the store rows and then read during scoring, so the engine
// never touches the store mid-ranking.
type History struct {
	byCourse      map[string]model.Rating
	netByCategory map[string]int
}

// BuildHistory aggregates store rows. categoryOf resolves a rated
// course id to its catalog category; rows for courses that have left
// the catalog still contribute their exact-course rating but no
// category signal.
func BuildHistory(records []model.FeedbackRecord, categoryOf func(courseID string) (string, bool)) History {
	h := History{
		byCourse:      make(map[string]model.Rating, len(records)),
		netByCategory: make(map[string]int),
	}
	for _, rec := range records {
		if !rec.Rating.Valid() {
			continue
		}
		h.byCourse[rec.CourseID] = rec.Rating
		if categoryOf == nil {
			continue
		}
		if cat, ok := categoryOf(rec.CourseID); ok {
			h.netByCategory[cat] += int(rec.Rating)
		}
	}
	return h
}

// Empty reports whether the history carries no signal.
func (h History) Empty() bool {
	return len(h.byCourse) == 0
}

// Adjuster computes the bounded feedback component of the final score.
type Adjuster struct {
	cap          float64
	categoryStep float64
}

// Option applies a configuration option to the Adjuster.
type Option func(*Adjuster)

// WithCap bounds adjustments to [-cap, +cap].
func WithCap(cap float64) Option {
	return func(a *Adjuster) {
		if cap >= 0 {
			a.cap = cap
		}
	}
}

// WithCategoryStep sets the per-vote increment for category-level signal.
func WithCategoryStep(step float64) Option {
	return func(a *Adjuster) {
		if step >= 0 {
			a.categoryStep = step
		}
	}
}

// New creates an Adjuster with default configuration.
func New(opts ...Option) *Adjuster {
	a := &Adjuster{
		cap:          defaultCap,
		categoryStep: defaultCategoryStep,
	}

	// Apply all options
	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Cap returns the configured adjustment bound.
func (a *Adjuster) Cap() float64 {
	return a.cap
}

// Adjust returns the adjustment for one candidate course.
//
// An exact rating on this course dominates: it saturates the adjustment
// to +cap or -cap outright. Otherwise the user's net vote balance in the
// course's category moves the score by categoryStep per vote, clamped to
// the cap. No history means no adjustment.
func (a *Adjuster) Adjust(h History, course model.Course) float64 {
	if r, ok := h.byCourse[course.ID]; ok {
		if r == model.RatingUp {
			return a.cap
		}
		return -a.cap
	}

	net := h.netByCategory[course.Category]
	adj := float64(net) * a.categoryStep
	if adj > a.cap {
		return a.cap
	}
	if adj < -a.cap {
		return -a.cap
	}
	return adj
}
