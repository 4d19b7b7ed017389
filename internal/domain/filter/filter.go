// Package filter selects the admissible catalog subset for a preference
// query, relaxing constraints in a fixed order to avoid empty results.
package filter

import (
	"strings"

	"github.com/okian/courserec/internal/domain/model"
)

// Default duration classification bound in weeks.
const defaultShortMaxWeeks = 6

// Candidate pairs a course with its catalog position. Position is the
// insertion-order index used as the final ranking tie-break.
type Candidate struct {
	Course   model.Course
	Position int
}

// Relaxation records which constraints were dropped to produce a
// non-empty candidate set. The category constraint is never dropped.
type Relaxation struct {
	Duration bool
	Pricing  bool
	Skill    bool
}

// Depth returns the number of dropped constraints (0 to 3).
func (r Relaxation) Depth() int {
	var d int
	if r.Duration {
		d++
	}
	if r.Pricing {
		d++
	}
	if r.Skill {
		d++
	}
	return d
}

// Dropped lists the dropped constraints by name, in relaxation order.
func (r Relaxation) Dropped() []string {
	var names []string
	if r.Duration {
		names = append(names, "duration")
	}
	if r.Pricing {
		names = append(names, "pricing")
	}
	if r.Skill {
		names = append(names, "skill_level")
	}
	return names
}

// Filter applies conjunctive preference constraints to a catalog.
type Filter struct {
	shortMaxWeeks int
}

// Option applies a configuration option to the Filter.
type Option func(*Filter)

// WithShortMaxWeeks sets the inclusive upper bound of the Short bucket.
func WithShortMaxWeeks(weeks int) Option {
	return func(f *Filter) {
		if weeks > 0 {
			f.shortMaxWeeks = weeks
		}
	}
}

// New creates a Filter with default configuration.
func New(opts ...Option) *Filter {
	f := &Filter{
		shortMaxWeeks: defaultShortMaxWeeks,
	}

	// Apply all options
	for _, opt := range opts {
		opt(f)
	}

	return f
}

// ShortMaxWeeks returns the inclusive upper bound of the Short bucket.
func (f *Filter) ShortMaxWeeks() int {
	return f.shortMaxWeeks
}

// Admissible returns the admissible subset of the catalog for the query,
// preserving catalog order, together with the relaxation that was needed.
//
// The conjunctive filter is tried first. If it yields nothing, constraints
// are dropped one at a time - duration, then pricing, then skill level -
// re-testing after each drop and stopping at the first non-empty subset.
// Category is always retained, so a query for a category with no courses
// at all returns an empty set at full relaxation depth.
func (f *Filter) Admissible(catalog []model.Course, q model.PreferenceQuery) ([]Candidate, Relaxation) {
	steps := []Relaxation{
		{},
		{Duration: true},
		{Duration: true, Pricing: true},
		{Duration: true, Pricing: true, Skill: true},
	}

	for _, rel := range steps {
		var out []Candidate
		for i, c := range catalog {
			if f.matches(c, q, rel) {
				out = append(out, Candidate{Course: c, Position: i})
			}
		}
		if len(out) > 0 {
			return out, rel
		}
	}
	return nil, steps[len(steps)-1]
}

// matches tests one course against the query under a given relaxation.
func (f *Filter) matches(c model.Course, q model.PreferenceQuery, rel Relaxation) bool {
	if !q.WantsAnyCategory() && !strings.EqualFold(c.Category, q.Category) {
		return false
	}
	if !rel.Skill && c.SkillLevel != q.Skill {
		return false
	}
	if !rel.Pricing && !q.Pricing.Admits(c.Pricing) {
		return false
	}
	if !rel.Duration && c.DurationBucket(f.shortMaxWeeks) != q.Duration {
		return false
	}
	return true
}
