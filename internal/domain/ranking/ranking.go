// Package ranking scores admissible candidates against a preference
// query and produces a deterministic, truncated result list.
package ranking

import (
	"math"
	"sort"
	"strings"

	"github.com/okian/courserec/internal/domain/encoding"
	"github.com/okian/courserec/internal/domain/feedback"
	"github.com/okian/courserec/internal/domain/filter"
	"github.com/okian/courserec/internal/domain/model"
	"github.com/okian/courserec/internal/domain/similarity"
)

// Default scoring configuration constants.
const (
	defaultSimilarityWeight = 0.7
	defaultCategoryWeight   = 0.3
	defaultTopK             = 10
)

// Corpus is the read side of a fitted catalog snapshot: the course
// list in insertion order, the precomputed vector for each position,
// and a query encoder sharing the snapshot's vocabulary.
type Corpus interface {
	Courses() []model.Course
	Vector(position int) encoding.Vector
	EncodeQuery(text string) encoding.Vector
}

// Result is one ranked course.
type Result struct {
	Course model.Course
	Score  float64
	Rank   int
}

// Outcome is the full output of a ranking pass.
type Outcome struct {
	Results    []Result
	Relaxation filter.Relaxation
}

// Ranker combines similarity, preference matching and feedback
// adjustment into a single ordered score.
type Ranker struct {
	simWeight  float64
	prefWeight float64
	topK       int
	filter     *filter.Filter
	adjuster   *feedback.Adjuster
}

// Option applies a configuration option to the Ranker.
type Option func(*Ranker)

// WithSimilarityWeight sets the weight of the text-similarity component.
func WithSimilarityWeight(w float64) Option {
	return func(r *Ranker) {
		if w >= 0 {
			r.simWeight = w
		}
	}
}

// WithCategoryWeight sets the weight of the category-match component.
func WithCategoryWeight(w float64) Option {
	return func(r *Ranker) {
		if w >= 0 {
			r.prefWeight = w
		}
	}
}

// WithTopK sets the maximum number of results returned.
func WithTopK(k int) Option {
	return func(r *Ranker) {
		if k > 0 {
			r.topK = k
		}
	}
}

// WithFilter replaces the admissibility filter.
func WithFilter(f *filter.Filter) Option {
	return func(r *Ranker) {
		if f != nil {
			r.filter = f
		}
	}
}

// WithAdjuster replaces the feedback adjuster.
func WithAdjuster(a *feedback.Adjuster) Option {
	return func(r *Ranker) {
		if a != nil {
			r.adjuster = a
		}
	}
}

// New creates a Ranker with default configuration.
func New(opts ...Option) *Ranker {
	r := &Ranker{
		simWeight:  defaultSimilarityWeight,
		prefWeight: defaultCategoryWeight,
		topK:       defaultTopK,
		filter:     filter.New(),
		adjuster:   feedback.New(),
	}

	// Apply all options
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Rank filters the corpus by the query's hard preferences, scores the
// survivors, orders them deterministically and truncates to topK, or
// to limit when limit is positive (the caller bounds it). An
// empty corpus yields ErrEmptyCatalog; a query no relaxation step can
// satisfy yields an empty (non-nil error-free) outcome.
func (r *Ranker) Rank(corpus Corpus, q model.PreferenceQuery, history feedback.History, limit int) (Outcome, error) {
	if corpus == nil || len(corpus.Courses()) == 0 {
		return Outcome{}, ErrEmptyCatalog
	}
	if err := q.Validate(); err != nil {
		return Outcome{}, err
	}

	k := r.topK
	if limit > 0 {
		k = limit
	}

	candidates, relaxation := r.filter.Admissible(corpus.Courses(), q)
	if len(candidates) == 0 {
		return Outcome{Relaxation: relaxation}, nil
	}

	queryVec := corpus.EncodeQuery(q.QueryText())

	scored := make([]scoredCandidate, 0, len(candidates))
	for _, c := range candidates {
		sim := similarity.Cosine(queryVec, corpus.Vector(c.Position))

		catMatch := 0.0
		if q.WantsAnyCategory() || strings.EqualFold(c.Course.Category, q.Category) {
			catMatch = 1.0
		}

		adj := r.adjuster.Adjust(history, c.Course)
		score := clamp01(sim*r.simWeight + catMatch*r.prefWeight + adj)

		scored = append(scored, scoredCandidate{
			candidate: c,
			score:     score,
		})
	}

	r.order(scored, q)

	if len(scored) > k {
		scored = scored[:k]
	}

	results := make([]Result, len(scored))
	for i, s := range scored {
		results[i] = Result{
			Course: s.candidate.Course,
			Score:  round6(s.score),
			Rank:   i + 1,
		}
	}

	return Outcome{Results: results, Relaxation: relaxation}, nil
}

type scoredCandidate struct {
	candidate filter.Candidate
	score     float64
}

// order sorts in place: score descending, then exact skill match,
// then requested duration bucket, then catalog insertion position.
// Insertion position is a total order, so two ranking passes over the
// same corpus and query always agree.
func (r *Ranker) order(scored []scoredCandidate, q model.PreferenceQuery) {
	shortMax := r.filter.ShortMaxWeeks()
	sort.SliceStable(scored, func(i, j int) bool {
		a, b := scored[i], scored[j]
		if a.score != b.score {
			return a.score > b.score
		}
		aSkill := a.candidate.Course.SkillLevel == q.Skill
		bSkill := b.candidate.Course.SkillLevel == q.Skill
		if aSkill != bSkill {
			return aSkill
		}
		aDur := a.candidate.Course.DurationBucket(shortMax) == q.Duration
		bDur := b.candidate.Course.DurationBucket(shortMax) == q.Duration
		if aDur != bDur {
			return aDur
		}
		return a.candidate.Position < b.candidate.Position
	})
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// round6 keeps scores stable across platforms for response payloads.
func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
