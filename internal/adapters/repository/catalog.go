package repository

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/okian/courserec/internal/domain/encoding"
	"github.com/okian/courserec/internal/domain/model"
	"github.com/okian/courserec/pkg/metrics"
)

// Snapshot is one fitted, immutable view of the catalog: the courses in
// insertion order, the vectorizer fitted on their text, and the
// precomputed vector per course. Rankings hold a snapshot for their
// whole pass, so a concurrent Replace never mixes vocabularies.
type Snapshot struct {
	version  int64
	courses  []model.Course
	vec      *encoding.Vectorizer
	vectors  []encoding.Vector
	position map[string]int
}

// Version returns the monotonically increasing snapshot version.
func (s *Snapshot) Version() int64 {
	return s.version
}

// Courses returns the catalog in insertion order. Callers must not
// mutate the returned slice.
func (s *Snapshot) Courses() []model.Course {
	return s.courses
}

// Vector returns the precomputed document vector at a catalog position.
func (s *Snapshot) Vector(position int) encoding.Vector {
	return s.vectors[position]
}

// EncodeQuery encodes free text with the snapshot's vocabulary.
func (s *Snapshot) EncodeQuery(text string) encoding.Vector {
	return s.vec.Encode(text)
}

// VocabularySize returns the fitted vocabulary size.
func (s *Snapshot) VocabularySize() int {
	return s.vec.VocabularySize()
}

// CategoryOf resolves a course id to its category.
func (s *Snapshot) CategoryOf(courseID string) (string, bool) {
	i, ok := s.position[courseID]
	if !ok {
		return "", false
	}
	return s.courses[i].Category, true
}

// Has reports whether a course id exists in the snapshot.
func (s *Snapshot) Has(courseID string) bool {
	_, ok := s.position[courseID]
	return ok
}

// Len returns the number of courses in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.courses)
}

// SnapshotStore is an in-memory CatalogStore. Replacement is a single
// atomic pointer swap; readers never block writers.
type SnapshotStore struct {
	current atomic.Pointer[Snapshot]
	version atomic.Int64

	encodingOpts []encoding.Option
}

// NewSnapshotStore creates an empty SnapshotStore with configuration options.
func NewSnapshotStore(opts ...Option) *SnapshotStore {
	s := &SnapshotStore{}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Replace fits a new snapshot from the given courses and installs it.
func (s *SnapshotStore) Replace(_ context.Context, courses []model.Course) (*Snapshot, error) {
	if len(courses) == 0 {
		return nil, ErrEmptyCatalog
	}

	docs := make([]string, len(courses))
	position := make(map[string]int, len(courses))
	for i, c := range courses {
		if c.ID == "" {
			return nil, ErrInvalidCourse
		}
		if _, dup := position[c.ID]; dup {
			return nil, ErrDuplicateCourse
		}
		position[c.ID] = i
		docs[i] = c.Title + " " + c.Description + " " + c.Category
	}

	start := time.Now()
	vec := encoding.NewVectorizer(docs, s.encodingOpts...)
	vectors := vec.EncodeAll(docs)
	metrics.RecordEncodingLatency(float64(time.Since(start).Milliseconds()))

	snap := &Snapshot{
		version:  s.version.Add(1),
		courses:  courses,
		vec:      vec,
		vectors:  vectors,
		position: position,
	}
	s.current.Store(snap)

	metrics.UpdateCatalogSize(len(courses))
	metrics.UpdateCatalogVersion(int(snap.version))
	metrics.UpdateVocabularySize(vec.VocabularySize())

	return snap, nil
}

// Current returns the installed snapshot, or false before the first Replace.
func (s *SnapshotStore) Current() (*Snapshot, bool) {
	snap := s.current.Load()
	return snap, snap != nil
}

// Count returns the number of courses in the current snapshot.
func (s *SnapshotStore) Count(_ context.Context) int {
	snap := s.current.Load()
	if snap == nil {
		return 0
	}
	return snap.Len()
}
