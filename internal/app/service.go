// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	eventqueue "github.com/okian/courserec/internal/adapters/mq/queue"
	workerpool "github.com/okian/courserec/internal/adapters/mq/worker"
	repository "github.com/okian/courserec/internal/adapters/repository"
	"github.com/okian/courserec/internal/domain/dedupe"
	"github.com/okian/courserec/internal/domain/feedback"
	"github.com/okian/courserec/internal/domain/filter"
	"github.com/okian/courserec/internal/domain/model"
	"github.com/okian/courserec/internal/domain/ranking"
	"github.com/okian/courserec/pkg/logger"
	"github.com/okian/courserec/pkg/metrics"
)

// feedbackApplier adapts the feedback store to the worker.Applier interface.
type feedbackApplier struct {
	store repository.FeedbackStore
}

func (a *feedbackApplier) Apply(ctx context.Context, e model.FeedbackEvent) error {
	if err := e.Validate(); err != nil {
		return err
	}
	_, err := a.store.Upsert(ctx, model.FeedbackRecord{
		UserID:   e.UserID,
		CourseID: e.CourseID,
		Rating:   e.Rating,
	})
	if err != nil {
		return fmt.Errorf("upsert feedback for event %s: %w", e.EventID, err)
	}
	return nil
}

// Service implements the API dependencies for the recommendation system.
type Service struct {
	mu sync.RWMutex

	// Core components
	catalog       *repository.SnapshotStore
	feedbackStore repository.FeedbackStore
	deduper       dedupe.Deduper
	eventQueue    eventqueue.Queue
	workerPool    *workerpool.Pool
	ranker        *ranking.Ranker
	adjuster      *feedback.Adjuster

	// Configuration
	workerCount   int
	queueSize     int
	dedupeSize    int
	catalogPath   string
	topK          int
	simWeight     float64
	catWeight     float64
	feedbackCap   float64
	categoryStep  float64
	shortMaxWeeks int

	// State
	started bool
	stopCh  chan struct{}

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of worker goroutines.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the feedback event queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the size of the deduplication cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithCatalogPath sets the CSV file loaded on Start.
func WithCatalogPath(path string) Option {
	return func(s *Service) {
		s.catalogPath = path
	}
}

// WithTopK sets the default number of recommendations returned.
func WithTopK(k int) Option {
	return func(s *Service) {
		if k > 0 {
			s.topK = k
		}
	}
}

// WithScoreWeights sets the similarity and category-match weights.
func WithScoreWeights(similarity, category float64) Option {
	return func(s *Service) {
		if similarity >= 0 && category >= 0 && similarity+category > 0 {
			s.simWeight = similarity
			s.catWeight = category
		}
	}
}

// WithFeedbackAdjustment sets the feedback cap and category step.
func WithFeedbackAdjustment(cap, step float64) Option {
	return func(s *Service) {
		if cap >= 0 {
			s.feedbackCap = cap
		}
		if step >= 0 {
			s.categoryStep = step
		}
	}
}

// WithShortMaxWeeks sets the inclusive Short Term duration bound.
func WithShortMaxWeeks(weeks int) Option {
	return func(s *Service) {
		if weeks > 0 {
			s.shortMaxWeeks = weeks
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:   runtime.NumCPU() * 2,
		queueSize:     10000,
		dedupeSize:    100000,
		topK:          10,
		simWeight:     0.7,
		catWeight:     0.3,
		feedbackCap:   0.2,
		categoryStep:  0.05,
		shortMaxWeeks: 6,
		stopCh:        make(chan struct{}),
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting recommendation service...")

	s.catalog = repository.NewSnapshotStore()
	s.feedbackStore = repository.NewMemoryFeedbackStore()
	s.deduper = dedupe.NewInMemoryDeduper(
		dedupe.WithMaxSize(s.dedupeSize),
	)
	s.eventQueue = eventqueue.NewInMemoryQueue(
		eventqueue.WithCapacity(s.queueSize),
		eventqueue.WithBufferSize(s.queueSize),
	)

	s.adjuster = feedback.New(
		feedback.WithCap(s.feedbackCap),
		feedback.WithCategoryStep(s.categoryStep),
	)
	s.ranker = ranking.New(
		ranking.WithSimilarityWeight(s.simWeight),
		ranking.WithCategoryWeight(s.catWeight),
		ranking.WithTopK(s.topK),
		ranking.WithFilter(filter.New(filter.WithShortMaxWeeks(s.shortMaxWeeks))),
		ranking.WithAdjuster(s.adjuster),
	)

	if s.catalogPath != "" {
		courses, err := repository.LoadCatalogFile(s.catalogPath)
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
		if _, err := s.catalog.Replace(ctx, courses); err != nil {
			return fmt.Errorf("install catalog: %w", err)
		}
		s.logger.Info(ctx, "catalog loaded",
			logger.String("path", s.catalogPath),
			logger.Int("courses", len(courses)),
		)
	}

	applier := &feedbackApplier{store: s.feedbackStore}
	s.workerPool = workerpool.NewPool(s.workerCount, s.eventQueue, applier)
	s.workerPool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "recommendation service started",
		logger.Int("workers", s.workerPool.Size()),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping recommendation service...")

	if s.workerPool != nil {
		_ = s.workerPool.Shutdown(context.Background())
	}

	select {
	case <-s.stopCh:
	default:
		close(s.stopCh)
	}

	s.started = false
	s.logger.Info(context.Background(), "recommendation service stopped")
}

// SeenAndRecord atomically checks if an event id was seen and records it
// if not. Returns true if the event was already seen.
func (s *Service) SeenAndRecord(ctx context.Context, id string) bool {
	seen := s.deduper.SeenAndRecord(ctx, id)
	if seen {
		metrics.RecordFeedbackDuplicate()
	}
	return seen
}

// Unrecord removes an event ID from the seen list, allowing it to be retried.
func (s *Service) Unrecord(ctx context.Context, id string) {
	s.deduper.Unrecord(ctx, id)
}

// Size returns the current number of entries in the deduper.
func (s *Service) Size() int64 {
	if s.deduper == nil {
		return 0
	}
	return s.deduper.Size()
}

// Enqueue submits a feedback event for asynchronous processing.
func (s *Service) Enqueue(ctx context.Context, e model.FeedbackEvent) bool {
	if err := e.Validate(); err != nil {
		s.logger.Warn(ctx, "rejecting malformed feedback event",
			logger.String("eventID", e.EventID),
			logger.Error(err),
		)
		return false
	}

	success := s.eventQueue.Enqueue(ctx, e)
	if success {
		metrics.UpdateQueueSize(s.eventQueue.Len(ctx))
	}
	return success
}

// SubmitFeedback validates, deduplicates and enqueues a feedback event.
// Returns true when the event was a duplicate of an already-seen one.
func (s *Service) SubmitFeedback(ctx context.Context, e model.FeedbackEvent) (duplicate bool, err error) {
	if err := e.Validate(); err != nil {
		return false, err
	}
	if s.SeenAndRecord(ctx, e.EventID) {
		return true, nil
	}
	if !s.Enqueue(ctx, e) {
		s.Unrecord(ctx, e.EventID)
		return false, ErrBackpressure
	}
	return false, nil
}

// Recommend runs the full matching and ranking pass for a query against
// the current catalog snapshot.
func (s *Service) Recommend(ctx context.Context, q model.PreferenceQuery, limit int) (ranking.Outcome, error) {
	if s.catalog == nil || s.ranker == nil {
		return ranking.Outcome{}, ranking.ErrEmptyCatalog
	}
	snap, ok := s.catalog.Current()
	if !ok {
		return ranking.Outcome{}, ranking.ErrEmptyCatalog
	}

	history := feedback.History{}
	if q.UserID != "" {
		records, err := s.feedbackStore.ListByUser(ctx, q.UserID)
		if err != nil {
			return ranking.Outcome{}, fmt.Errorf("load feedback history: %w", err)
		}
		history = feedback.BuildHistory(records, snap.CategoryOf)
	}

	return s.ranker.Rank(snap, q, history, limit)
}

// ReloadCatalog re-reads the catalog file and installs a new snapshot.
// Requests in flight keep ranking against the snapshot they started with.
func (s *Service) ReloadCatalog(ctx context.Context) error {
	if s.catalogPath == "" {
		return ErrNoCatalogPath
	}
	courses, err := repository.LoadCatalogFile(s.catalogPath)
	if err != nil {
		return fmt.Errorf("reload catalog: %w", err)
	}
	snap, err := s.catalog.Replace(ctx, courses)
	if err != nil {
		return fmt.Errorf("install catalog: %w", err)
	}
	s.logger.Info(ctx, "catalog reloaded",
		logger.Int("courses", snap.Len()),
		logger.Int("version", int(snap.Version())),
	)
	return nil
}

// InstallCatalog installs courses directly, bypassing the CSV file.
func (s *Service) InstallCatalog(ctx context.Context, courses []model.Course) error {
	_, err := s.catalog.Replace(ctx, courses)
	return err
}

// CourseCount returns the size of the current catalog snapshot.
func (s *Service) CourseCount(ctx context.Context) int {
	if s.catalog == nil {
		return 0
	}
	return s.catalog.Count(ctx)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"dedupeSize":  s.dedupeSize,
	}

	if s.started {
		queueLen := s.eventQueue.Len(ctx)
		stats["queueLength"] = queueLen
		stats["courseCount"] = s.catalog.Count(ctx)
		stats["feedbackRecords"] = s.feedbackStore.Count(ctx)
		if snap, ok := s.catalog.Current(); ok {
			stats["catalogVersion"] = snap.Version()
			stats["vocabularySize"] = snap.VocabularySize()
		}

		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateWorkerCount(s.workerPool.Size())
	}

	return stats
}
