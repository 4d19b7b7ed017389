package worker_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	queue "github.com/okian/courserec/internal/adapters/mq/queue"
	worker "github.com/okian/courserec/internal/adapters/mq/worker"
	model "github.com/okian/courserec/internal/domain/model"
	logging "github.com/okian/courserec/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

// Mock implementations for testing.
type mockQueue struct {
	eventChan  chan queue.Event
	closeError error
}

func newMockQueue() *mockQueue {
	return &mockQueue{
		eventChan: make(chan queue.Event, 10),
	}
}

func (mq *mockQueue) Dequeue(ctx context.Context) <-chan queue.Event {
	return mq.eventChan
}

func (mq *mockQueue) Close() error {
	close(mq.eventChan)
	return mq.closeError
}

func (mq *mockQueue) addEvent(event queue.Event) {
	mq.eventChan <- event
}

type mockApplier struct {
	mu      sync.RWMutex
	applied map[string]model.Rating // courseID -> last applied rating
	errors  map[string]error        // courseID -> injected failure
}

func newMockApplier() *mockApplier {
	return &mockApplier{
		applied: make(map[string]model.Rating),
		errors:  make(map[string]error),
	}
}

func (ma *mockApplier) Apply(ctx context.Context, event worker.Event) error {
	ma.mu.Lock()
	defer ma.mu.Unlock()

	if err, exists := ma.errors[event.CourseID]; exists {
		return err
	}
	ma.applied[event.CourseID] = event.Rating
	return nil
}

func (ma *mockApplier) setError(courseID string, err error) {
	ma.mu.Lock()
	defer ma.mu.Unlock()
	ma.errors[courseID] = err
}

func (ma *mockApplier) appliedRating(courseID string) (model.Rating, bool) {
	ma.mu.RLock()
	defer ma.mu.RUnlock()
	r, ok := ma.applied[courseID]
	return r, ok
}

func (ma *mockApplier) appliedCount() int {
	ma.mu.RLock()
	defer ma.mu.RUnlock()
	return len(ma.applied)
}

func TestInMemoryWorker(t *testing.T) {
	convey.Convey("Given a new InMemoryWorker", t, func() {
		// Initialize logging for tests
		_ = logging.Init()

		mq := newMockQueue()
		applier := newMockApplier()

		convey.Convey("When creating a worker with default options", func() {
			w := worker.NewInMemoryWorker(mq, applier)

			convey.Convey("Then it should be created successfully", func() {
				convey.So(w, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When creating a worker with custom options", func() {
			w := worker.NewInMemoryWorker(mq, applier,
				worker.WithName("custom-worker"),
			)

			convey.Convey("Then it should be created successfully", func() {
				convey.So(w, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When running a worker", func() {
			w := worker.NewInMemoryWorker(mq, applier)
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			go w.Run(ctx)

			convey.Convey("And when processing events", func() {
				mq.addEvent(model.FeedbackEvent{
					EventID:  "event-1",
					UserID:   "user-1",
					CourseID: "course-1",
					Rating:   model.RatingUp,
				})

				time.Sleep(50 * time.Millisecond)

				convey.Convey("Then it should persist the rating", func() {
					rating, ok := applier.appliedRating("course-1")
					convey.So(ok, convey.ShouldBeTrue)
					convey.So(rating, convey.ShouldEqual, model.RatingUp)
				})
			})

			convey.Convey("And when the apply fails", func() {
				applier.setError("course-bad", errors.New("store unavailable"))
				mq.addEvent(model.FeedbackEvent{
					EventID:  "event-2",
					UserID:   "user-1",
					CourseID: "course-bad",
					Rating:   model.RatingDown,
				})

				time.Sleep(50 * time.Millisecond)

				convey.Convey("Then nothing is persisted and the worker keeps running", func() {
					_, ok := applier.appliedRating("course-bad")
					convey.So(ok, convey.ShouldBeFalse)

					mq.addEvent(model.FeedbackEvent{
						EventID:  "event-3",
						UserID:   "user-1",
						CourseID: "course-2",
						Rating:   model.RatingUp,
					})
					time.Sleep(50 * time.Millisecond)

					_, ok = applier.appliedRating("course-2")
					convey.So(ok, convey.ShouldBeTrue)
				})
			})
		})

		convey.Convey("When shutting down a worker", func() {
			w := worker.NewInMemoryWorker(mq, applier)
			ctx := context.Background()

			go w.Run(ctx)
			time.Sleep(10 * time.Millisecond)

			convey.Convey("Then shutdown completes before the deadline", func() {
				shutdownCtx, cancel := context.WithTimeout(ctx, time.Second)
				defer cancel()
				err := w.Shutdown(shutdownCtx)
				convey.So(err, convey.ShouldBeNil)
			})
		})
	})
}

func TestPool(t *testing.T) {
	convey.Convey("Given a worker pool", t, func() {
		_ = logging.Init()

		mq := newMockQueue()
		applier := newMockApplier()

		convey.Convey("When creating a pool with an explicit worker count", func() {
			pool := worker.NewPool(4, mq, applier)

			convey.Convey("Then it holds that many workers", func() {
				convey.So(pool, convey.ShouldNotBeNil)
				convey.So(pool.Size(), convey.ShouldEqual, 4)
			})
		})

		convey.Convey("When creating a pool with a non-positive count", func() {
			pool := worker.NewPool(0, mq, applier)

			convey.Convey("Then it falls back to a CPU-derived size", func() {
				convey.So(pool.Size(), convey.ShouldBeGreaterThan, 0)
			})
		})

		convey.Convey("When the pool processes events from a shared queue", func() {
			pool := worker.NewPool(4, mq, applier)
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			pool.Start(ctx)

			for i := 0; i < 10; i++ {
				mq.addEvent(model.FeedbackEvent{
					EventID:  fmt.Sprintf("event-%d", i),
					UserID:   "user-1",
					CourseID: fmt.Sprintf("course-%d", i),
					Rating:   model.RatingUp,
				})
			}

			time.Sleep(100 * time.Millisecond)

			convey.Convey("Then every event is persisted exactly once", func() {
				convey.So(applier.appliedCount(), convey.ShouldEqual, 10)
			})

			convey.Convey("And shutdown drains and closes the queue", func() {
				err := pool.Shutdown(ctx)
				convey.So(err, convey.ShouldBeNil)
			})
		})
	})
}
