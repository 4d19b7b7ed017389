package loadgen

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"
)

// Rating distribution constants.
const (
	upvoteProbability = 0.7
	usersPerEvents    = 10 // one simulated user per this many events
)

// getRandomFloat returns a uniformly distributed float64 in [0, 1).
func getRandomFloat() float64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0.5
	}
	return float64(binary.BigEndian.Uint64(buf[:])>>11) / (1 << 53)
}

// getRandomIndex returns a uniformly distributed index in [0, n).
func getRandomIndex(n int) int {
	if n <= 0 {
		return 0
	}
	return int(getRandomFloat() * float64(n))
}

// generateEvents generates feedback events concurrently against the
// harvested catalog.
func generateEvents(ctx context.Context, config *Config, courses []Course, stats *Stats) ([]Event, error) {
	if len(courses) == 0 {
		return nil, fmt.Errorf("no courses to generate events against")
	}

	log.Printf("🎲 Generating %d feedback events over %d courses with %d workers...",
		config.NumEvents, len(courses), config.Workers)

	// Build a shared pool of simulated users so most users rate
	// several courses and feedback histories accumulate.
	numUsers := config.NumEvents / usersPerEvents
	if numUsers < 1 {
		numUsers = 1
	}
	users := make([]string, numUsers)
	for i := range users {
		users[i] = uuid.NewString()
	}

	events := make([]Event, config.NumEvents)
	var wg sync.WaitGroup

	// Split the event range across workers
	perWorker := config.NumEvents / config.Workers
	if perWorker < 1 {
		perWorker = 1
	}

	for start := 0; start < config.NumEvents; start += perWorker {
		end := minInt(start+perWorker, config.NumEvents)

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				select {
				case <-ctx.Done():
					return
				default:
					events[i] = generateSingleEvent(users, courses)
				}
			}
		}(start, end)
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("event generation cancelled: %w", err)
	}

	stats.EventsGenerated = len(events)
	log.Printf("✅ Generated %d events", len(events))
	return events, nil
}

// generateSingleEvent creates one feedback event with a random user,
// course and rating.
func generateSingleEvent(users []string, courses []Course) Event {
	rating := 1
	if getRandomFloat() >= upvoteProbability {
		rating = -1
	}

	return Event{
		EventID:  uuid.NewString(),
		UserID:   users[getRandomIndex(len(users))],
		CourseID: courses[getRandomIndex(len(courses))].ID,
		Rating:   rating,
	}
}

// minInt returns the smaller of two ints.
func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
