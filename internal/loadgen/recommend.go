package loadgen

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Query dimension values accepted by the service.
var (
	skillLevels        = []string{"Beginner", "Intermediate", "Advanced"}
	timeAvailabilities = []string{"Short Term", "Long Term"}
	courseTypes        = []string{"Free", "Paid", "Both"}

	// Categories probed during catalog harvesting. Unknown categories
	// come back empty, so a superset is harmless.
	probeCategories = []string{
		"Programming", "Data Science", "Web Development", "Machine Learning",
		"Design", "Cloud Computing", "Business", "Security", "Marketing",
	}
)

// harvestCatalog discovers courses by issuing broad recommendation
// queries across the probe categories.
func harvestCatalog(ctx context.Context, config *Config, stats *Stats) ([]Course, error) {
	log.Printf("🔎 Harvesting catalog via recommendation queries...")

	client := newHTTPClient(config.Timeout)
	seen := make(map[string]Course)

	for _, category := range probeCategories {
		for _, skill := range skillLevels {
			query := Query{
				Preferences: Preferences{
					Category:         category,
					SkillLevel:       skill,
					TimeAvailability: "Long Term",
					CourseType:       "Both",
				},
				Limit: config.TopN,
			}

			resp, err := issueQuery(ctx, client, config.BaseURL, query)
			if err != nil {
				if config.Verbose {
					log.Printf("⚠️  Harvest query failed for %s/%s: %v", category, skill, err)
				}
				continue
			}
			for _, rec := range resp.Recommendations {
				seen[rec.Course.ID] = rec.Course
			}
		}
	}

	courses := make([]Course, 0, len(seen))
	for _, c := range seen {
		courses = append(courses, c)
	}
	sort.Slice(courses, func(i, j int) bool { return courses[i].ID < courses[j].ID })

	if len(courses) == 0 {
		return nil, fmt.Errorf("harvesting discovered no courses; is the catalog loaded?")
	}

	stats.CoursesDiscovered = len(courses)
	log.Printf("✅ Discovered %d courses", len(courses))
	return courses, nil
}

// buildQueries constructs a randomized query set over the harvested
// catalog's categories.
func buildQueries(config *Config, courses []Course) []Query {
	// Collect the categories that actually exist so most queries hit
	// a populated slice of the catalog.
	catSet := make(map[string]struct{})
	for _, c := range courses {
		catSet[c.Category] = struct{}{}
	}
	categories := make([]string, 0, len(catSet))
	for cat := range catSet {
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	queries := make([]Query, config.NumQueries)
	for i := range queries {
		queries[i] = Query{
			Preferences: Preferences{
				Category:         categories[getRandomIndex(len(categories))],
				Interest:         pickInterest(courses),
				SkillLevel:       skillLevels[getRandomIndex(len(skillLevels))],
				TimeAvailability: timeAvailabilities[getRandomIndex(len(timeAvailabilities))],
				CourseType:       courseTypes[getRandomIndex(len(courseTypes))],
			},
			Limit: config.TopN,
		}
	}
	return queries
}

// pickInterest draws a word from a random course title so the interest
// term overlaps the catalog vocabulary.
func pickInterest(courses []Course) string {
	title := courses[getRandomIndex(len(courses))].Title
	words := strings.Fields(title)
	if len(words) == 0 {
		return ""
	}
	return words[getRandomIndex(len(words))]
}

// retrieveRecommendations issues the query set concurrently and
// collects the responses.
func retrieveRecommendations(ctx context.Context, config *Config, queries []Query, stats *Stats) ([]QueryResult, error) {
	log.Printf("🏆 Issuing %d recommendation queries with %d workers...", len(queries), config.Workers)

	client := newHTTPClient(config.Timeout)

	results := make([]QueryResult, len(queries))
	valid := make([]bool, len(queries))
	var (
		retrieved int64
		failed    int64
	)

	// Progress reporting
	var lastReport time.Time
	reportInterval := 1 * time.Second

	// Create worker pool
	queryChan := make(chan int, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	// Start workers
	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()

			for index := range queryChan {
				select {
				case <-ctx.Done():
					return
				default:
					resp, err := issueQuery(ctx, client, config.BaseURL, queries[index])

					if err != nil {
						atomic.AddInt64(&failed, 1)
						if config.Verbose {
							log.Printf("⚠️  Query %d failed: %v", index, err)
						}
					} else {
						results[index] = QueryResult{Query: queries[index], Response: resp}
						valid[index] = true
						atomic.AddInt64(&retrieved, 1)
					}

					// Progress reporting
					if time.Since(lastReport) >= reportInterval {
						lastReport = time.Now()
						total := atomic.LoadInt64(&retrieved) + atomic.LoadInt64(&failed)
						log.Printf("📊 Query progress: %d/%d issued (success: %d, failed: %d)",
							total, len(queries), atomic.LoadInt64(&retrieved), atomic.LoadInt64(&failed))
					}
				}
			}
		}(i)
	}

	// Send query indices to workers
	go func() {
		defer close(queryChan)
		for i := range queries {
			select {
			case <-ctx.Done():
				return
			case queryChan <- i:
			}
		}
	}()

	// Wait for all workers to complete
	wg.Wait()

	// Filter out failed retrievals
	validResults := make([]QueryResult, 0, len(results))
	for i, ok := range valid {
		if ok {
			validResults = append(validResults, results[i])
		}
	}

	// Update stats
	stats.QueriesIssued += len(queries)
	stats.QueriesSucceeded += len(validResults)
	stats.QueriesFailed += int(atomic.LoadInt64(&failed))

	log.Printf(`✅ Recommendation retrieval completed:
   Succeeded: %d
   Failed: %d
`, len(validResults), int(atomic.LoadInt64(&failed)))

	return validResults, nil
}

// issueQuery posts a single recommendation query.
func issueQuery(ctx context.Context, client *HTTPClient, baseURL string, query Query) (Response, error) {
	resp, err := client.Post(ctx, baseURL+"/recommendations", query)
	if err != nil {
		return Response{}, fmt.Errorf("request failed: %w", err)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return Response{}, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != StatusOK {
		return Response{}, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	var out Response
	if err := unmarshalJSON(body, &out); err != nil {
		return Response{}, fmt.Errorf("failed to parse response: %w", err)
	}
	return out, nil
}

// getCourseCount fetches the catalog size from the service.
func getCourseCount(ctx context.Context, config *Config) (int, error) {
	client := newHTTPClient(config.Timeout)

	resp, err := client.Get(ctx, config.BaseURL+"/courses/count")
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return 0, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != StatusOK {
		return 0, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	var payload struct {
		Count int `json:"count"`
	}
	if err := unmarshalJSON(body, &payload); err != nil {
		return 0, fmt.Errorf("failed to parse response: %w", err)
	}
	return payload.Count, nil
}
