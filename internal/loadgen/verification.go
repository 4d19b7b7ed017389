package loadgen

import (
	"context"
	"fmt"
	"log"
)

// relaxationOrder is the fixed order in which the service drops
// constraints; relaxed_filters must be a prefix-consistent subset.
var relaxationOrder = []string{"duration", "pricing", "skill_level"}

// verifyResults checks every recommendation response for ordering and
// shape violations.
func verifyResults(ctx context.Context, config *Config, results []QueryResult, stats *Stats) error {
	log.Println("🔍 Verifying recommendation responses...")

	if len(results) == 0 {
		return fmt.Errorf("no responses to verify")
	}

	violations := 0
	for i, r := range results {
		for _, problem := range checkResponse(r.Query, r.Response) {
			violations++
			log.Printf("⚠️  Response %d (%s/%s): %s",
				i, r.Query.Preferences.Category, r.Query.Preferences.SkillLevel, problem)
		}
	}

	stats.ViolationsFound += violations
	if violations > 0 {
		return fmt.Errorf("found %d response violations", violations)
	}

	log.Printf("✅ All %d responses verified", len(results))
	return nil
}

// checkResponse returns a description of every invariant the response
// breaks.
func checkResponse(query Query, resp Response) []string {
	var problems []string

	if resp.TotalCount != len(resp.Recommendations) {
		problems = append(problems, fmt.Sprintf("total_count %d does not match %d recommendations",
			resp.TotalCount, len(resp.Recommendations)))
	}

	if query.Limit > 0 && len(resp.Recommendations) > query.Limit {
		problems = append(problems, fmt.Sprintf("got %d recommendations for limit %d",
			len(resp.Recommendations), query.Limit))
	}

	for i, rec := range resp.Recommendations {
		if rec.Rank != i+1 {
			problems = append(problems, fmt.Sprintf("rank %d at position %d, expected %d",
				rec.Rank, i, i+1))
		}
		if rec.Score < 0 || rec.Score > 1 {
			problems = append(problems, fmt.Sprintf("score %.6f for %s outside [0, 1]",
				rec.Score, rec.Course.ID))
		}
		if i > 0 && rec.Score > resp.Recommendations[i-1].Score {
			problems = append(problems, fmt.Sprintf("score increases from %.6f to %.6f at position %d",
				resp.Recommendations[i-1].Score, rec.Score, i))
		}
	}

	if err := checkRelaxedFilters(resp.RelaxedFilters); err != nil {
		problems = append(problems, err.Error())
	}

	return problems
}

// checkRelaxedFilters verifies the relaxed filter list follows the
// fixed relaxation order.
func checkRelaxedFilters(relaxed []string) error {
	if len(relaxed) == 0 {
		return nil
	}

	pos := 0
	for _, name := range relaxed {
		found := false
		for ; pos < len(relaxationOrder); pos++ {
			if relaxationOrder[pos] == name {
				found = true
				pos++
				break
			}
		}
		if !found {
			return fmt.Errorf("relaxed_filters %v violates relaxation order %v", relaxed, relaxationOrder)
		}
	}
	return nil
}

// verifyDeterminism re-issues a sample of queries and checks the
// responses match the originals entry for entry.
func verifyDeterminism(ctx context.Context, config *Config, results []QueryResult, stats *Stats) error {
	sample := minInt(DeterminismSamples, len(results))
	if sample == 0 {
		return nil
	}

	log.Printf("🔁 Re-issuing %d queries to verify determinism...", sample)

	client := newHTTPClient(config.Timeout)
	mismatches := 0

	for i := 0; i < sample; i++ {
		original := results[i]
		replay, err := issueQuery(ctx, client, config.BaseURL, original.Query)
		if err != nil {
			return fmt.Errorf("replay query %d failed: %w", i, err)
		}

		if diff := diffResponses(original.Response, replay); diff != "" {
			mismatches++
			log.Printf("⚠️  Query %d is non-deterministic: %s", i, diff)
		}
	}

	stats.ViolationsFound += mismatches
	if mismatches > 0 {
		return fmt.Errorf("%d of %d replayed queries returned different results", mismatches, sample)
	}

	log.Printf("✅ Determinism verified over %d queries", sample)
	return nil
}

// diffResponses reports the first difference between two responses, or
// "" if they match.
func diffResponses(a, b Response) string {
	if len(a.Recommendations) != len(b.Recommendations) {
		return fmt.Sprintf("result count changed from %d to %d",
			len(a.Recommendations), len(b.Recommendations))
	}
	for i := range a.Recommendations {
		ra, rb := a.Recommendations[i], b.Recommendations[i]
		if ra.Course.ID != rb.Course.ID {
			return fmt.Sprintf("course at rank %d changed from %s to %s", i+1, ra.Course.ID, rb.Course.ID)
		}
		if ra.Score != rb.Score {
			return fmt.Sprintf("score for %s changed from %.6f to %.6f", ra.Course.ID, ra.Score, rb.Score)
		}
	}
	return ""
}

// verifyDuplicateAcks resubmits a sample of already-accepted events and
// expects every one to be acknowledged as a duplicate.
func verifyDuplicateAcks(ctx context.Context, config *Config, events []Event, stats *Stats) error {
	sample := minInt(DuplicateSampleSize, len(events))
	if sample == 0 {
		return nil
	}

	log.Printf("♻️  Resubmitting %d events to verify duplicate detection...", sample)

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/feedback"
	misses := 0

	for i := 0; i < sample; i++ {
		result := submitSingleEvent(ctx, client, url, events[i])
		if result != "duplicate" {
			misses++
			if config.Verbose {
				log.Printf("⚠️  Resubmitted event %s acknowledged as %q, expected duplicate",
					events[i].EventID, result)
			}
		}
	}

	stats.ViolationsFound += misses
	if misses > 0 {
		return fmt.Errorf("%d of %d resubmitted events were not flagged as duplicates", misses, sample)
	}

	log.Printf("✅ Duplicate detection verified over %d events", sample)
	return nil
}
