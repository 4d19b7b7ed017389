// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/okian/courserec/internal/domain/model"
	"github.com/okian/courserec/internal/domain/ranking"
	"github.com/okian/courserec/pkg/metrics"
)

// RecommendationDependencies defines the interface for recommendation queries.
type RecommendationDependencies interface {
	Recommend(ctx context.Context, q model.PreferenceQuery, limit int) (ranking.Outcome, error)
}

// RecommendationsHandler handles recommendation requests.
type RecommendationsHandler struct {
	deps     RecommendationDependencies
	maxLimit int
}

// NewRecommendationsHandler creates a new recommendations handler.
func NewRecommendationsHandler(deps RecommendationDependencies, maxLimit int) *RecommendationsHandler {
	return &RecommendationsHandler{
		deps:     deps,
		maxLimit: maxLimit,
	}
}

// HandlePostRecommendations handles POST /recommendations requests.
func (h *RecommendationsHandler) HandlePostRecommendations(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_recommendations"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	metrics.RecordRecommendationRequest()

	var req recommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	q, err := req.toQuery()
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if req.Limit < 0 || req.Limit > h.maxLimit {
		writeError(w, http.StatusBadRequest, "limit_exceeded", NewKind(op, ErrBadRequest))
		return
	}

	start := time.Now()
	outcome, err := h.deps.Recommend(r.Context(), q, req.Limit)
	metrics.RecordRankingLatency(float64(time.Since(start).Milliseconds()))

	if err != nil {
		// An unloaded catalog behaves like a match against nothing.
		if errors.Is(err, ranking.ErrEmptyCatalog) {
			metrics.RecordEmptyResult()
			writeJSON(w, http.StatusOK, recommendationsResponse{
				Recommendations: []recommendationPayload{},
				TotalCount:      0,
			})
			return
		}
		if errors.Is(err, model.ErrInvalidPreference) {
			writeError(w, http.StatusBadRequest, "bad_request", Wrap(op, err))
			return
		}
		metrics.RecordRankingError()
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}

	metrics.RecordRelaxationDepth(outcome.Relaxation.Depth())
	metrics.RecordRecommendationsServed(len(outcome.Results))
	if len(outcome.Results) == 0 {
		metrics.RecordEmptyResult()
	}

	resp := recommendationsResponse{
		Recommendations: make([]recommendationPayload, 0, len(outcome.Results)),
		TotalCount:      len(outcome.Results),
		RelaxedFilters:  outcome.Relaxation.Dropped(),
	}
	for _, res := range outcome.Results {
		resp.Recommendations = append(resp.Recommendations, recommendationPayload{
			Course: toCoursePayload(res.Course),
			Score:  res.Score,
			Rank:   res.Rank,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}
