// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/courserec/internal/domain/dedupe"
	"github.com/okian/courserec/internal/domain/model"
	"github.com/okian/courserec/internal/domain/ranking"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	dedupe.Deduper

	// Enqueue pushes a feedback event for async processing.
	// Returns false on backpressure.
	Enqueue(ctx context.Context, e model.FeedbackEvent) bool

	// Recommend runs the full matching and ranking pass for a query.
	Recommend(ctx context.Context, q model.PreferenceQuery, limit int) (ranking.Outcome, error)

	// CourseCount returns the size of the current catalog snapshot.
	CourseCount(ctx context.Context) int
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler          *HealthHandler
	statsHandler           *StatsHandler
	recommendationsHandler *RecommendationsHandler
	feedbackHandler        *FeedbackHandler
	coursesHandler         *CoursesHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxLimit int) *Server {
	return &Server{
		healthHandler:          NewHealthHandler(),
		statsHandler:           NewStatsHandler(statsProvider),
		recommendationsHandler: NewRecommendationsHandler(deps, maxLimit),
		feedbackHandler:        NewFeedbackHandler(deps),
		coursesHandler:         NewCoursesHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/recommendations", MetricsMiddleware(s.recommendationsHandler.HandlePostRecommendations, "recommendations"))
	mux.HandleFunc("/feedback", MetricsMiddleware(s.feedbackHandler.HandlePostFeedback, "feedback"))
	mux.HandleFunc("/courses/count", MetricsMiddleware(s.coursesHandler.HandleGetCount, "courses_count"))
}

// preferencePayload mirrors the OpenAPI schema for the preferences object.
type preferencePayload struct {
	Category         string `json:"category"`
	Interest         string `json:"interest,omitempty"`
	SkillLevel       string `json:"skill_level"`
	TimeAvailability string `json:"time_availability"`
	CourseType       string `json:"course_type"`
}

// recommendationRequest mirrors the OpenAPI schema for POST /recommendations.
type recommendationRequest struct {
	UserID      string            `json:"user_id,omitempty"`
	Preferences preferencePayload `json:"preferences"`
	Limit       int               `json:"limit,omitempty"`
}

func (r recommendationRequest) toQuery() (model.PreferenceQuery, error) {
	p := r.Preferences
	if strings.TrimSpace(p.Category) == "" {
		return model.PreferenceQuery{}, errors.New("missing preferences.category")
	}
	skill, ok := model.ParseSkillLevel(p.SkillLevel)
	if !ok {
		return model.PreferenceQuery{}, errors.New("invalid preferences.skill_level; must be Beginner, Intermediate or Advanced")
	}
	duration, ok := model.ParseDurationBucket(p.TimeAvailability)
	if !ok {
		return model.PreferenceQuery{}, errors.New("invalid preferences.time_availability; must be Short Term or Long Term")
	}
	pricing, ok := model.ParsePricingPreference(p.CourseType)
	if !ok {
		return model.PreferenceQuery{}, errors.New("invalid preferences.course_type; must be Free, Paid or Both")
	}
	return model.PreferenceQuery{
		UserID:   strings.TrimSpace(r.UserID),
		Category: strings.TrimSpace(p.Category),
		Skill:    skill,
		Duration: duration,
		Pricing:  pricing,
		Interest: strings.TrimSpace(p.Interest),
	}, nil
}

// coursePayload mirrors the catalog row shape of the response.
type coursePayload struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Platform    string `json:"platform"`
	Duration    string `json:"duration"`
	SkillLevel  string `json:"skill_level"`
	Type        string `json:"type"`
	Category    string `json:"category"`
	URL         string `json:"url"`
}

// recommendationPayload is one ranked course in the response.
type recommendationPayload struct {
	Course coursePayload `json:"course"`
	Score  float64       `json:"score"`
	Rank   int           `json:"rank"`
}

// recommendationsResponse mirrors the top-level response schema.
type recommendationsResponse struct {
	Recommendations []recommendationPayload `json:"recommendations"`
	TotalCount      int                     `json:"total_count"`
	RelaxedFilters  []string                `json:"relaxed_filters,omitempty"`
}

func toCoursePayload(c model.Course) coursePayload {
	return coursePayload{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Platform:    c.Platform,
		Duration:    c.Duration,
		SkillLevel:  string(c.SkillLevel),
		Type:        string(c.Pricing),
		Category:    c.Category,
		URL:         c.URL,
	}
}

// feedbackRequest mirrors the OpenAPI schema for POST /feedback.
type feedbackRequest struct {
	EventID  string `json:"event_id,omitempty"`
	UserID   string `json:"user_id"`
	CourseID string `json:"course_id"`
	Rating   int    `json:"rating"`
}

func (f feedbackRequest) validate() error {
	switch {
	case strings.TrimSpace(f.UserID) == "":
		return errors.New("missing user_id")
	case strings.TrimSpace(f.CourseID) == "":
		return errors.New("missing course_id")
	case f.Rating != int(model.RatingUp) && f.Rating != int(model.RatingDown):
		return errors.New("invalid rating; must be 1 or -1")
	}
	return nil
}

type ackResponse struct {
	Status    string `json:"status"`
	EventID   string `json:"event_id"`
	Duplicate bool   `json:"duplicate"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
