// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
)

// CourseDependencies defines the interface for catalog queries.
type CourseDependencies interface {
	CourseCount(ctx context.Context) int
}

// CoursesHandler handles catalog queries.
type CoursesHandler struct {
	deps CourseDependencies
}

// NewCoursesHandler creates a new courses handler.
func NewCoursesHandler(deps CourseDependencies) *CoursesHandler {
	return &CoursesHandler{deps: deps}
}

type countResponse struct {
	Count int `json:"count"`
}

// HandleGetCount handles GET /courses/count requests.
func (h *CoursesHandler) HandleGetCount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, countResponse{Count: h.deps.CourseCount(r.Context())})
}
