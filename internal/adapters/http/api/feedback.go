// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/okian/courserec/internal/domain/dedupe"
	"github.com/okian/courserec/internal/domain/model"
)

// FeedbackDependencies defines the interface for feedback ingestion.
type FeedbackDependencies interface {
	dedupe.Deduper
	Enqueue(ctx context.Context, e model.FeedbackEvent) bool
}

// FeedbackHandler handles feedback submissions.
type FeedbackHandler struct {
	deps FeedbackDependencies
}

// NewFeedbackHandler creates a new feedback handler.
func NewFeedbackHandler(deps FeedbackDependencies) *FeedbackHandler {
	return &FeedbackHandler{deps: deps}
}

// HandlePostFeedback handles POST /feedback requests.
func (h *FeedbackHandler) HandlePostFeedback(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_feedback"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	// Clients that don't track ids get a generated one; such events can
	// never be acknowledged as duplicates.
	eventID := strings.TrimSpace(req.EventID)
	if eventID == "" {
		eventID = uuid.NewString()
	}

	// Idempotency check - mark as seen first
	if h.deps.SeenAndRecord(r.Context(), eventID) {
		writeJSON(w, http.StatusOK, ackResponse{Status: "duplicate", EventID: eventID, Duplicate: true})
		return
	}

	event := model.FeedbackEvent{
		EventID:  eventID,
		UserID:   strings.TrimSpace(req.UserID),
		CourseID: strings.TrimSpace(req.CourseID),
		Rating:   model.Rating(req.Rating),
		TS:       time.Now().UTC(),
	}

	// Try to enqueue for async processing
	if ok := h.deps.Enqueue(r.Context(), event); !ok {
		// Rollback the "seen" status since enqueue failed
		h.deps.Unrecord(r.Context(), eventID)
		writeError(w, http.StatusTooManyRequests, "backpressure", NewKind(op, ErrBackpressure))
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted", EventID: eventID, Duplicate: false})
}
