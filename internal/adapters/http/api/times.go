// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/MohamedMohamady125/projectusa/internal/domain/model"
)

// TimesDependencies defines the interface for submission ingest.
type TimesDependencies interface {
	SeenAndRecord(ctx context.Context, id string) bool
	Unrecord(ctx context.Context, id string)

	// Enqueue pushes a submission for async ranking. Returns false on
	// backpressure.
	Enqueue(ctx context.Context, sub model.Submission) bool
}

// TimesHandler handles swim time submissions.
type TimesHandler struct {
	deps TimesDependencies
}

// NewTimesHandler creates a new times handler.
func NewTimesHandler(deps TimesDependencies) *TimesHandler {
	return &TimesHandler{deps: deps}
}

// timeRequest mirrors the OpenAPI schema for POST /times.
type timeRequest struct {
	SubmissionID string `json:"submission_id"`
	SwimmerID    string `json:"swimmer_id"`
	swimRequest
	MeetName string `json:"meet_name,omitempty"`
	MeetDate string `json:"meet_date,omitempty"`
}

func (t timeRequest) validate() error {
	switch {
	case strings.TrimSpace(t.SubmissionID) == "":
		return errors.New("missing submission_id")
	case strings.TrimSpace(t.SwimmerID) == "":
		return errors.New("missing swimmer_id")
	}
	if err := t.swimRequest.validate(); err != nil {
		return err
	}
	if t.MeetDate != "" {
		if _, err := time.Parse(time.RFC3339, t.MeetDate); err != nil {
			return errors.New("invalid meet_date; must be RFC3339")
		}
	}
	return nil
}

func (t timeRequest) toSubmission() (model.Submission, error) {
	if err := t.validate(); err != nil {
		return model.Submission{}, err
	}
	result, err := t.swimRequest.toResult()
	if err != nil {
		return model.Submission{}, err
	}
	sub := model.Submission{
		SubmissionID: t.SubmissionID,
		SwimmerID:    t.SwimmerID,
		Result:       result,
		MeetName:     t.MeetName,
	}
	if t.MeetDate != "" {
		sub.MeetDate, _ = time.Parse(time.RFC3339, t.MeetDate)
	}
	return sub, nil
}

// HandlePostTime handles POST /times requests.
func (h *TimesHandler) HandlePostTime(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_time"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req timeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	sub, err := req.toSubmission()
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	// Idempotency check - mark as seen first
	if h.deps.SeenAndRecord(r.Context(), sub.SubmissionID) {
		writeJSON(w, http.StatusOK, ackResponse{Status: "duplicate", Duplicate: true})
		return
	}

	// Try to enqueue for async ranking
	if ok := h.deps.Enqueue(r.Context(), sub); !ok {
		// Rollback the "seen" status since enqueue failed
		h.deps.Unrecord(r.Context(), sub.SubmissionID)
		writeError(w, http.StatusTooManyRequests, "backpressure", NewKind(op, ErrBackpressure))
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted", Duplicate: false})
}
