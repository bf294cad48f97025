// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MohamedMohamady125/projectusa/internal/domain/convert"
	"github.com/MohamedMohamady125/projectusa/internal/domain/course"
	"github.com/MohamedMohamady125/projectusa/internal/domain/model"
)

// ConvertDependencies defines the interface for conversion operations.
type ConvertDependencies interface {
	Convert(r model.SwimResult, target course.Course) (convert.Result, error)
	ConvertMany(results []model.SwimResult, target course.Course) []convert.Outcome
}

// ConvertHandler handles course conversion requests.
type ConvertHandler struct {
	deps         ConvertDependencies
	maxBatchSize int
}

// NewConvertHandler creates a new convert handler.
func NewConvertHandler(deps ConvertDependencies, maxBatchSize int) *ConvertHandler {
	return &ConvertHandler{deps: deps, maxBatchSize: maxBatchSize}
}

// convertRequest mirrors the OpenAPI schema for POST /convert.
type convertRequest struct {
	swimRequest
	TargetCourse string `json:"target_course"`
}

// HandleConvert handles POST /convert requests.
func (h *ConvertHandler) HandleConvert(w http.ResponseWriter, r *http.Request) {
	const op = "api.convert"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req convertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	result, target, err := parseConvertRequest(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	converted, err := h.deps.Convert(result, target)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, toSwimResponse(converted))
}

// batchRequest mirrors the OpenAPI schema for POST /convert/batch.
type batchRequest struct {
	TargetCourse string        `json:"target_course"`
	Results      []swimRequest `json:"results"`
}

// batchSlot carries the per-slot outcome; exactly one of the result fields
// or Error is set.
type batchSlot struct {
	OK      bool    `json:"ok"`
	Event   string  `json:"event,omitempty"`
	Course  string  `json:"course,omitempty"`
	Time    string  `json:"time,omitempty"`
	Seconds float64 `json:"seconds,omitempty"`
	Factor  float64 `json:"factor,omitempty"`
	Error   string  `json:"error,omitempty"`
}

type batchResponse struct {
	Results []batchSlot `json:"results"`
}

// HandleConvertBatch handles POST /convert/batch requests. Bad slots do not
// abort the batch; each slot reports its own outcome in input order.
func (h *ConvertHandler) HandleConvertBatch(w http.ResponseWriter, r *http.Request) {
	const op = "api.convert_batch"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if len(req.Results) == 0 {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	if len(req.Results) > h.maxBatchSize {
		writeError(w, http.StatusBadRequest, "batch_too_large",
			WrapKind(op, ErrBadRequest, fmt.Errorf("batch of %d exceeds limit %d", len(req.Results), h.maxBatchSize)))
		return
	}
	target, err := course.ParseCourse(req.TargetCourse)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	// Slots that fail to parse never reach the converter; their outcome is
	// decided here so the slot count always matches the input count.
	slots := make([]batchSlot, len(req.Results))
	results := make([]model.SwimResult, 0, len(req.Results))
	indexes := make([]int, 0, len(req.Results))
	for i, raw := range req.Results {
		parsed, err := raw.toResult()
		if err != nil {
			slots[i] = batchSlot{OK: false, Error: err.Error()}
			continue
		}
		results = append(results, parsed)
		indexes = append(indexes, i)
	}

	outcomes := h.deps.ConvertMany(results, target)
	for j, out := range outcomes {
		i := indexes[j]
		if out.Err != nil {
			slots[i] = batchSlot{OK: false, Error: out.Err.Error()}
			continue
		}
		resp := toSwimResponse(out.Result)
		slots[i] = batchSlot{
			OK:      true,
			Event:   resp.Event,
			Course:  resp.Course,
			Time:    resp.Time,
			Seconds: resp.Seconds,
			Factor:  resp.Factor,
		}
	}
	writeJSON(w, http.StatusOK, batchResponse{Results: slots})
}

func parseConvertRequest(req convertRequest) (model.SwimResult, course.Course, error) {
	result, err := req.toResult()
	if err != nil {
		return model.SwimResult{}, "", err
	}
	target, err := course.ParseCourse(req.TargetCourse)
	if err != nil {
		return model.SwimResult{}, "", err
	}
	return result, target, nil
}
