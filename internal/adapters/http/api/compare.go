// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/MohamedMohamady125/projectusa/internal/domain/model"
	"github.com/MohamedMohamady125/projectusa/internal/domain/standards"
)

// CompareDependencies defines the interface for standards comparison.
type CompareDependencies interface {
	Compare(r model.SwimResult, division standards.Division, gender standards.Gender) (standards.Comparison, error)
}

// CompareHandler handles standards comparison requests.
type CompareHandler struct {
	deps CompareDependencies
}

// NewCompareHandler creates a new compare handler.
func NewCompareHandler(deps CompareDependencies) *CompareHandler {
	return &CompareHandler{deps: deps}
}

// compareRequest mirrors the OpenAPI schema for POST /compare.
type compareRequest struct {
	swimRequest
	Division string `json:"division"`
	Gender   string `json:"gender"`
}

type compareResponse struct {
	Met       bool    `json:"met"`
	Delta     string  `json:"delta"`
	DeltaSec  float64 `json:"delta_seconds"`
	Standard  string  `json:"standard"`
	Converted string  `json:"converted"`
	Event     string  `json:"event"`
	Division  string  `json:"division"`
	Gender    string  `json:"gender"`
}

// HandleCompare handles POST /compare requests.
func (h *CompareHandler) HandleCompare(w http.ResponseWriter, r *http.Request) {
	const op = "api.compare"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req compareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	result, err := req.toResult()
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	division, err := standards.ParseDivision(req.Division)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	gender, err := standards.ParseGender(req.Gender)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	cmp, err := h.deps.Compare(result, division, gender)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, compareResponse{
		Met:       cmp.Met,
		Delta:     cmp.Delta.String(),
		DeltaSec:  cmp.Delta.Seconds(),
		Standard:  cmp.Standard.String(),
		Converted: cmp.Converted.String(),
		Event:     cmp.Event.String(),
		Division:  string(cmp.Division),
		Gender:    string(cmp.Gender),
	})
}
