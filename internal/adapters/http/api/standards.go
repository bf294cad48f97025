// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"sort"

	"github.com/MohamedMohamady125/projectusa/internal/domain/course"
	"github.com/MohamedMohamady125/projectusa/internal/domain/standards"
	"github.com/MohamedMohamady125/projectusa/pkg/swimtime"
)

// StandardsDependencies defines the interface for standards lookups.
type StandardsDependencies interface {
	Standard(division standards.Division, gender standards.Gender, event course.Event) (swimtime.Time, error)
	Standards(division standards.Division, gender standards.Gender) (map[string]swimtime.Time, error)
}

// StandardsHandler handles standards lookup requests.
type StandardsHandler struct {
	deps StandardsDependencies
}

// NewStandardsHandler creates a new standards handler.
func NewStandardsHandler(deps StandardsDependencies) *StandardsHandler {
	return &StandardsHandler{deps: deps}
}

type standardEntry struct {
	Event   string  `json:"event"`
	Time    string  `json:"time"`
	Seconds float64 `json:"seconds"`
}

type standardsResponse struct {
	Division  string          `json:"division"`
	Gender    string          `json:"gender"`
	Course    string          `json:"course"`
	Standards []standardEntry `json:"standards"`
}

// HandleGetStandards handles GET /standards?division=D&gender=G[&event=E]
// requests. Without an event it lists every tabulated standard for the
// division/gender pair.
func (h *StandardsHandler) HandleGetStandards(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_standards"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	division, err := standards.ParseDivision(r.URL.Query().Get("division"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	gender, err := standards.ParseGender(r.URL.Query().Get("gender"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	resp := standardsResponse{
		Division: string(division),
		Gender:   string(gender),
		Course:   string(standards.StandardsCourse),
	}

	if rawEvent := r.URL.Query().Get("event"); rawEvent != "" {
		event, err := course.ParseEvent(rawEvent)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		t, err := h.deps.Standard(division, gender, event)
		if err != nil {
			writeDomainError(w, op, err)
			return
		}
		resp.Standards = []standardEntry{{Event: event.String(), Time: t.String(), Seconds: t.Seconds()}}
		writeJSON(w, http.StatusOK, resp)
		return
	}

	sheet, err := h.deps.Standards(division, gender)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	for event, t := range sheet {
		resp.Standards = append(resp.Standards, standardEntry{Event: event, Time: t.String(), Seconds: t.Seconds()})
	}
	sort.Slice(resp.Standards, func(i, j int) bool {
		return resp.Standards[i].Event < resp.Standards[j].Event
	})
	writeJSON(w, http.StatusOK, resp)
}
