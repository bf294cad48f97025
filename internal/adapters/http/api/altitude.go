// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MohamedMohamady125/projectusa/internal/domain/altitude"
	"github.com/MohamedMohamady125/projectusa/internal/domain/model"
)

// AltitudeDependencies defines the interface for altitude correction.
type AltitudeDependencies interface {
	AdjustAltitude(r model.SwimResult, elevationMeters float64) (model.SwimResult, error)
}

// AltitudeHandler handles altitude adjustment requests.
type AltitudeHandler struct {
	deps AltitudeDependencies
}

// NewAltitudeHandler creates a new altitude handler.
func NewAltitudeHandler(deps AltitudeDependencies) *AltitudeHandler {
	return &AltitudeHandler{deps: deps}
}

// altitudeRequest mirrors the OpenAPI schema for POST /altitude.
type altitudeRequest struct {
	swimRequest
	ElevationMeters float64 `json:"elevation_m"`
}

// HandleAltitude handles POST /altitude requests.
func (h *AltitudeHandler) HandleAltitude(w http.ResponseWriter, r *http.Request) {
	const op = "api.altitude"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req altitudeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	result, err := req.toResult()
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	adjusted, err := h.deps.AdjustAltitude(result, req.ElevationMeters)
	if err != nil {
		if errors.Is(err, altitude.ErrInvalidElevation) {
			writeError(w, http.StatusBadRequest, "invalid_elevation", Wrap(op, err))
			return
		}
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, swimResponse{
		Event:   adjusted.Event.String(),
		Course:  string(adjusted.Course),
		Time:    adjusted.Time.String(),
		Seconds: adjusted.Time.Seconds(),
	})
}
