// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/MohamedMohamady125/projectusa/internal/domain/convert"
	"github.com/MohamedMohamady125/projectusa/internal/domain/course"
	"github.com/MohamedMohamady125/projectusa/internal/domain/model"
	"github.com/MohamedMohamady125/projectusa/internal/domain/standards"
	"github.com/MohamedMohamady125/projectusa/internal/domain/types"
	"github.com/MohamedMohamady125/projectusa/pkg/swimtime"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	ConvertDependencies
	CompareDependencies
	AltitudeDependencies
	TimesDependencies
	RankingsDependencies
	RankDependencies
	StandardsDependencies
}

// Entry mirrors the read shape returned by ranking queries.
type Entry = types.Entry

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	convertHandler   *ConvertHandler
	compareHandler   *CompareHandler
	altitudeHandler  *AltitudeHandler
	timesHandler     *TimesHandler
	rankingsHandler  *RankingsHandler
	rankHandler      *RankHandler
	standardsHandler *StandardsHandler
}

// Config carries handler limits sourced from service configuration.
type Config struct {
	MaxRankingLimit int
	MaxBatchSize    int
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, cfg Config) *Server {
	if cfg.MaxRankingLimit <= 0 {
		cfg.MaxRankingLimit = 100
	}
	if cfg.MaxBatchSize <= 0 {
		cfg.MaxBatchSize = 500
	}
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		convertHandler:   NewConvertHandler(deps, cfg.MaxBatchSize),
		compareHandler:   NewCompareHandler(deps),
		altitudeHandler:  NewAltitudeHandler(deps),
		timesHandler:     NewTimesHandler(deps),
		rankingsHandler:  NewRankingsHandler(deps, cfg.MaxRankingLimit),
		rankHandler:      NewRankHandler(deps),
		standardsHandler: NewStandardsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/convert/batch", MetricsMiddleware(s.convertHandler.HandleConvertBatch, "convert_batch"))
	mux.HandleFunc("/convert", MetricsMiddleware(s.convertHandler.HandleConvert, "convert"))
	mux.HandleFunc("/compare", MetricsMiddleware(s.compareHandler.HandleCompare, "compare"))
	mux.HandleFunc("/altitude", MetricsMiddleware(s.altitudeHandler.HandleAltitude, "altitude"))
	mux.HandleFunc("/times", MetricsMiddleware(s.timesHandler.HandlePostTime, "times"))
	mux.HandleFunc("/standards", MetricsMiddleware(s.standardsHandler.HandleGetStandards, "standards"))
	mux.HandleFunc("/rankings", MetricsMiddleware(s.rankingsHandler.HandleGetRankings, "rankings"))
	mux.HandleFunc("/rank/", MetricsMiddleware(s.rankHandler.HandleGetRank, "rank"))
}

// swimRequest is the wire shape of a single performance, shared by every
// endpoint that accepts one.
type swimRequest struct {
	Event  string `json:"event"`
	Course string `json:"course"`
	Time   string `json:"time"`
}

func (s swimRequest) validate() error {
	switch {
	case strings.TrimSpace(s.Event) == "":
		return errors.New("missing event")
	case strings.TrimSpace(s.Course) == "":
		return errors.New("missing course")
	case strings.TrimSpace(s.Time) == "":
		return errors.New("missing time")
	}
	return nil
}

// toResult parses the wire shape into a domain result.
func (s swimRequest) toResult() (model.SwimResult, error) {
	if err := s.validate(); err != nil {
		return model.SwimResult{}, err
	}
	event, err := course.ParseEvent(s.Event)
	if err != nil {
		return model.SwimResult{}, err
	}
	c, err := course.ParseCourse(s.Course)
	if err != nil {
		return model.SwimResult{}, err
	}
	t, err := swimtime.Parse(s.Time)
	if err != nil {
		return model.SwimResult{}, err
	}
	return model.SwimResult{Event: event, Course: c, Time: t}, nil
}

// swimResponse is the wire shape of a converted or adjusted performance.
type swimResponse struct {
	Event   string  `json:"event"`
	Course  string  `json:"course"`
	Time    string  `json:"time"`
	Seconds float64 `json:"seconds"`
	Factor  float64 `json:"factor,omitempty"`
}

func toSwimResponse(res convert.Result) swimResponse {
	return swimResponse{
		Event:   res.Event.String(),
		Course:  string(res.Course),
		Time:    res.Time.String(),
		Seconds: res.Time.Seconds(),
		Factor:  res.Factor,
	}
}

type ackResponse struct {
	Status    string `json:"status"`
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

// writeDomainError translates domain sentinels to HTTP statuses.
func writeDomainError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, convert.ErrUnavailable):
		writeError(w, http.StatusUnprocessableEntity, "conversion_unavailable", Wrap(op, err))
	case errors.Is(err, convert.ErrInvalidResult):
		writeError(w, http.StatusBadRequest, "invalid_result", Wrap(op, err))
	case errors.Is(err, standards.ErrStandardNotFound):
		writeError(w, http.StatusNotFound, "standard_not_found", Wrap(op, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}
