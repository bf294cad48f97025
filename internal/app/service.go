// Package app provides the core business service that implements the
// dependencies required by the HTTP API.
package app

import (
	"context"
	"errors"
	"sync"

	eventqueue "github.com/MohamedMohamady125/projectusa/internal/adapters/mq/queue"
	workerpool "github.com/MohamedMohamady125/projectusa/internal/adapters/mq/worker"
	"github.com/MohamedMohamady125/projectusa/internal/adapters/repository"
	"github.com/MohamedMohamady125/projectusa/internal/domain/altitude"
	"github.com/MohamedMohamady125/projectusa/internal/domain/convert"
	"github.com/MohamedMohamady125/projectusa/internal/domain/course"
	"github.com/MohamedMohamady125/projectusa/internal/domain/dedupe"
	"github.com/MohamedMohamady125/projectusa/internal/domain/model"
	"github.com/MohamedMohamady125/projectusa/internal/domain/standards"
	"github.com/MohamedMohamady125/projectusa/internal/domain/types"
	"github.com/MohamedMohamady125/projectusa/pkg/logger"
	"github.com/MohamedMohamady125/projectusa/pkg/metrics"
	"github.com/MohamedMohamady125/projectusa/pkg/swimtime"
)

// Service wires the converter, standards catalog, altitude adjuster and the
// rankings ingest pipeline behind one facade for the HTTP layer.
type Service struct {
	mu sync.RWMutex

	converter *convert.Converter
	catalog   *standards.Catalog
	adjuster  *altitude.Adjuster

	rankings repository.Store
	deduper  dedupe.Deduper
	queue    eventqueue.Queue
	pool     *workerpool.Pool

	// Configuration
	workerCount      int
	queueSize        int
	dedupeSize       int
	altitudeOptions  []altitude.Option
	converterOptions []convert.Option

	started bool
	logger  logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of ingest workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize bounds the submission queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize bounds the idempotency cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithAltitudeOptions forwards configuration to the altitude adjuster.
func WithAltitudeOptions(opts ...altitude.Option) Option {
	return func(s *Service) {
		s.altitudeOptions = append(s.altitudeOptions, opts...)
	}
}

// WithConverterOptions forwards factor overrides to the converter.
func WithConverterOptions(opts ...convert.Option) Option {
	return func(s *Service) {
		s.converterOptions = append(s.converterOptions, opts...)
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount: 4,
		queueSize:   10000,
		dedupeSize:  50000,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.converter = convert.New(s.converterOptions...)
	s.adjuster = altitude.New(s.altitudeOptions...)

	catalog, err := standards.New(standards.WithConverter(s.converter))
	if err != nil {
		return err
	}
	s.catalog = catalog

	s.rankings = repository.NewBoardStore(ctx)
	s.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))
	s.queue = eventqueue.NewInMemoryQueue(eventqueue.WithCapacity(s.queueSize))
	s.pool = workerpool.NewPool(s.workerCount, s.queue, s.converter, s.rankings)
	s.pool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "swim service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
	)
	return nil
}

// Stop gracefully shuts down the ingest pipeline.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping swim service...")

	if s.queue != nil {
		_ = s.queue.Close()
	}
	if s.pool != nil {
		s.pool.Stop()
	}

	s.started = false
	s.logger.Info(ctx, "swim service stopped")
}

// Convert maps a performance to the target course.
func (s *Service) Convert(r model.SwimResult, target course.Course) (convert.Result, error) {
	res, err := s.converter.Convert(r, target)
	switch {
	case err == nil:
		metrics.RecordConversion(string(r.Course), string(target))
	case errors.Is(err, convert.ErrUnavailable):
		metrics.RecordConversionUnavailable(string(r.Course), string(target))
	default:
		metrics.RecordConversionInvalid()
	}
	return res, err
}

// ConvertMany converts a batch with per-slot failure semantics.
func (s *Service) ConvertMany(results []model.SwimResult, target course.Course) []convert.Outcome {
	outcomes := s.converter.ConvertMany(results, target)
	for i, out := range outcomes {
		switch {
		case out.Err == nil:
			metrics.RecordConversion(string(results[i].Course), string(target))
		case errors.Is(out.Err, convert.ErrUnavailable):
			metrics.RecordConversionUnavailable(string(results[i].Course), string(target))
		default:
			metrics.RecordConversionInvalid()
		}
	}
	return outcomes
}

// Compare measures a performance against an NCAA standard.
func (s *Service) Compare(r model.SwimResult, division standards.Division, gender standards.Gender) (standards.Comparison, error) {
	cmp, err := s.catalog.Compare(r, division, gender)
	if err == nil {
		metrics.RecordComparison(string(division), string(gender), cmp.Met)
	}
	return cmp, err
}

// Standard looks up the tabulated time for a division/gender/event.
func (s *Service) Standard(division standards.Division, gender standards.Gender, event course.Event) (swimtime.Time, error) {
	return s.catalog.Lookup(division, gender, event)
}

// Standards lists every tabulated event for a division/gender.
func (s *Service) Standards(division standards.Division, gender standards.Gender) (map[string]swimtime.Time, error) {
	return s.catalog.Standards(division, gender)
}

// AdjustAltitude corrects a performance to its sea-level equivalent.
func (s *Service) AdjustAltitude(r model.SwimResult, elevationMeters float64) (model.SwimResult, error) {
	adjusted, err := s.adjuster.Adjust(r, elevationMeters)
	if err == nil && adjusted.Time != r.Time {
		metrics.RecordAltitudeAdjustment()
	}
	return adjusted, err
}

// SeenAndRecord atomically checks and records a submission id.
func (s *Service) SeenAndRecord(ctx context.Context, id string) bool {
	seen := s.deduper.SeenAndRecord(ctx, id)
	if seen {
		metrics.RecordSubmissionDuplicate()
	}
	return seen
}

// Unrecord rolls back a seen mark so a failed submission can retry.
func (s *Service) Unrecord(ctx context.Context, id string) {
	s.deduper.Unrecord(ctx, id)
}

// Enqueue submits a swim time for asynchronous ranking ingest. Returns
// false on backpressure.
func (s *Service) Enqueue(ctx context.Context, sub model.Submission) bool {
	ok := s.queue.Enqueue(ctx, sub)
	if ok {
		metrics.RecordSubmissionAccepted()
		metrics.UpdateQueueSize(s.queue.Len(ctx))
	}
	return ok
}

// TopN returns the fastest n entries for an event.
func (s *Service) TopN(ctx context.Context, event course.Event, n int) ([]types.Entry, error) {
	entries, err := s.rankings.TopN(ctx, event, n)
	if err != nil {
		return nil, err
	}
	return toAPIEntries(entries), nil
}

// Rank returns a swimmer's standing within an event.
func (s *Service) Rank(ctx context.Context, event course.Event, swimmerID string) (types.Entry, error) {
	entry, err := s.rankings.Rank(ctx, event, swimmerID)
	if err != nil {
		return types.Entry{}, err
	}
	return toAPIEntry(entry), nil
}

func toAPIEntries(entries []repository.Entry) []types.Entry {
	out := make([]types.Entry, len(entries))
	for i, e := range entries {
		out[i] = toAPIEntry(e)
	}
	return out
}

func toAPIEntry(e repository.Entry) types.Entry {
	return types.Entry{
		Rank:      e.Rank,
		SwimmerID: e.SwimmerID,
		Event:     e.Event.String(),
		Time:      e.Time.String(),
		Seconds:   e.Time.Seconds(),
	}
}

// GetStats returns a pipeline snapshot for monitoring.
func (s *Service) GetStats() types.ServiceStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := types.ServiceStats{
		Started:     s.started,
		WorkerCount: s.workerCount,
		QueueSize:   s.queueSize,
		DedupeSize:  s.dedupeSize,
	}

	if s.started {
		stats.QueueLength = s.queue.Len(ctx)
		stats.RankedSwimmers = s.rankings.Count(ctx)
		stats.RankedEvents = s.rankings.EventCount(ctx)
		stats.TrackedSubmissions = s.deduper.Size()

		metrics.UpdateQueueSize(stats.QueueLength)
		metrics.UpdateRankingSwimmers(stats.RankedSwimmers)
		metrics.UpdateRankingEvents(stats.RankedEvents)
	}
	return stats
}
