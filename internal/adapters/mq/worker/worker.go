// Package worker drains the submission queue, normalizes each time to the
// rankings course and applies it to the ranking store.
package worker

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/MohamedMohamady125/projectusa/internal/domain/convert"
	"github.com/MohamedMohamady125/projectusa/internal/domain/course"
	"github.com/MohamedMohamady125/projectusa/internal/domain/model"
	"github.com/MohamedMohamady125/projectusa/pkg/logger"
	"github.com/MohamedMohamady125/projectusa/pkg/metrics"
	"github.com/MohamedMohamady125/projectusa/pkg/swimtime"
)

const (
	defaultWorkerMultiplier = 2
	workerShutdownTimeout   = 5 * time.Second
)

// RankingsCourse is the course every ranked time is normalized to.
const RankingsCourse = course.SCY

// Submission is what workers read off the queue.
type Submission = model.Submission

// Updater applies a normalized best time to the ranking store.
type Updater interface {
	UpdateBest(ctx context.Context, event course.Event, swimmerID string, t swimtime.Time) (bool, error)
}

// Converter normalizes a performance into the rankings course.
type Converter interface {
	Convert(r model.SwimResult, target course.Course) (convert.Result, error)
}

// Queue defines how workers receive submissions.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Submission
}

// Worker processes submissions until stopped.
type Worker struct {
	queue     Queue
	converter Converter
	updater   Updater
	name      string

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// Option applies a configuration option to the Worker.
type Option func(*Worker)

// WithName names the worker for logging.
func WithName(name string) Option {
	return func(w *Worker) {
		if name != "" {
			w.name = name
			w.logger = logger.Get().Named(name)
		}
	}
}

// NewWorker creates a worker over the given queue, converter and store.
func NewWorker(queue Queue, converter Converter, updater Updater, opts ...Option) *Worker {
	w := &Worker{
		queue:     queue,
		converter: converter,
		updater:   updater,
		name:      "worker",
		shutdown:  make(chan struct{}),
		done:      make(chan struct{}),
		logger:    logger.Get().Named("worker"),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run starts the worker loop until ctx is canceled, the queue closes, or
// Shutdown is called.
func (w *Worker) Run(ctx context.Context) {
	defer close(w.done)

	submissions := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case s, ok := <-submissions:
			if !ok {
				return
			}
			if err := w.process(ctx, s); err != nil {
				w.logger.Error(ctx, "submission dropped",
					logger.String("submissionID", s.SubmissionID),
					logger.Error(err),
				)
			}
		}
	}
}

// Shutdown stops the worker and waits for the loop to exit.
func (w *Worker) Shutdown(ctx context.Context) error {
	close(w.shutdown)
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// process normalizes one submission and applies it to the ranking store.
// Unconvertible submissions are permanent input problems; they are dropped
// and metered, never retried.
func (w *Worker) process(ctx context.Context, s Submission) error {
	start := time.Now()
	defer func() {
		metrics.RecordWorkerProcessingLatency(float64(time.Since(start).Milliseconds()))
	}()

	normalized, err := w.converter.Convert(s.Result, RankingsCourse)
	if err != nil {
		metrics.RecordWorkerError()
		if errors.Is(err, convert.ErrUnavailable) {
			metrics.RecordErrorByComponent("worker", "conversion_unavailable")
		} else {
			metrics.RecordErrorByComponent("worker", "invalid_submission")
		}
		return fmt.Errorf("normalize submission %s: %w", s.SubmissionID, err)
	}

	updated, err := w.updater.UpdateBest(ctx, normalized.Event, s.SwimmerID, normalized.Time)
	if err != nil {
		metrics.RecordWorkerError()
		metrics.RecordErrorByComponent("worker", "store_error")
		return fmt.Errorf("update best for %s: %w", s.SwimmerID, err)
	}

	if updated {
		w.logger.Debug(ctx, "best time improved",
			logger.String("swimmerID", s.SwimmerID),
			logger.String("event", normalized.Event.String()),
			logger.String("time", normalized.Time.String()),
		)
	}
	return nil
}

// Pool manages a fixed set of workers.
type Pool struct {
	workers []*Worker
	logger  logger.Logger
}

// NewPool creates workerCount workers over shared dependencies. A count
// below one defaults to twice the CPU count.
func NewPool(workerCount int, queue Queue, converter Converter, updater Updater) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU() * defaultWorkerMultiplier
	}

	p := &Pool{
		workers: make([]*Worker, workerCount),
		logger:  logger.Get().Named("worker-pool"),
	}
	for i := range p.workers {
		p.workers[i] = NewWorker(queue, converter, updater, WithName("worker-"+strconv.Itoa(i)))
	}
	metrics.UpdateWorkerActiveCount(workerCount)
	return p
}

// Start launches all workers.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
}

// Stop signals all workers and waits briefly for each to exit.
func (p *Pool) Stop() {
	for _, w := range p.workers {
		close(w.shutdown)
	}
	for _, w := range p.workers {
		select {
		case <-w.done:
		case <-time.After(workerShutdownTimeout):
		}
	}
	metrics.UpdateWorkerActiveCount(0)
}
