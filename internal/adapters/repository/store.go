// Package repository defines the event ranking store interface and errors.
package repository

import (
	"context"

	"github.com/MohamedMohamady125/projectusa/internal/domain/course"
	"github.com/MohamedMohamady125/projectusa/pkg/swimtime"
)

// Entry represents a ranking row: a swimmer's best SCY-normalized time for
// one event.
type Entry struct {
	Rank      int
	SwimmerID string
	Event     course.Event
	Time      swimtime.Time
}

// Store provides read/write access to per-event best times.
type Store interface {
	// UpdateBest records a new best time for the swimmer in the event if it
	// beats the existing one. Returns true if the store changed.
	UpdateBest(ctx context.Context, event course.Event, swimmerID string, t swimtime.Time) (bool, error)

	// Rank returns the swimmer's current rank within the event.
	// Returns ErrNotFound if the swimmer has no ranked time there.
	Rank(ctx context.Context, event course.Event, swimmerID string) (Entry, error)

	// TopN returns the event's fastest n entries, fastest first.
	TopN(ctx context.Context, event course.Event, n int) ([]Entry, error)

	// Count returns the total number of ranked entries across events.
	Count(ctx context.Context) int

	// EventCount returns the number of events holding at least one entry.
	EventCount(ctx context.Context) int
}
