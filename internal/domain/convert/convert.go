// Package convert maps swim performances between the three competition
// courses using USA Swimming's published equivalency factors.
//
// Everything here is pure and deterministic: the factor table is immutable
// after construction, so a single Converter is safe for arbitrary concurrent
// use.
package convert

import (
	"fmt"

	"github.com/MohamedMohamady125/projectusa/internal/domain/course"
	"github.com/MohamedMohamady125/projectusa/internal/domain/model"
	"github.com/MohamedMohamady125/projectusa/pkg/swimtime"
)

// Result is a completed conversion. Factor carries the exact coefficient
// applied so callers can audit the arithmetic; Event is the equivalent event
// in the target course, which differs from the source for distance freestyle
// (400 m free converts to a 500 y free time).
type Result struct {
	Event  course.Event
	Course course.Course
	Time   swimtime.Time
	Factor float64
}

// Outcome is one slot of a batch conversion. Exactly one of Result/Err is
// meaningful; a bad slot never aborts its batch.
type Outcome struct {
	Result Result
	Err    error
}

// Converter resolves factors from the published table. The zero-value table
// copy is taken at construction and never mutated afterwards.
type Converter struct {
	table map[factorKey]factorEntry
}

// Option applies a configuration option to the Converter.
type Option func(*Converter)

// WithFactor overrides or adds a single published factor. The target event
// keeps the source distance; use WithFactorMapped when the equivalent event
// changes distance.
func WithFactor(event course.Event, from, to course.Course, factor float64) Option {
	return WithFactorMapped(event, from, to, factor, event.Distance)
}

// WithFactorMapped overrides a factor whose equivalent event sits at a
// different distance in the target course.
func WithFactorMapped(event course.Event, from, to course.Course, factor float64, targetDistance int) Option {
	return func(c *Converter) {
		if factor > 0 && targetDistance > 0 {
			c.table[factorKey{event: event, from: from, to: to}] = factorEntry{
				factor: factor,
				target: course.Event{Distance: targetDistance, Stroke: event.Stroke},
			}
		}
	}
}

// New builds a Converter from the published table plus any overrides.
func New(opts ...Option) *Converter {
	c := &Converter{table: make(map[factorKey]factorEntry, len(baseTable))}
	for k, v := range baseTable {
		c.table[k] = v
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert maps a performance to the target course.
//
// Converting to the source course is a no-op short-circuit: the time comes
// back unchanged with factor 1.0. A missing table entry fails with
// ErrUnavailable; the converter never interpolates or guesses.
func (c *Converter) Convert(r model.SwimResult, target course.Course) (Result, error) {
	if err := r.Validate(); err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrInvalidResult, err)
	}
	if !target.Valid() {
		return Result{}, fmt.Errorf("%w: target course %q", ErrInvalidResult, target)
	}

	if target == r.Course {
		return Result{Event: r.Event, Course: target, Time: r.Time, Factor: 1.0}, nil
	}

	entry, ok := c.table[factorKey{event: r.Event, from: r.Course, to: target}]
	if !ok {
		return Result{}, fmt.Errorf("%w: %s %s->%s", ErrUnavailable, r.Event, r.Course, target)
	}

	return Result{
		Event:  entry.target,
		Course: target,
		Time:   r.Time.Mul(entry.factor),
		Factor: entry.factor,
	}, nil
}

// ConvertMany applies Convert to each element independently. A failing slot
// carries its error in place; the remaining slots still convert.
func (c *Converter) ConvertMany(results []model.SwimResult, target course.Course) []Outcome {
	outcomes := make([]Outcome, len(results))
	for i, r := range results {
		res, err := c.Convert(r, target)
		outcomes[i] = Outcome{Result: res, Err: err}
	}
	return outcomes
}
