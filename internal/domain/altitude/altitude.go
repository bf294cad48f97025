// Package altitude corrects swim times for elevation. Races above roughly
// 1,000 m run faster than their sea-level equivalents (thinner air, less
// drag), so the adjustment scales the time down by a per-stroke factor.
//
// The threshold and factors are configuration data, not invariants: the
// published tables assert them without a derivation, so deployments can
// override both until an authoritative formula lands.
package altitude

import (
	"errors"
	"fmt"

	"github.com/MohamedMohamady125/projectusa/internal/domain/course"
	"github.com/MohamedMohamady125/projectusa/internal/domain/model"
	"github.com/MohamedMohamady125/projectusa/pkg/swimtime"
)

// ErrInvalidElevation rejects a negative elevation.
var ErrInvalidElevation = errors.New("invalid elevation")

// DefaultThresholdMeters is the elevation below which no correction applies.
const DefaultThresholdMeters = 1000.0

// defaultStrokeFactors are the published per-stroke corrections.
var defaultStrokeFactors = map[course.Stroke]float64{
	course.Freestyle:        0.985,
	course.Backstroke:       0.985,
	course.Breaststroke:     0.988,
	course.Butterfly:        0.985,
	course.IndividualMedley: 0.986,
}

// Adjuster applies elevation corrections. Immutable after construction.
type Adjuster struct {
	thresholdMeters float64
	strokeFactors   map[course.Stroke]float64
}

// Option applies a configuration option to the Adjuster.
type Option func(*Adjuster)

// WithThreshold overrides the elevation threshold in meters.
func WithThreshold(meters float64) Option {
	return func(a *Adjuster) {
		if meters > 0 {
			a.thresholdMeters = meters
		}
	}
}

// WithStrokeFactors overrides per-stroke correction factors. Factors must
// sit in (0, 1): an adjusted time is strictly faster.
func WithStrokeFactors(factors map[course.Stroke]float64) Option {
	return func(a *Adjuster) {
		for stroke, f := range factors {
			if f > 0 && f < 1 {
				a.strokeFactors[stroke] = f
			}
		}
	}
}

// New builds an Adjuster with the published defaults plus any overrides.
func New(opts ...Option) *Adjuster {
	a := &Adjuster{
		thresholdMeters: DefaultThresholdMeters,
		strokeFactors:   make(map[course.Stroke]float64, len(defaultStrokeFactors)),
	}
	for stroke, f := range defaultStrokeFactors {
		a.strokeFactors[stroke] = f
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Adjust returns the sea-level-equivalent performance. Below the threshold
// the input comes back unchanged; above it the time scales by the stroke's
// factor. A negative elevation fails with ErrInvalidElevation.
func (a *Adjuster) Adjust(r model.SwimResult, elevationMeters float64) (model.SwimResult, error) {
	if elevationMeters < 0 {
		return model.SwimResult{}, fmt.Errorf("%w: %.1f m", ErrInvalidElevation, elevationMeters)
	}
	if err := r.Validate(); err != nil {
		return model.SwimResult{}, err
	}
	if elevationMeters < a.thresholdMeters {
		return r, nil
	}
	// Corrections are only published for SCY and LCM competition; short
	// course meters results pass through untouched.
	if r.Course == course.SCM {
		return r, nil
	}

	factor, ok := a.strokeFactors[r.Event.Stroke]
	if !ok {
		return model.SwimResult{}, fmt.Errorf("%w: no factor for stroke %q", course.ErrUnknownStroke, r.Event.Stroke)
	}

	adjusted := r
	adjusted.Time = r.Time.Mul(factor)
	if adjusted.Time >= r.Time {
		// Half-up rounding to the hundredth can swallow the correction
		// for very short times; an applied correction is always strictly
		// faster.
		adjusted.Time = r.Time - swimtime.Centi
	}
	return adjusted, nil
}

// Threshold reports the configured elevation threshold in meters.
func (a *Adjuster) Threshold() float64 { return a.thresholdMeters }
