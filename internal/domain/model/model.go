// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"time"

	"github.com/MohamedMohamady125/projectusa/internal/domain/course"
	"github.com/MohamedMohamady125/projectusa/pkg/swimtime"
)

// SwimResult is a single swim performance: what was swum, where, and how
// fast. Values are immutable; operations return new ones.
type SwimResult struct {
	Event  course.Event
	Course course.Course
	Time   swimtime.Time
}

// Validate reports whether the result is well formed. It does not check
// whether the event is contested in the course; that is the factor table's
// call.
func (r SwimResult) Validate() error {
	if !r.Course.Valid() {
		return fmt.Errorf("course %q: %w", r.Course, course.ErrUnknownCourse)
	}
	if r.Event.Distance <= 0 {
		return fmt.Errorf("%w: distance %d", course.ErrInvalidEvent, r.Event.Distance)
	}
	if _, err := course.ParseStroke(string(r.Event.Stroke)); err != nil {
		return err
	}
	if r.Time <= 0 {
		return fmt.Errorf("%w: %v", swimtime.ErrNegative, r.Time)
	}
	return nil
}

// Submission is a swim time submitted for ranking.
// Fields mirror the wire schema for POST /times.
type Submission struct {
	SubmissionID string     // unique id for idempotency
	SwimmerID    string     // athlete identifier
	Result       SwimResult // what was swum
	MeetName     string     // optional meet metadata
	MeetDate     time.Time  // optional meet date
}
