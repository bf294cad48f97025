// Package course defines the course, stroke and event vocabulary shared
// across the service.
package course

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Course identifies the pool format a time was swum in.
type Course string

const (
	// SCY is short course yards, the US collegiate format (25 yd pool).
	SCY Course = "SCY"
	// SCM is short course meters (25 m pool).
	SCM Course = "SCM"
	// LCM is long course meters, the Olympic format (50 m pool).
	LCM Course = "LCM"
)

// Stroke identifies the discipline of an event.
type Stroke string

const (
	Freestyle        Stroke = "free"
	Backstroke       Stroke = "back"
	Breaststroke     Stroke = "breast"
	Butterfly        Stroke = "fly"
	IndividualMedley Stroke = "im"
)

// Sentinel kinds for vocabulary parsing.
var (
	ErrUnknownCourse = errors.New("unknown course")
	ErrUnknownStroke = errors.New("unknown stroke")
	ErrInvalidEvent  = errors.New("invalid event")
)

// validCourses is the canonical set of accepted course strings.
var validCourses = map[Course]bool{
	SCY: true, SCM: true, LCM: true,
}

// strokeAliases maps the spellings seen on meet sheets to canonical strokes.
var strokeAliases = map[string]Stroke{
	"free": Freestyle, "freestyle": Freestyle,
	"back": Backstroke, "backstroke": Backstroke,
	"breast": Breaststroke, "breaststroke": Breaststroke,
	"fly": Butterfly, "butterfly": Butterfly,
	"im": IndividualMedley, "medley": IndividualMedley,
}

// ParseCourse validates a wire course string.
func ParseCourse(raw string) (Course, error) {
	c := Course(strings.ToUpper(strings.TrimSpace(raw)))
	if !validCourses[c] {
		return "", fmt.Errorf("%w: %q", ErrUnknownCourse, raw)
	}
	return c, nil
}

// ParseStroke validates a wire stroke string.
func ParseStroke(raw string) (Stroke, error) {
	s, ok := strokeAliases[strings.ToLower(strings.TrimSpace(raw))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStroke, raw)
	}
	return s, nil
}

// Valid reports whether the course is one of SCY, SCM, LCM.
func (c Course) Valid() bool { return validCourses[c] }

// Event is a contested distance and stroke, e.g. 100 free. The distance unit
// follows the course the time was swum in (yards for SCY, meters otherwise).
type Event struct {
	Distance int    `json:"distance"`
	Stroke   Stroke `json:"stroke"`
}

// String renders the canonical event name, e.g. "100_free".
func (e Event) String() string {
	return fmt.Sprintf("%d_%s", e.Distance, e.Stroke)
}

// ParseEvent accepts canonical names like "100_free" as well as the spaced
// form "100 free" and stroke aliases ("100 butterfly").
func ParseEvent(raw string) (Event, error) {
	name := strings.ToLower(strings.TrimSpace(raw))
	name = strings.ReplaceAll(name, " ", "_")
	distancePart, strokePart, ok := strings.Cut(name, "_")
	if !ok {
		return Event{}, fmt.Errorf("%w: %q", ErrInvalidEvent, raw)
	}
	distance, err := strconv.Atoi(distancePart)
	if err != nil || distance <= 0 {
		return Event{}, fmt.Errorf("%w: bad distance in %q", ErrInvalidEvent, raw)
	}
	stroke, err := ParseStroke(strokePart)
	if err != nil {
		return Event{}, fmt.Errorf("%w: bad stroke in %q", ErrInvalidEvent, raw)
	}
	return Event{Distance: distance, Stroke: stroke}, nil
}
