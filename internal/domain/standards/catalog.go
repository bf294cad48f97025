// Package standards compares swim performances against published NCAA
// recruiting standards.
//
// The catalog is read-only reference data: it is parsed once from the
// embedded sheet at construction and never mutated, so a single Catalog is
// safe for arbitrary concurrent use.
package standards

import (
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/MohamedMohamady125/projectusa/internal/domain/convert"
	"github.com/MohamedMohamady125/projectusa/internal/domain/course"
	"github.com/MohamedMohamady125/projectusa/internal/domain/model"
	"github.com/MohamedMohamady125/projectusa/pkg/swimtime"
)

// StandardsCourse is the course the published sheets are tabulated in.
const StandardsCourse = course.SCY

// ErrStandardNotFound means no standard is tabulated for the requested
// division/gender/event, e.g. an event not contested at that division.
var ErrStandardNotFound = errors.New("standard not found")

//go:embed data/standards.yaml
var standardsSheet []byte

type standardKey struct {
	gender   Gender
	division Division
	event    course.Event
}

// Comparison is the outcome of measuring a performance against a standard.
// Delta is signed: negative means the swimmer is under (faster than) the
// standard.
type Comparison struct {
	Met       bool
	Delta     swimtime.Time
	Standard  swimtime.Time
	Converted swimtime.Time
	Event     course.Event
	Division  Division
	Gender    Gender
}

// Catalog holds the parsed standards plus the converter used to bring
// performances into the standards course.
type Catalog struct {
	standards map[standardKey]swimtime.Time
	converter *convert.Converter
}

// Option applies a configuration option to the Catalog.
type Option func(*Catalog)

// WithConverter sets the converter used to normalize inputs to SCY.
func WithConverter(c *convert.Converter) Option {
	return func(cat *Catalog) {
		if c != nil {
			cat.converter = c
		}
	}
}

// New parses the embedded standards sheet.
func New(opts ...Option) (*Catalog, error) {
	var sheet map[string]map[string]map[string]string
	if err := yaml.Unmarshal(standardsSheet, &sheet); err != nil {
		return nil, fmt.Errorf("parse standards sheet: %w", err)
	}

	cat := &Catalog{
		standards: make(map[standardKey]swimtime.Time),
		converter: convert.New(),
	}

	for rawGender, divisions := range sheet {
		gender, err := ParseGender(rawGender)
		if err != nil {
			return nil, fmt.Errorf("standards sheet: %w", err)
		}
		for rawDivision, events := range divisions {
			division, err := ParseDivision(rawDivision)
			if err != nil {
				return nil, fmt.Errorf("standards sheet: %w", err)
			}
			for rawEvent, rawTime := range events {
				event, err := course.ParseEvent(rawEvent)
				if err != nil {
					return nil, fmt.Errorf("standards sheet: %w", err)
				}
				t, err := swimtime.Parse(rawTime)
				if err != nil {
					return nil, fmt.Errorf("standards sheet %s/%s/%s: %w", rawGender, rawDivision, rawEvent, err)
				}
				cat.standards[standardKey{gender: gender, division: division, event: event}] = t
			}
		}
	}

	for _, opt := range opts {
		opt(cat)
	}
	return cat, nil
}

// Lookup returns the tabulated standard for a division/gender/event.
func (c *Catalog) Lookup(division Division, gender Gender, event course.Event) (swimtime.Time, error) {
	t, ok := c.standards[standardKey{gender: gender, division: division, event: event}]
	if !ok {
		return 0, fmt.Errorf("%w: %s %s %s", ErrStandardNotFound, gender, division, event)
	}
	return t, nil
}

// Standards returns every tabulated event for a division/gender, keyed by
// the event's canonical name.
func (c *Catalog) Standards(division Division, gender Gender) (map[string]swimtime.Time, error) {
	out := make(map[string]swimtime.Time)
	for key, t := range c.standards {
		if key.division == division && key.gender == gender {
			out[key.event.String()] = t
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %s %s", ErrStandardNotFound, gender, division)
	}
	return out, nil
}

// Compare converts the performance to the standards course when needed and
// measures it against the tabulated time. At or under the standard counts
// as met; exact equality is met.
func (c *Catalog) Compare(r model.SwimResult, division Division, gender Gender) (Comparison, error) {
	converted, err := c.converter.Convert(r, StandardsCourse)
	if err != nil {
		return Comparison{}, err
	}

	standard, err := c.Lookup(division, gender, converted.Event)
	if err != nil {
		return Comparison{}, err
	}

	return Comparison{
		Met:       converted.Time <= standard,
		Delta:     converted.Time - standard,
		Standard:  standard,
		Converted: converted.Time,
		Event:     converted.Event,
		Division:  division,
		Gender:    gender,
	}, nil
}
