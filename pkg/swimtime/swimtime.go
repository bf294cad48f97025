// Package swimtime provides a fixed-point elapsed-time value for swim
// performances. Published conversion tables and meet results are quoted to
// the hundredth of a second, so the type stores centiseconds in an int64 and
// keeps float64 out of anything that gets stored or compared.
package swimtime

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Centi is one hundredth of a second, the base unit of Time.
const Centi = 1

// Time is an elapsed swim time in centiseconds.
type Time int64

// Sentinel kinds for parse failures.
var (
	ErrParse    = errors.New("malformed swim time")
	ErrNegative = errors.New("negative swim time")
)

const (
	centisPerSecond = 100
	centisPerMinute = 60 * centisPerSecond
)

// FromSeconds builds a Time from a float seconds value, rounding half-up to
// the hundredth.
func FromSeconds(s float64) (Time, error) {
	if s < 0 || math.IsNaN(s) || math.IsInf(s, 0) {
		return 0, ErrNegative
	}
	return Time(math.Floor(s*centisPerSecond + 0.5)), nil
}

// Parse accepts the formats used on meet sheets: "SS.hh", "MM:SS.hh" and
// "H:MM:SS.hh". A bare seconds value like "52" is accepted too.
func Parse(raw string) (Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("%w: empty input", ErrParse)
	}
	if strings.HasPrefix(s, "-") {
		return 0, ErrNegative
	}

	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("%w: %q", ErrParse, raw)
	}

	// All leading parts are whole minutes/hours; only the last may carry
	// fractional seconds.
	var total Time
	for i, p := range parts {
		if i < len(parts)-1 {
			n, err := strconv.Atoi(p)
			if err != nil || n < 0 {
				return 0, fmt.Errorf("%w: %q", ErrParse, raw)
			}
			total = total*60 + Time(n)
			continue
		}
		sec, err := strconv.ParseFloat(p, 64)
		if err != nil || sec < 0 {
			return 0, fmt.Errorf("%w: %q", ErrParse, raw)
		}
		if len(parts) > 1 && sec >= 60 {
			return 0, fmt.Errorf("%w: seconds field out of range in %q", ErrParse, raw)
		}
		cs := Time(math.Floor(sec*centisPerSecond + 0.5))
		total = total*60*centisPerSecond + cs
	}
	return total, nil
}

// Seconds returns the time as float seconds. For wire output only; domain
// logic should stay in centiseconds.
func (t Time) Seconds() float64 {
	return float64(t) / centisPerSecond
}

// Mul scales the time by a conversion factor, rounding half-up to the
// hundredth the way the published tables do.
func (t Time) Mul(factor float64) Time {
	scaled := float64(t) * factor
	return Time(math.Floor(scaled + 0.5))
}

// String renders the time the way meet results print it: "SS.hh" under a
// minute, "M:SS.hh" otherwise. Negative values (deltas) carry a sign.
func (t Time) String() string {
	cs := int64(t)
	sign := ""
	if cs < 0 {
		sign = "-"
		cs = -cs
	}
	minutes := cs / centisPerMinute
	rem := cs % centisPerMinute
	if minutes == 0 {
		return fmt.Sprintf("%s%d.%02d", sign, rem/centisPerSecond, rem%centisPerSecond)
	}
	return fmt.Sprintf("%s%d:%02d.%02d", sign, minutes, rem/centisPerSecond, rem%centisPerSecond)
}
