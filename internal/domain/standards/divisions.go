package standards

import (
	"errors"
	"fmt"
	"strings"
)

// Division is a collegiate program tier. Standards are tabulated per
// division; a tagged enum plus a map keeps the catalog flat, no subclassing.
type Division string

const (
	DivisionD1       Division = "d1"
	DivisionD1Mid    Division = "d1_mid"
	DivisionD2       Division = "d2"
	DivisionD3       Division = "d3"
	DivisionNAIA     Division = "naia"
	DivisionNJCAA    Division = "njcaa"
)

// Gender selects the men's or women's standards sheet.
type Gender string

const (
	GenderMen   Gender = "men"
	GenderWomen Gender = "women"
)

// Sentinel kinds for vocabulary parsing.
var (
	ErrUnknownDivision = errors.New("unknown division")
	ErrUnknownGender   = errors.New("unknown gender")
)

// divisionAliases maps wire spellings to canonical divisions.
var divisionAliases = map[string]Division{
	"d1": DivisionD1, "division1": DivisionD1, "ncaa_d1": DivisionD1,
	"d1_mid": DivisionD1Mid, "d1_mid_major": DivisionD1Mid, "d1-mid-major": DivisionD1Mid,
	"d2": DivisionD2, "division2": DivisionD2,
	"d3": DivisionD3, "division3": DivisionD3,
	"naia":  DivisionNAIA,
	"njcaa": DivisionNJCAA,
}

var genderAliases = map[string]Gender{
	"men": GenderMen, "m": GenderMen, "male": GenderMen,
	"women": GenderWomen, "w": GenderWomen, "f": GenderWomen, "female": GenderWomen,
}

// ParseDivision validates a wire division string.
func ParseDivision(raw string) (Division, error) {
	d, ok := divisionAliases[strings.ToLower(strings.TrimSpace(raw))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownDivision, raw)
	}
	return d, nil
}

// ParseGender validates a wire gender string.
func ParseGender(raw string) (Gender, error) {
	g, ok := genderAliases[strings.ToLower(strings.TrimSpace(raw))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownGender, raw)
	}
	return g, nil
}

// Divisions lists every tabulated division, fastest tier first.
func Divisions() []Division {
	return []Division{DivisionD1, DivisionD1Mid, DivisionD2, DivisionD3, DivisionNAIA, DivisionNJCAA}
}
