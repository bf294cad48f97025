package convert

import (
	"github.com/MohamedMohamady125/projectusa/internal/domain/course"
)

// USA Swimming equivalency factors, 2024 edition. Factors are specific to
// the event and course pair, not a flat yards/meters ratio: they fold in
// turn density and pool-length physics. Distance-event conversions cross
// distances (400 m free and 500 y free are the equivalent events), so each
// entry also names the target event.

type factorKey struct {
	event course.Event
	from  course.Course
	to    course.Course
}

type factorEntry struct {
	factor float64
	target course.Event
}

// baseTable is built once at package init and never mutated afterwards.
var baseTable = buildBaseTable()

func buildBaseTable() map[factorKey]factorEntry {
	t := make(map[factorKey]factorEntry)

	add := func(dist int, stroke course.Stroke, from, to course.Course, factor float64, targetDist int) {
		ev := course.Event{Distance: dist, Stroke: stroke}
		t[factorKey{event: ev, from: from, to: to}] = factorEntry{
			factor: factor,
			target: course.Event{Distance: targetDist, Stroke: stroke},
		}
	}
	same := func(dist int, stroke course.Stroke, from, to course.Course, factor float64) {
		add(dist, stroke, from, to, factor, dist)
	}

	// LCM -> SCY.
	for _, d := range []int{50, 100, 200} {
		same(d, course.Freestyle, course.LCM, course.SCY, 0.8644)
		same(d, course.Backstroke, course.LCM, course.SCY, 0.8560)
		same(d, course.Breaststroke, course.LCM, course.SCY, 0.8496)
		same(d, course.Butterfly, course.LCM, course.SCY, 0.8644)
	}
	add(400, course.Freestyle, course.LCM, course.SCY, 0.8655, 500)
	add(800, course.Freestyle, course.LCM, course.SCY, 0.8655, 1000)
	add(1500, course.Freestyle, course.LCM, course.SCY, 0.8658, 1650)
	same(200, course.IndividualMedley, course.LCM, course.SCY, 0.8560)
	same(400, course.IndividualMedley, course.LCM, course.SCY, 0.8560)

	// SCY -> LCM.
	for _, d := range []int{50, 100, 200} {
		same(d, course.Freestyle, course.SCY, course.LCM, 1.1566)
		same(d, course.Backstroke, course.SCY, course.LCM, 1.1682)
		same(d, course.Breaststroke, course.SCY, course.LCM, 1.1773)
		same(d, course.Butterfly, course.SCY, course.LCM, 1.1566)
	}
	add(500, course.Freestyle, course.SCY, course.LCM, 1.1553, 400)
	add(1000, course.Freestyle, course.SCY, course.LCM, 1.1553, 800)
	add(1650, course.Freestyle, course.SCY, course.LCM, 1.1549, 1500)
	same(200, course.IndividualMedley, course.SCY, course.LCM, 1.1682)
	same(400, course.IndividualMedley, course.SCY, course.LCM, 1.1682)

	// LCM <-> SCM. The published table carries no turn correction between
	// meter courses; entries stay per-event so revised factors slot in.
	for _, stroke := range []course.Stroke{course.Freestyle, course.Backstroke, course.Breaststroke, course.Butterfly} {
		for _, d := range []int{50, 100, 200} {
			same(d, stroke, course.LCM, course.SCM, 1.0)
			same(d, stroke, course.SCM, course.LCM, 1.0)
		}
	}
	for _, d := range []int{400, 800, 1500} {
		same(d, course.Freestyle, course.LCM, course.SCM, 1.0)
		same(d, course.Freestyle, course.SCM, course.LCM, 1.0)
	}
	for _, d := range []int{200, 400} {
		same(d, course.IndividualMedley, course.LCM, course.SCM, 1.0)
		same(d, course.IndividualMedley, course.SCM, course.LCM, 1.0)
	}

	// SCM <-> SCY. Published only for freestyle; anything else is
	// unavailable rather than guessed.
	for _, d := range []int{50, 100, 200} {
		same(d, course.Freestyle, course.SCM, course.SCY, 0.8712)
		same(d, course.Freestyle, course.SCY, course.SCM, 1.1478)
	}
	add(400, course.Freestyle, course.SCM, course.SCY, 0.8712, 500)
	add(800, course.Freestyle, course.SCM, course.SCY, 0.8712, 1000)
	add(1500, course.Freestyle, course.SCM, course.SCY, 0.8712, 1650)
	add(500, course.Freestyle, course.SCY, course.SCM, 1.1478, 400)
	add(1000, course.Freestyle, course.SCY, course.SCM, 1.1478, 800)
	add(1650, course.Freestyle, course.SCY, course.SCM, 1.1478, 1500)

	return t
}
