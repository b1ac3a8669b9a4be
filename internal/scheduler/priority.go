package scheduler

import (
	"sort"

	"github.com/wkatu/timetable/internal/model"
)

// subjectFootprint sums the practical/lab hours declared across every
// stream of a subject, the "heavier course footprint" key of spec.md
// §4.8 item 3.
func subjectFootprint(streams []model.Stream) map[string]int {
	out := make(map[string]int)
	for _, s := range streams {
		if s.Type == model.Practical || s.Type == model.Lab {
			out[s.Subject] += s.Hours.Total
		}
	}
	return out
}

// SortStreams orders streams for placement by the lexicographic key of
// spec.md §4.8: flexible subjects last, tighter instructors first,
// heavier subjects first, larger streams first, stream id as tiebreaker.
// instructorAvailableSlots gives, per instructor, the count of weekly
// slots not in that instructor's declared-unavailable set (§4.8 item 2);
// flexibleSubjects names the subjects exempt from the Mon-Wed-first rule
// (§4.7 step 1, GLOSSARY "Flexible subject"). The input slice is not
// mutated; a new sorted slice is returned.
func SortStreams(streams []model.Stream, flexibleSubjects map[string]bool, instructorAvailableSlots map[string]int) []model.Stream {
	footprint := subjectFootprint(streams)

	out := make([]model.Stream, len(streams))
	copy(out, streams)

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]

		aFlex, bFlex := flexibleSubjects[a.Subject], flexibleSubjects[b.Subject]
		if aFlex != bFlex {
			return bFlex // non-flexible (false) sorts before flexible (true)
		}

		aSlots, bSlots := instructorAvailableSlots[a.Instructor], instructorAvailableSlots[b.Instructor]
		if aSlots != bSlots {
			return aSlots < bSlots
		}

		aFoot, bFoot := footprint[a.Subject], footprint[b.Subject]
		if aFoot != bFoot {
			return aFoot > bFoot
		}

		if a.StudentCount != b.StudentCount {
			return a.StudentCount > b.StudentCount
		}

		return a.ID < b.ID
	})
	return out
}

// InstructorAvailableSlots counts, per instructor appearing in streams,
// the number of the 5*13 weekly slots not present in that instructor's
// unavailable set (spec.md §4.8 item 2; "total weekly minutes" collapses
// to a slot count since every slot is a fixed-length period).
func InstructorAvailableSlots(streams []model.Stream, unavailable map[string]map[model.Day]map[model.Slot]bool) map[string]int {
	const totalSlots = 5 * model.SlotsPerDay

	out := make(map[string]int)
	seen := make(map[string]bool)
	for _, s := range streams {
		if seen[s.Instructor] {
			continue
		}
		seen[s.Instructor] = true

		blocked := 0
		for _, bySlot := range unavailable[s.Instructor] {
			blocked += len(bySlot)
		}
		out[s.Instructor] = totalSlots - blocked
	}
	return out
}
