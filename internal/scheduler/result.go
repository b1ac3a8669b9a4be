package scheduler

import (
	"sort"

	"github.com/wkatu/timetable/internal/model"
)

// Statistics holds C9's summary numbers (spec.md §4.9): total counts,
// per-day assignment counts, per-room utilization, and per-instructor
// hour totals.
type Statistics struct {
	TotalAssigned    int
	TotalUnscheduled int
	PerDayCount      map[string]int
	RoomUtilization  map[string]float64
	InstructorHours  map[string]int
}

// ScheduleResult is C9's output: the ordered assignment and unscheduled
// lists plus statistics (spec.md §4.9).
type ScheduleResult struct {
	Assignments []model.Assignment
	Unscheduled []model.UnscheduledStream
	Statistics  Statistics
}

// Aggregate builds a ScheduleResult from a completed placement run. rooms
// supplies per-room utilization (spec.md §4.9's "reserved slots ÷ 13·5").
// Assignments and unscheduled entries are kept in the order Run produced
// them, the priority order the streams were placed in, satisfying the
// determinism invariant of spec.md §8.
func Aggregate(assignments []model.Assignment, unscheduled []model.UnscheduledStream, rooms *RoomManager) ScheduleResult {
	perDay := make(map[string]int, 5)
	for _, d := range model.Days {
		perDay[d.String()] = 0
	}
	instructorHours := make(map[string]int)

	for _, a := range assignments {
		perDay[a.Day.String()]++
		instructorHours[a.Instructor]++
	}

	utilization := make(map[string]float64, len(rooms.RoomNames()))
	for _, name := range rooms.RoomNames() {
		utilization[name] = rooms.Utilization(name) * 100
	}

	return ScheduleResult{
		Assignments: assignments,
		Unscheduled: unscheduled,
		Statistics: Statistics{
			TotalAssigned:    len(assignments),
			TotalUnscheduled: len(unscheduled),
			PerDayCount:      perDay,
			RoomUtilization:  utilization,
			InstructorHours:  instructorHours,
		},
	}
}

// InstructorNames returns every instructor with at least one assignment,
// sorted, for deterministic report rendering.
func (r ScheduleResult) InstructorNames() []string {
	names := make([]string, 0, len(r.Statistics.InstructorHours))
	for name := range r.Statistics.InstructorHours {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
