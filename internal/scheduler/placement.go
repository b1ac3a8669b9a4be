package scheduler

import (
	"go.uber.org/zap"

	"github.com/wkatu/timetable/internal/model"
)

// PlacementEngine runs C7: a single greedy, non-backtracking pass over a
// priority-ordered stream list (spec.md §4.7, §5). It owns no state of its
// own beyond the policy switches; the reservation state lives in the
// ConflictTracker and RoomManager it is handed.
type PlacementEngine struct {
	conflicts *ConflictTracker
	rooms     *RoomManager
	policy    Policy

	flexibleSubjects  map[string]bool
	forcedSecondShift map[string]bool
	deadGroups        map[string]bool

	logger *zap.Logger
}

// NewPlacementEngine wires C5 and C6 together behind the placement search
// described in spec.md §4.7.
func NewPlacementEngine(conflicts *ConflictTracker, rooms *RoomManager, policy Policy, flexibleSubjects, forcedSecondShift, deadGroups map[string]bool, logger *zap.Logger) *PlacementEngine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlacementEngine{
		conflicts:         conflicts,
		rooms:             rooms,
		policy:            policy,
		flexibleSubjects:  flexibleSubjects,
		forcedSecondShift: forcedSecondShift,
		deadGroups:        deadGroups,
		logger:            logger,
	}
}

// shiftFor implements the shift rule of spec.md §6: year 1 mandatory
// first, year 2 mandatory second, year 3 first (with no fallback to
// second; Policy.ThirdYearShiftFallback is not read), years 4-5 default to
// second, and the forced-second-shift override always wins.
func (e *PlacementEngine) shiftFor(groups []string) model.Shift {
	forced := false
	year := 0
	for i, g := range groups {
		if e.forcedSecondShift[g] {
			forced = true
		}
		if i == 0 {
			year = model.ParseGroup(g).Year
		}
	}
	if forced {
		return model.SecondShift
	}
	switch year {
	case 1:
		return model.FirstShift
	case 2:
		return model.SecondShift
	case 3:
		return model.FirstShift
	case 4, 5:
		return model.SecondShift
	default:
		return model.FirstShift
	}
}

// sharedSpecialtyPrefix returns the specialty prefix shared by every group
// of the stream, or "" if the groups don't all share one (spec.md §4.6
// tier 3).
func sharedSpecialtyPrefix(groups []string) string {
	if len(groups) == 0 {
		return ""
	}
	prefix := model.ParseGroup(groups[0]).SpecialtyPrefix
	if prefix == "" {
		return ""
	}
	for _, g := range groups[1:] {
		if model.ParseGroup(g).SpecialtyPrefix != prefix {
			return ""
		}
	}
	return prefix
}

// dayCandidates builds the ordered day list of spec.md §4.7 step 1-2:
// flexible subjects try every weekday; non-flexible subjects exhaust
// {Mon,Tue,Wed} before {Thu,Fri}. Within each phase, days are sorted by
// ascending total group-day load (step 2).
func (e *PlacementEngine) dayCandidates(subject string, groups []string) []model.Day {
	load := func(day model.Day) int {
		total := 0
		for _, g := range groups {
			if e.deadGroups[g] && !e.policy.DeadGroupsOccupyIndexes {
				continue
			}
			total += e.conflicts.GroupDayLoad(g, day)
		}
		return total
	}
	sortByLoad := func(days []model.Day) []model.Day {
		out := append([]model.Day(nil), days...)
		for i := 1; i < len(out); i++ {
			for j := i; j > 0 && load(out[j]) < load(out[j-1]); j-- {
				out[j], out[j-1] = out[j-1], out[j]
			}
		}
		return out
	}

	if e.flexibleSubjects[subject] {
		return sortByLoad([]model.Day{model.Monday, model.Tuesday, model.Wednesday, model.Thursday, model.Friday})
	}
	return append(
		sortByLoad([]model.Day{model.Monday, model.Tuesday, model.Wednesday}),
		sortByLoad([]model.Day{model.Thursday, model.Friday})...,
	)
}

func slotRange(first, last model.Slot) []model.Slot {
	out := make([]model.Slot, 0, int(last-first)+1)
	for s := first; s <= last; s++ {
		out = append(out, s)
	}
	return out
}

func slotsFrom(start model.Slot, h int) []model.Slot {
	out := make([]model.Slot, h)
	for i := 0; i < h; i++ {
		out[i] = start + model.Slot(i)
	}
	return out
}

// Place runs the search of spec.md §4.7 for a single stream, reserving
// its slots and room on success. It returns either an Assignment slice
// (one per reserved slot, week_type = both) or an UnscheduledStream.
func (e *PlacementEngine) Place(stream model.Stream) ([]model.Assignment, *model.UnscheduledStream) {
	shift := e.shiftFor(stream.Groups)
	first, last := shift.SlotRange(e.policy.ExtendShiftBoundary)
	h := stream.Hours.Max()
	specialtyPrefix := sharedSpecialtyPrefix(stream.Groups)
	week := model.Both

	bestReason := model.AllSlotsExhausted
	recordReason := func(r model.UnscheduledReason) {
		bestReason = model.MostSpecific(bestReason, r)
	}

	for _, day := range e.dayCandidates(stream.Subject, stream.Groups) {
		candidateSlots := slotRange(first, last)
		for _, start := range candidateSlots {
			if int(start)+h-1 > int(last) {
				recordReason(model.NoConsecutiveSlots)
				continue
			}
			slots := slotsFrom(start, h)

			ok, reason := e.checkSlots(stream, day, slots, week)
			if !ok {
				recordReason(reason)
				continue
			}

			room, roomOK, hardFail := e.rooms.Resolve(stream.Subject, stream.Instructor, specialtyPrefix, stream.Type.String(), stream.StudentCount, day, slots, week)
			if hardFail || !roomOK {
				recordReason(model.NoRoomAvailable)
				continue
			}

			return e.commit(stream, day, slots, week, room), nil
		}
	}

	return nil, &model.UnscheduledStream{
		StreamID:   stream.ID,
		Subject:    stream.Subject,
		Instructor: stream.Instructor,
		Groups:     stream.Groups,
		Reason:     bestReason,
		Detail:     "exhausted all candidate days and slots",
	}
}

// checkSlots runs the C5 instructor/group/building-gap checks across every
// slot the stream would occupy, resolving a tentative address once (the
// room RoomManager.Resolve selects across all of those slots) for the
// building-gap check (spec.md §4.7 step 3).
func (e *PlacementEngine) checkSlots(stream model.Stream, day model.Day, slots []model.Slot, week model.WeekType) (bool, model.UnscheduledReason) {
	specialtyPrefix := sharedSpecialtyPrefix(stream.Groups)

	tentativeRoom, roomOK, hardFail := e.rooms.Resolve(stream.Subject, stream.Instructor, specialtyPrefix, stream.Type.String(), stream.StudentCount, day, slots, week)
	if hardFail {
		return false, model.NoRoomAvailable
	}

	for _, slot := range slots {
		if e.conflicts.InstructorDeclaredUnavailable(stream.Instructor, day, slot) {
			return false, model.InstructorUnavailable
		}
		if e.conflicts.InstructorReserved(stream.Instructor, day, slot, week) {
			return false, model.InstructorConflict
		}
	}
	for _, slot := range slots {
		if !e.conflicts.AreGroupsAvailable(stream.Groups, e.deadGroups, day, slot, week) {
			return false, model.GroupConflict
		}
	}

	if roomOK {
		for _, slot := range slots {
			if !e.conflicts.CheckBuildingGap(stream.Groups, e.deadGroups, day, slot, tentativeRoom.Address) {
				return false, model.BuildingGapRequired
			}
		}
	}

	return true, model.AllSlotsExhausted
}

func (e *PlacementEngine) commit(stream model.Stream, day model.Day, slots []model.Slot, week model.WeekType, room model.Room) []model.Assignment {
	assignments := make([]model.Assignment, 0, len(slots))
	for _, slot := range slots {
		e.conflicts.Reserve(stream.Instructor, stream.Groups, e.deadGroups, day, slot, week, room.Address)
		e.rooms.Reserve(room.Name, day, []model.Slot{slot}, week)
		assignments = append(assignments, model.Assignment{
			StreamID:     stream.ID,
			Subject:      stream.Subject,
			Instructor:   stream.Instructor,
			Groups:       stream.Groups,
			StudentCount: stream.StudentCount,
			Day:          day,
			Slot:         slot,
			Room:         room.Name,
			RoomAddress:  room.Address,
			WeekType:     week,
		})
	}
	e.logger.Debug("stream placed",
		zap.String("stream_id", stream.ID),
		zap.String("day", day.String()),
		zap.Int("slots", len(slots)),
		zap.String("room", room.Name),
	)
	return assignments
}

// Run places every stream in priority order, returning the ordered
// assignments and unscheduled list (spec.md §4.9). Streams must already
// be sorted by SortStreams; Run does not reorder them.
func (e *PlacementEngine) Run(streams []model.Stream) ([]model.Assignment, []model.UnscheduledStream) {
	var assignments []model.Assignment
	var unscheduled []model.UnscheduledStream

	for _, stream := range streams {
		placed, reason := e.Place(stream)
		if reason != nil {
			e.logger.Warn("stream unscheduled",
				zap.String("stream_id", stream.ID),
				zap.String("reason", reason.Reason.String()),
			)
			unscheduled = append(unscheduled, *reason)
			continue
		}
		assignments = append(assignments, placed...)
	}
	return assignments, unscheduled
}
