package scheduler

import (
	"strconv"
	"strings"

	"github.com/wkatu/timetable/internal/model"
)

// dayIndex maps a model.Day to its position in the fixed 5-wide grid
// arrays (spec.md §9 design note: prefer dense fixed-size arrays over
// hash maps for the outer grid).
func dayIndex(d model.Day) int { return int(d) }

// grid is the [day][slot] occupancy array spec.md §9 calls for: 5 days by
// 13 slots, one bitmask byte per cell (bit 0 = odd week, bit 1 = even
// week; see model.WeekType.Bits).
type grid [5][model.SlotsPerDay + 1]uint8

func (g *grid) available(day model.Day, slot model.Slot, bits uint8) bool {
	return g[dayIndex(day)][slot]&bits == 0
}

func (g *grid) reserve(day model.Day, slot model.Slot, bits uint8) {
	g[dayIndex(day)][slot] |= bits
}

// addressGrid tracks which address occupies a (day, slot) cell, for the
// building-travel-gap check (spec.md §4.5).
type addressGrid [5][model.SlotsPerDay + 1]string

// ConflictTracker owns C5's reservation indexes: per-instructor and
// per-group occupancy, per-group daily load, and per-group building
// occupancy, plus each instructor's declared unavailable slots (spec.md
// §4.5, §9).
type ConflictTracker struct {
	policy Policy
	nearby model.NearbyGroups

	instructorReserved    map[string]*grid
	instructorUnavailable map[string]*grid // bit 2 (value 4) marks an unavailable cell, any week
	groupReserved         map[string]*grid
	groupDayLoad          map[string]*[5]int
	groupBuilding         map[string]*addressGrid
}

const unavailableBit uint8 = 4

// NewConflictTracker builds an empty tracker. unavailable gives, per
// instructor, the set of (day, slot) cells the instructor declared
// themselves unavailable for (spec.md §6 item 4, already resolved from
// HH:MM start times to slots by the caller, see ResolveUnavailability).
func NewConflictTracker(policy Policy, nearby model.NearbyGroups, unavailable map[string]map[model.Day]map[model.Slot]bool) *ConflictTracker {
	t := &ConflictTracker{
		policy:                policy,
		nearby:                nearby,
		instructorReserved:    make(map[string]*grid),
		instructorUnavailable: make(map[string]*grid),
		groupReserved:         make(map[string]*grid),
		groupDayLoad:          make(map[string]*[5]int),
		groupBuilding:         make(map[string]*addressGrid),
	}
	for instructor, byDay := range unavailable {
		g := &grid{}
		for day, bySlot := range byDay {
			for slot := range bySlot {
				g.reserve(day, slot, unavailableBit)
			}
		}
		t.instructorUnavailable[instructor] = g
	}
	return t
}

func (t *ConflictTracker) instructorGrid(instructor string) *grid {
	g, ok := t.instructorReserved[instructor]
	if !ok {
		g = &grid{}
		t.instructorReserved[instructor] = g
	}
	return g
}

func (t *ConflictTracker) groupGrid(group string) *grid {
	g, ok := t.groupReserved[group]
	if !ok {
		g = &grid{}
		t.groupReserved[group] = g
	}
	return g
}

// IsInstructorAvailable implements spec.md §4.5's is_instructor_available.
func (t *ConflictTracker) IsInstructorAvailable(instructor string, day model.Day, slot model.Slot, week model.WeekType) bool {
	return !t.InstructorDeclaredUnavailable(instructor, day, slot) && !t.InstructorReserved(instructor, day, slot, week)
}

// InstructorDeclaredUnavailable reports whether instructor marked this cell
// unavailable up front (spec.md §6 item 4), independent of anything the
// placement engine has reserved this run.
func (t *ConflictTracker) InstructorDeclaredUnavailable(instructor string, day model.Day, slot model.Slot) bool {
	g, ok := t.instructorUnavailable[instructor]
	return ok && !g.available(day, slot, unavailableBit)
}

// InstructorReserved reports whether instructor is already teaching another
// stream in this cell, distinct from a declared-unavailable cell (spec.md
// §4.7 step 4's InstructorConflict vs InstructorUnavailable distinction).
func (t *ConflictTracker) InstructorReserved(instructor string, day model.Day, slot model.Slot, week model.WeekType) bool {
	return !t.instructorGrid(instructor).available(day, slot, week.Bits())
}

// AreGroupsAvailable implements spec.md §4.5's are_groups_available. A
// group in deadGroups is skipped unless Policy.DeadGroupsOccupyIndexes is
// set.
func (t *ConflictTracker) AreGroupsAvailable(groups []string, deadGroups map[string]bool, day model.Day, slot model.Slot, week model.WeekType) bool {
	for _, group := range groups {
		if deadGroups[group] && !t.policy.DeadGroupsOccupyIndexes {
			continue
		}
		if !t.groupGrid(group).available(day, slot, week.Bits()) {
			return false
		}
	}
	return true
}

// CheckBuildingGap implements spec.md §4.5's check_building_gap: for each
// group, inspect its reservations at slot-1 and slot+1 on the same day; if
// either has an address different from targetAddress and not nearby, the
// check fails.
func (t *ConflictTracker) CheckBuildingGap(groups []string, deadGroups map[string]bool, day model.Day, slot model.Slot, targetAddress string) bool {
	for _, group := range groups {
		if deadGroups[group] && !t.policy.DeadGroupsOccupyIndexes {
			continue
		}
		bg, ok := t.groupBuilding[group]
		if !ok {
			continue
		}
		for _, neighbor := range []model.Slot{slot - 1, slot + 1} {
			if neighbor < 1 || neighbor > model.SlotsPerDay {
				continue
			}
			addr := bg[dayIndex(day)][neighbor]
			if addr == "" || addr == targetAddress {
				continue
			}
			if !t.nearby.Nearby(addr, targetAddress) {
				return false
			}
		}
	}
	return true
}

// Reserve implements spec.md §4.5's reserve: the caller guarantees prior
// checks passed. There is no release primitive (reservation is monotone,
// spec.md §5).
func (t *ConflictTracker) Reserve(instructor string, groups []string, deadGroups map[string]bool, day model.Day, slot model.Slot, week model.WeekType, address string) {
	t.instructorGrid(instructor).reserve(day, slot, week.Bits())

	for _, group := range groups {
		dead := deadGroups[group]
		if dead && !t.policy.DeadGroupsOccupyIndexes {
			continue
		}
		t.groupGrid(group).reserve(day, slot, week.Bits())

		if _, ok := t.groupDayLoad[group]; !ok {
			t.groupDayLoad[group] = &[5]int{}
		}
		t.groupDayLoad[group][dayIndex(day)]++

		bg, ok := t.groupBuilding[group]
		if !ok {
			bg = &addressGrid{}
			t.groupBuilding[group] = bg
		}
		bg[dayIndex(day)][slot] = address
	}
}

// GroupDayLoad returns the number of slots reserved for group on day so
// far this run.
func (t *ConflictTracker) GroupDayLoad(group string, day model.Day) int {
	load, ok := t.groupDayLoad[group]
	if !ok {
		return 0
	}
	return load[dayIndex(day)]
}

// ResolveUnavailability converts the external HH:MM availability map
// (spec.md §6 item 4) into the per-slot form NewConflictTracker expects,
// using spec.md §3's slot-start-time mapping (slot k starts at (8+k):00).
func ResolveUnavailability(raw map[string]map[string][]string) map[string]map[model.Day]map[model.Slot]bool {
	dayByName := map[string]model.Day{
		"Mon": model.Monday, "Tue": model.Tuesday, "Wed": model.Wednesday,
		"Thu": model.Thursday, "Fri": model.Friday,
	}

	out := make(map[string]map[model.Day]map[model.Slot]bool, len(raw))
	for instructor, byDay := range raw {
		days := make(map[model.Day]map[model.Slot]bool)
		for dayName, times := range byDay {
			day, ok := dayByName[dayName]
			if !ok {
				continue
			}
			slots := make(map[model.Slot]bool)
			for _, hhmm := range times {
				if slot, ok := slotForStartTime(hhmm); ok {
					slots[slot] = true
				}
			}
			days[day] = slots
		}
		out[instructor] = days
	}
	return out
}

func slotForStartTime(hhmm string) (model.Slot, bool) {
	parts := strings.SplitN(hhmm, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, false
	}
	slot := hour - 8
	if slot < 1 || slot > model.SlotsPerDay {
		return 0, false
	}
	return model.Slot(slot), true
}
