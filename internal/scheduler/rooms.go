package scheduler

import (
	"sort"

	"github.com/wkatu/timetable/internal/config"
	"github.com/wkatu/timetable/internal/model"
)

// RoomManager owns C6's room-occupancy map and the four-tier candidate
// selection described in spec.md §4.6. The occupancy map is written only
// by the placement engine through Reserve, after every C5 check has
// already passed (spec.md §5).
type RoomManager struct {
	rooms      []model.Room
	byName     map[string]model.Room
	occupancy  map[string]*grid
	subjectReq map[string]config.RoomClassLists
	instrPrefs map[string]config.RoomClassLists
	groupBldg  map[string]config.GroupBuilding
	exclusive  map[string]string // address -> the one specialty prefix allowed there
}

// NewRoomManager builds a manager over the given room list and the
// subject/instructor/group-building declarations from an external config
// (spec.md §6 items 1, 5, 7, 8).
func NewRoomManager(rooms []model.Room, subjectReq, instrPrefs map[string]config.RoomClassLists, groupBldg map[string]config.GroupBuilding) *RoomManager {
	rm := &RoomManager{
		rooms:      rooms,
		byName:     make(map[string]model.Room, len(rooms)),
		occupancy:  make(map[string]*grid, len(rooms)),
		subjectReq: subjectReq,
		instrPrefs: instrPrefs,
		groupBldg:  groupBldg,
		exclusive:  make(map[string]string),
	}
	for _, r := range rooms {
		rm.byName[r.Name] = r
		rm.occupancy[r.Name] = &grid{}
	}
	for prefix := range model.ExclusiveSpecialties {
		decl, ok := groupBldg[prefix]
		if !ok {
			continue
		}
		for _, addr := range decl.Addresses {
			rm.exclusive[addr.Address] = prefix
		}
	}
	return rm
}

func (rm *RoomManager) roomGrid(name string) *grid {
	g, ok := rm.occupancy[name]
	if !ok {
		g = &grid{}
		rm.occupancy[name] = g
	}
	return g
}

// specialtyMayUse reports whether a stream whose groups all share
// specialtyPrefix (empty if the groups don't share one) is allowed to use
// a room at the given address, honoring specialty-exclusive buildings
// (spec.md §4.6 tier 3, §6 item 8).
func (rm *RoomManager) specialtyMayUse(address, specialtyPrefix string) bool {
	owner, ok := rm.exclusive[address]
	if !ok {
		return true
	}
	return owner == specialtyPrefix
}

// availableAt filters candidates to rooms free across every slot in
// slots (spec.md §4.7 step 3: "C6 pessimistically confirms for all H
// slots") and allowed by the specialty-exclusivity rule.
func (rm *RoomManager) availableAt(candidates []string, day model.Day, slots []model.Slot, week model.WeekType, specialtyPrefix string) []string {
	var out []string
	for _, name := range candidates {
		room, ok := rm.byName[name]
		if !ok {
			continue
		}
		if !rm.specialtyMayUse(room.Address, specialtyPrefix) {
			continue
		}
		g := rm.roomGrid(name)
		free := true
		for _, slot := range slots {
			if !g.available(day, slot, week.Bits()) {
				free = false
				break
			}
		}
		if free {
			out = append(out, name)
		}
	}
	return out
}

// generalPool lists every non-special room allowed for specialtyPrefix,
// available across slots: spec.md §4.6 tier 4.
func (rm *RoomManager) generalPool(day model.Day, slots []model.Slot, week model.WeekType, specialtyPrefix string) []string {
	var names []string
	for _, r := range rm.rooms {
		if r.IsSpecial {
			continue
		}
		names = append(names, r.Name)
	}
	sort.Strings(names)
	return rm.availableAt(names, day, slots, week, specialtyPrefix)
}

// candidateRooms runs the four-tier selection of spec.md §4.6 and reports
// which tier (1-based) produced the non-empty set, or a hard failure when
// tier 1 was declared but empty after filtering (no fallthrough).
func (rm *RoomManager) candidateRooms(subject, instructor string, specialtyPrefix string, kind string, day model.Day, slots []model.Slot, week model.WeekType) (names []string, tier int, hardFail bool) {
	if req, ok := rm.subjectReq[subject]; ok {
		list := req.RoomsFor(req.ForStreamType(kind))
		cands := rm.availableAt(list, day, slots, week, specialtyPrefix)
		if len(cands) == 0 {
			return nil, 1, true
		}
		return cands, 1, false
	}

	if prefs, ok := rm.instrPrefs[instructor]; ok {
		list := prefs.RoomsFor(prefs.ForStreamType(kind))
		if len(list) > 0 {
			if cands := rm.availableAt(list, day, slots, week, specialtyPrefix); len(cands) > 0 {
				return cands, 2, false
			}
		}
	}

	if specialtyPrefix != "" {
		if decl, ok := rm.groupBldg[specialtyPrefix]; ok {
			var list []string
			for _, ar := range decl.Addresses {
				if len(ar.Rooms) > 0 {
					list = append(list, ar.Rooms...)
					continue
				}
				for _, r := range rm.rooms {
					if r.Address == ar.Address {
						list = append(list, r.Name)
					}
				}
			}
			sort.Strings(list)
			if cands := rm.availableAt(list, day, slots, week, specialtyPrefix); len(cands) > 0 {
				return cands, 3, false
			}
		}
	}

	return rm.generalPool(day, slots, week, specialtyPrefix), 4, false
}

// selectRoom implements the preferred-selection / buffer-fallback choice
// within a candidate set (spec.md §4.6).
func (rm *RoomManager) selectRoom(candidates []string, studentCount int) (model.Room, bool) {
	best := -1
	var bestRoom model.Room
	for _, name := range candidates {
		room := rm.byName[name]
		if room.Capacity < studentCount {
			continue
		}
		if best == -1 || room.Capacity < bestRoom.Capacity || (room.Capacity == bestRoom.Capacity && room.Name < bestRoom.Name) {
			best = room.Capacity
			bestRoom = room
		}
	}
	if best != -1 {
		return bestRoom, true
	}

	buffer := model.Buffer(studentCount)
	best = -1
	for _, name := range candidates {
		room := rm.byName[name]
		if float64(room.Capacity)+buffer < float64(studentCount) {
			continue
		}
		if best == -1 || room.Capacity > bestRoom.Capacity || (room.Capacity == bestRoom.Capacity && room.Name < bestRoom.Name) {
			best = room.Capacity
			bestRoom = room
		}
	}
	if best != -1 {
		return bestRoom, true
	}
	return model.Room{}, false
}

// Resolve picks the room for a stream over the H consecutive slots of a
// tentative (day, slots, week), following the four-tier policy and the
// preferred/buffer selection rule. kind is the stream's type
// ("lecture"/"practical"/"lab"), selecting the class-specific sublist of
// a requirement/preference (spec.md §4.6). The third return value is true
// only for a hard tier-1 failure (NoRoomAvailable with no fallthrough).
func (rm *RoomManager) Resolve(subject, instructor string, specialtyPrefix string, kind string, studentCount int, day model.Day, slots []model.Slot, week model.WeekType) (model.Room, bool, bool) {
	candidates, _, hardFail := rm.candidateRooms(subject, instructor, specialtyPrefix, kind, day, slots, week)
	if hardFail {
		return model.Room{}, false, true
	}
	room, ok := rm.selectRoom(candidates, studentCount)
	return room, ok, false
}

// Reserve marks room occupied across every slot in slots. The caller
// guarantees Resolve already selected this room for these slots.
func (rm *RoomManager) Reserve(roomName string, day model.Day, slots []model.Slot, week model.WeekType) {
	g := rm.roomGrid(roomName)
	for _, slot := range slots {
		g.reserve(day, slot, week.Bits())
	}
}

// Utilization returns the fraction of the 13*5 grid reserved for room,
// counting a cell as reserved if either week bit is set (spec.md §4.9).
func (rm *RoomManager) Utilization(roomName string) float64 {
	g, ok := rm.occupancy[roomName]
	if !ok {
		return 0
	}
	reserved := 0
	for d := 0; d < 5; d++ {
		for s := 1; s <= model.SlotsPerDay; s++ {
			if g[d][s] != 0 {
				reserved++
			}
		}
	}
	return float64(reserved) / float64(5*model.SlotsPerDay)
}

// RoomNames returns every managed room's name, for statistics iteration.
func (rm *RoomManager) RoomNames() []string {
	names := make([]string, 0, len(rm.rooms))
	for _, r := range rm.rooms {
		names = append(names, r.Name)
	}
	sort.Strings(names)
	return names
}
