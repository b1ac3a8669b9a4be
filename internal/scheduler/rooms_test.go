package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wkatu/timetable/internal/config"
	"github.com/wkatu/timetable/internal/model"
)

func TestRoomManagerPreferredSelectionSmallestFittingRoom(t *testing.T) {
	rooms := []model.Room{
		{Name: "A50", Capacity: 50, Address: "Addr A"},
		{Name: "B40", Capacity: 40, Address: "Addr A"},
		{Name: "C200", Capacity: 200, Address: "Addr A"},
	}
	rm := NewRoomManager(rooms, nil, nil, nil)

	room, ok, hardFail := rm.Resolve("Physics", "Orlov", "", "lecture", 35, model.Monday, []model.Slot{1}, model.Both)
	require.False(t, hardFail)
	require.True(t, ok)
	assert.Equal(t, "B40", room.Name)
}

// TestRoomManagerCapacityBuffer replays spec.md §8 scenario 3: a 30-student
// stream with only rooms of capacity {18, 16, 14} must land in the
// 18-capacity room via the buffer fallback (buffer(30) = 15, 18+15=33>=30).
func TestRoomManagerCapacityBuffer(t *testing.T) {
	rooms := []model.Room{
		{Name: "R18", Capacity: 18, Address: "Addr A"},
		{Name: "R16", Capacity: 16, Address: "Addr A"},
		{Name: "R14", Capacity: 14, Address: "Addr A"},
	}
	rm := NewRoomManager(rooms, nil, nil, nil)

	room, ok, hardFail := rm.Resolve("Chemistry", "Orlov", "", "lecture", 30, model.Monday, []model.Slot{1}, model.Both)
	require.False(t, hardFail)
	require.True(t, ok)
	assert.Equal(t, "R18", room.Name)
}

func TestRoomManagerNoRoomWhenBufferInsufficient(t *testing.T) {
	rooms := []model.Room{
		{Name: "R10", Capacity: 10, Address: "Addr A"},
	}
	rm := NewRoomManager(rooms, nil, nil, nil)

	_, ok, hardFail := rm.Resolve("Chemistry", "Orlov", "", "lecture", 90, model.Monday, []model.Slot{1}, model.Both)
	assert.False(t, hardFail)
	assert.False(t, ok)
}

// TestRoomManagerSpecialtyExclusivity replays spec.md §8 scenario 5: a
// ВЕТ-only group-building declaration must win over larger general-pool
// rooms, and must exclude other specialties from that address.
func TestRoomManagerSpecialtyExclusivity(t *testing.T) {
	rooms := []model.Room{
		{Name: "VetRoom", Capacity: 30, Address: "ул. Жангир хана, 51/4"},
		{Name: "BigGeneral", Capacity: 300, Address: "Addr B"},
	}
	groupBldg := map[string]config.GroupBuilding{
		"ВЕТ": {Addresses: []config.AddressRooms{{Address: "ул. Жангир хана, 51/4"}}},
	}
	rm := NewRoomManager(rooms, nil, nil, groupBldg)

	room, ok, hardFail := rm.Resolve("Anatomy", "Orlov", "ВЕТ", "lecture", 25, model.Monday, []model.Slot{1}, model.Both)
	require.False(t, hardFail)
	require.True(t, ok)
	assert.Equal(t, "VetRoom", room.Name)

	// a non-ВЕТ stream must not be offered the exclusive address, even via
	// the general pool; it falls back to the general room instead.
	other, ok, _ := rm.Resolve("History", "Orlov", "", "lecture", 25, model.Monday, []model.Slot{1}, model.Both)
	require.True(t, ok)
	assert.Equal(t, "BigGeneral", other.Name)
}

func TestRoomManagerSubjectRequirementHardFailsWithNoFallthrough(t *testing.T) {
	rooms := []model.Room{
		{Name: "General", Capacity: 50, Address: "Addr A"},
	}
	subjectReq := map[string]config.RoomClassLists{
		"Anatomy": {Locations: []string{"NoSuchRoom"}},
	}
	rm := NewRoomManager(rooms, subjectReq, nil, nil)

	_, ok, hardFail := rm.Resolve("Anatomy", "Orlov", "", "lecture", 25, model.Monday, []model.Slot{1}, model.Both)
	assert.False(t, ok)
	assert.True(t, hardFail)
}

func TestRoomManagerReserveBlocksSubsequentUse(t *testing.T) {
	rooms := []model.Room{{Name: "A50", Capacity: 50, Address: "Addr A"}}
	rm := NewRoomManager(rooms, nil, nil, nil)

	rm.Reserve("A50", model.Monday, []model.Slot{1}, model.Both)

	_, ok, hardFail := rm.Resolve("Physics", "Orlov", "", "lecture", 10, model.Monday, []model.Slot{1}, model.Both)
	assert.False(t, hardFail)
	assert.False(t, ok)
}

func TestRoomManagerUtilization(t *testing.T) {
	rooms := []model.Room{{Name: "A50", Capacity: 50, Address: "Addr A"}}
	rm := NewRoomManager(rooms, nil, nil, nil)
	assert.Equal(t, 0.0, rm.Utilization("A50"))

	rm.Reserve("A50", model.Monday, []model.Slot{1}, model.Both)
	assert.InDelta(t, 1.0/(5*13), rm.Utilization("A50"), 0.0001)
}
