package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wkatu/timetable/internal/config"
	"github.com/wkatu/timetable/internal/model"
)

func newTestEngine(rooms []model.Room, subjectReq map[string]config.RoomClassLists, nearby model.NearbyGroups) (*PlacementEngine, *ConflictTracker, *RoomManager) {
	tracker := NewConflictTracker(DefaultPolicy, nearby, nil)
	rm := NewRoomManager(rooms, subjectReq, nil, nil)
	engine := NewPlacementEngine(tracker, rm, DefaultPolicy, nil, nil, nil, zap.NewNop())
	return engine, tracker, rm
}

// TestPlaceSingleLecturePlentyOfRooms replays spec.md §8 scenario 1.
func TestPlaceSingleLecturePlentyOfRooms(t *testing.T) {
	rooms := []model.Room{{Name: "RoomA", Capacity: 50, Address: "A"}}
	engine, _, _ := newTestEngine(rooms, nil, model.NearbyGroups{})

	s := model.Stream{
		ID:           "s1",
		Subject:      "Math",
		Instructor:   "Ivanov",
		Groups:       []string{"ИС-11", "ИС-12"},
		StudentCount: 40,
		Hours:        model.WeeklyHours{Total: 30, OddWeek: 2, EvenWeek: 2},
	}

	assignments, unscheduled := engine.Place(s)
	require.Nil(t, unscheduled)
	require.Len(t, assignments, 2)
	assert.Equal(t, model.Monday, assignments[0].Day)
	assert.Equal(t, model.Slot(1), assignments[0].Slot)
	assert.Equal(t, "RoomA", assignments[0].Room)
	assert.Equal(t, "A", assignments[0].RoomAddress)
	assert.Equal(t, model.Both, assignments[0].WeekType)
}

// TestPlaceInstructorFridayBlackout replays spec.md §8 scenario 2.
func TestPlaceInstructorFridayBlackout(t *testing.T) {
	rooms := []model.Room{{Name: "RoomA", Capacity: 50, Address: "A"}}
	tracker := NewConflictTracker(DefaultPolicy, model.NearbyGroups{}, map[string]map[model.Day]map[model.Slot]bool{
		"Ivanov": {model.Friday: {1: true, 2: true, 3: true, 4: true, 5: true}},
	})
	rm := NewRoomManager(rooms, nil, nil, nil)
	engine := NewPlacementEngine(tracker, rm, DefaultPolicy, nil, nil, nil, zap.NewNop())

	s := model.Stream{
		ID:           "s1",
		Subject:      "Math",
		Instructor:   "Ivanov",
		Groups:       []string{"ИС-11"},
		StudentCount: 20,
		Hours:        model.WeeklyHours{Total: 7, OddWeek: 0, EvenWeek: 1},
	}

	assignments, unscheduled := engine.Place(s)
	require.Nil(t, unscheduled)
	require.Len(t, assignments, 1)
	assert.Contains(t, []model.Day{model.Monday, model.Tuesday, model.Wednesday}, assignments[0].Day)
	assert.Equal(t, model.Slot(1), assignments[0].Slot)
}

// TestPlaceInstructorAlreadyBookedIsInstructorConflict ensures a collision
// with a reservation already made this run is reported as InstructorConflict,
// not InstructorUnavailable (spec.md §4.7 step 4's precedence between the
// two reasons).
func TestPlaceInstructorAlreadyBookedIsInstructorConflict(t *testing.T) {
	rooms := []model.Room{{Name: "RoomA", Capacity: 50, Address: "A"}}
	engine, tracker, _ := newTestEngine(rooms, nil, model.NearbyGroups{})

	tracker.Reserve("Orlov", []string{"ИС-99"}, nil, model.Monday, 1, model.Both, "A")

	s := model.Stream{
		ID:           "s2",
		Subject:      "Math",
		Instructor:   "Orlov",
		Groups:       []string{"ИС-11"},
		StudentCount: 20,
		Hours:        model.WeeklyHours{Total: 7, OddWeek: 0, EvenWeek: 1},
	}

	ok, reason := engine.checkSlots(s, model.Monday, []model.Slot{1}, model.Both)
	assert.False(t, ok)
	assert.Equal(t, model.InstructorConflict, reason)
}

func TestPlaceSecondYearUsesSecondShift(t *testing.T) {
	rooms := []model.Room{{Name: "RoomA", Capacity: 50, Address: "A"}}
	engine, _, _ := newTestEngine(rooms, nil, model.NearbyGroups{})

	s := model.Stream{
		ID:           "s1",
		Subject:      "Math",
		Instructor:   "Ivanov",
		Groups:       []string{"ИС-12"},
		StudentCount: 20,
		Hours:        model.WeeklyHours{Total: 7, OddWeek: 0, EvenWeek: 1},
	}

	assignments, unscheduled := engine.Place(s)
	require.Nil(t, unscheduled)
	require.Len(t, assignments, 1)
	assert.GreaterOrEqual(t, int(assignments[0].Slot), 6)
}

func TestPlaceNoRoomAvailableIsReported(t *testing.T) {
	engine, _, _ := newTestEngine(nil, nil, model.NearbyGroups{})

	s := model.Stream{
		ID:           "s1",
		Subject:      "Math",
		Instructor:   "Ivanov",
		Groups:       []string{"ИС-11"},
		StudentCount: 20,
		Hours:        model.WeeklyHours{Total: 7, OddWeek: 0, EvenWeek: 1},
	}

	_, unscheduled := engine.Place(s)
	require.NotNil(t, unscheduled)
	assert.Equal(t, model.NoRoomAvailable, unscheduled.Reason)
}

// TestCheckSlotsBuildingGap replays spec.md §8 scenario 4 at the C5/C7
// boundary: a group already at address A during the adjacent slot rejects
// a non-nearby address B, but accepts a nearby one.
func TestCheckSlotsBuildingGap(t *testing.T) {
	nearby := model.NewNearbyGroups([][]string{{"A", "C"}})
	tracker := NewConflictTracker(DefaultPolicy, nearby, nil)
	tracker.Reserve("Ivanov", []string{"ИС-11"}, nil, model.Monday, 2, model.Both, "A")

	rooms := []model.Room{
		{Name: "RoomB", Capacity: 50, Address: "B"},
		{Name: "RoomC", Capacity: 50, Address: "C"},
	}
	rm := NewRoomManager(rooms, map[string]config.RoomClassLists{
		"Chem": {Locations: []string{"RoomB"}},
		"Bio":  {Locations: []string{"RoomC"}},
	}, nil, nil)
	engine := NewPlacementEngine(tracker, rm, DefaultPolicy, nil, nil, nil, zap.NewNop())

	rejected := model.Stream{Subject: "Chem", Instructor: "Orlov", Groups: []string{"ИС-11"}, StudentCount: 10}
	ok, reason := engine.checkSlots(rejected, model.Monday, []model.Slot{3}, model.Both)
	assert.False(t, ok)
	assert.Equal(t, model.BuildingGapRequired, reason)

	accepted := model.Stream{Subject: "Bio", Instructor: "Orlov", Groups: []string{"ИС-11"}, StudentCount: 10}
	ok, _ = engine.checkSlots(accepted, model.Monday, []model.Slot{3}, model.Both)
	assert.True(t, ok)
}

func TestRunPlacesInPriorityOrder(t *testing.T) {
	rooms := []model.Room{{Name: "RoomA", Capacity: 50, Address: "A"}}
	engine, _, rm := newTestEngine(rooms, nil, model.NearbyGroups{})

	streams := []model.Stream{
		{ID: "a", Subject: "Math", Instructor: "I1", Groups: []string{"ИС-11"}, StudentCount: 20, Hours: model.WeeklyHours{Total: 7, EvenWeek: 1}},
		{ID: "b", Subject: "Physics", Instructor: "I2", Groups: []string{"ИС-12"}, StudentCount: 20, Hours: model.WeeklyHours{Total: 7, EvenWeek: 1}},
	}

	assignments, unscheduled := engine.Run(streams)
	assert.Len(t, unscheduled, 0)
	require.Len(t, assignments, 2)
	assert.Equal(t, "a", assignments[0].StreamID)
	assert.Equal(t, "b", assignments[1].StreamID)

	result := Aggregate(assignments, unscheduled, rm)
	assert.Equal(t, 2, result.Statistics.TotalAssigned)
}
