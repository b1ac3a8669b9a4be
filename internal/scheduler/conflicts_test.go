package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wkatu/timetable/internal/model"
)

func TestConflictTrackerInstructorAvailability(t *testing.T) {
	unavailable := map[string]map[model.Day]map[model.Slot]bool{
		"Ivanov": {model.Friday: {1: true, 2: true, 3: true, 4: true, 5: true}},
	}
	tracker := NewConflictTracker(DefaultPolicy, model.NearbyGroups{}, unavailable)

	assert.False(t, tracker.IsInstructorAvailable("Ivanov", model.Friday, 1, model.Both))
	assert.True(t, tracker.IsInstructorAvailable("Ivanov", model.Monday, 1, model.Both))
}

func TestConflictTrackerReserveBlocksSameInstructor(t *testing.T) {
	tracker := NewConflictTracker(DefaultPolicy, model.NearbyGroups{}, nil)
	tracker.Reserve("Ivanov", []string{"ИС-11"}, nil, model.Monday, 1, model.Both, "Addr A")

	assert.False(t, tracker.IsInstructorAvailable("Ivanov", model.Monday, 1, model.Both))
	assert.False(t, tracker.AreGroupsAvailable([]string{"ИС-11"}, nil, model.Monday, 1, model.Both))
}

func TestConflictTrackerDeadGroupsSkippedByDefault(t *testing.T) {
	tracker := NewConflictTracker(DefaultPolicy, model.NearbyGroups{}, nil)
	dead := map[string]bool{"ИС-99": true}
	tracker.Reserve("Ivanov", []string{"ИС-99"}, dead, model.Monday, 1, model.Both, "Addr A")

	assert.True(t, tracker.AreGroupsAvailable([]string{"ИС-99"}, dead, model.Monday, 1, model.Both))
	assert.Equal(t, 0, tracker.GroupDayLoad("ИС-99", model.Monday))
}

func TestConflictTrackerDeadGroupsOccupyIndexesWhenPolicySet(t *testing.T) {
	policy := Policy{DeadGroupsOccupyIndexes: true}
	tracker := NewConflictTracker(policy, model.NearbyGroups{}, nil)
	dead := map[string]bool{"ИС-99": true}
	tracker.Reserve("Ivanov", []string{"ИС-99"}, dead, model.Monday, 1, model.Both, "Addr A")

	assert.False(t, tracker.AreGroupsAvailable([]string{"ИС-99"}, dead, model.Monday, 1, model.Both))
}

func TestConflictTrackerBuildingGap(t *testing.T) {
	nearby := model.NewNearbyGroups([][]string{{"Addr A", "Addr B"}})
	tracker := NewConflictTracker(DefaultPolicy, nearby, nil)

	tracker.Reserve("Orlov", []string{"ИС-11"}, nil, model.Monday, 2, model.Both, "Addr A")

	// a slot-3 placement at a nearby address must pass
	assert.True(t, tracker.CheckBuildingGap([]string{"ИС-11"}, nil, model.Monday, 3, "Addr B"))
	// a slot-3 placement at a non-nearby address must fail
	assert.False(t, tracker.CheckBuildingGap([]string{"ИС-11"}, nil, model.Monday, 3, "Addr C"))
}

func TestResolveUnavailabilityMapsStartTimesToSlots(t *testing.T) {
	raw := map[string]map[string][]string{
		"Ivanov": {"Fri": {"09:00", "10:00"}},
	}
	resolved := ResolveUnavailability(raw)
	require.Contains(t, resolved, "Ivanov")
	slots := resolved["Ivanov"][model.Friday]
	assert.True(t, slots[1])
	assert.True(t, slots[2])
	assert.False(t, slots[3])
}
