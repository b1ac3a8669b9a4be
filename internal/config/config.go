// Package config holds the Go types for the external-interface inputs
// spec.md §6 names (rooms, dead groups, forced-shift groups, instructor
// availability, instructor/subject room preferences, instructor-day
// constraints, group-buildings, nearby buildings). All of it arrives as
// already-constructed values; loading it from a file is an external
// collaborator's job (spec.md §1), but it is validated here before it
// reaches the workload parser or the scheduler, grounded on
// noah-isme/sma-adp-api's internal/dto validate-tag convention.
package config

import (
	"github.com/go-playground/validator/v10"

	"github.com/wkatu/timetable/internal/model"
)

// RoomSpec is one entry of the external rooms list (spec.md §6 item 1).
type RoomSpec struct {
	Name      string `validate:"required"`
	Capacity  int    `validate:"gte=1"`
	Address   string `validate:"required"`
	IsSpecial bool
}

// ToRoom converts an external room spec into the model.Room the
// scheduler operates on.
func (r RoomSpec) ToRoom() model.Room {
	return model.Room{Name: r.Name, Capacity: r.Capacity, Address: r.Address, IsSpecial: r.IsSpecial}
}

// HHMM is a "HH:MM" time-of-day string, as used in instructor
// unavailability lists (spec.md §6 item 4).
type HHMM = string

// RoomClassLists lets a requirement/preference be specific to lecture,
// practice, or lab room lists instead of one flat location list (spec.md
// §6 items 5, 7).
type RoomClassLists struct {
	Locations []string `validate:"omitempty,dive,required"`
	Lecture   []string `validate:"omitempty,dive,required"`
	Practice  []string `validate:"omitempty,dive,required"`
	Lab       []string `validate:"omitempty,dive,required"`
}

// RoomsFor returns classList (a class-specific list, e.g. from
// ForStreamType), falling back to the flat Locations list when classList
// is empty.
func (c RoomClassLists) RoomsFor(classList []string) []string {
	if len(classList) > 0 {
		return classList
	}
	return c.Locations
}

// ForStreamType picks the lecture/practice/lab sublist matching kind
// ("lecture", "practical" or "lab"), the class-specific half of spec.md
// §6 items 5 and 7.
func (c RoomClassLists) ForStreamType(kind string) []string {
	switch kind {
	case "lecture":
		return c.Lecture
	case "practical":
		return c.Practice
	case "lab":
		return c.Lab
	default:
		return nil
	}
}

// Workload is the full set of external-interface inputs C4/C7 consume
// (spec.md §6).
type Workload struct {
	Rooms                   []RoomSpec                    `validate:"dive"`
	DeadGroups              []string
	ForcedSecondShift       []string
	InstructorAvailability  map[string]map[string][]HHMM
	InstructorRoomPrefs     map[string]RoomClassLists           `validate:"dive"`
	InstructorDayLimits     map[string]InstructorDayConstraint  `validate:"dive"`
	SubjectRoomRequirements map[string]RoomClassLists           `validate:"dive"`
	GroupBuildings          map[string]GroupBuilding            `validate:"dive"`
	NearbyBuildings         [][]string
}

// InstructorDayConstraint is the per-year allowed-days map plus the
// one-day-per-week flag spec.md §6 item 6 describes. The placement engine
// consults neither field; see DESIGN.md's Open Question decisions.
type InstructorDayConstraint struct {
	DaysByYear    map[int][]string
	OneDayPerWeek bool
}

// GroupBuilding is one specialty prefix's declared building set (spec.md
// §6 item 8): a list of addresses, each optionally restricted to specific
// rooms.
type GroupBuilding struct {
	Addresses []AddressRooms `validate:"dive"`
}

// AddressRooms pairs an address with the (optional) room subset declared
// for it.
type AddressRooms struct {
	Address string `validate:"required"`
	Rooms   []string
}

// Validate runs struct-tag validation over the whole workload config.
func Validate(w Workload) error {
	v := validator.New()
	return v.Struct(w)
}

// DeadGroupSet turns the DeadGroups slice into a lookup set.
func (w Workload) DeadGroupSet() map[string]bool {
	out := make(map[string]bool, len(w.DeadGroups))
	for _, g := range w.DeadGroups {
		out[g] = true
	}
	return out
}

// ModelRooms converts every declared room into its model.Room form.
func (w Workload) ModelRooms() []model.Room {
	out := make([]model.Room, len(w.Rooms))
	for i, r := range w.Rooms {
		out[i] = r.ToRoom()
	}
	return out
}

// ForcedSecondShiftSet turns the ForcedSecondShift slice into a lookup set.
func (w Workload) ForcedSecondShiftSet() map[string]bool {
	out := make(map[string]bool, len(w.ForcedSecondShift))
	for _, g := range w.ForcedSecondShift {
		out[g] = true
	}
	return out
}
