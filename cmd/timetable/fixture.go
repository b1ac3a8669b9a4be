package main

import (
	"github.com/wkatu/timetable/internal/config"
	"github.com/wkatu/timetable/internal/workload"
)

// fixtureSheet builds a minimal one-subject, one-instructor worksheet
// exercising C4's full pipeline (a "1" data-start marker, a known
// instructor column; no subject cell is blank, so forward-fill has nothing
// to fill) without needing a real workbook reader
// (spec.md §1, §6: loading the workbook itself is an external
// collaborator's job).
func fixtureSheet() workload.Sheet {
	return workload.Sheet{
		Name: "demo",
		Rows: [][]string{
			{"1", "", "", "", "", "", "", ""},
			{"", "Mathematics", "ИС-11", "25", "30", "0", "0", "рус", "проф. Ivanov"},
		},
	}
}

// fixtureConfig builds the external-interface values spec.md §6 names:
// one room, no dead groups, no forced shifts, no availability
// constraints, no room preferences or requirements, no nearby buildings.
func fixtureConfig() config.Workload {
	return config.Workload{
		Rooms: []config.RoomSpec{
			{Name: "A100", Capacity: 50, Address: "Main St 1"},
		},
	}
}
