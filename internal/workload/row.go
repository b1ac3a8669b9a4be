package workload

import "github.com/wkatu/timetable/internal/model"

// Row is one already-scanned spreadsheet row, after subject forward-fill
// (spec.md §4.4 step 3). It is the unit C2/C3 operate on; ParseSheet
// builds Rows from a Sheet's data region (see buildRows).
type Row struct {
	Sheet        string
	Index        int
	Subject      string
	Group        string
	StudentCount int
	Lecture      int
	Practical    int
	Lab          int
	Language     model.Language
	Instructor   string
}

// Block is a contiguous run of rows sharing one subject (spec.md §4.4
// step 4).
type Block struct {
	Subject string
	Rows    []Row
}
