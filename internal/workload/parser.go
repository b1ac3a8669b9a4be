package workload

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/wkatu/timetable/internal/model"
	"github.com/wkatu/timetable/internal/schederr"
)

// semesterMarkers are the column-0 values that mark the start of a
// semester's data region (spec.md §4.4 step 1). The two "2 семестр"
// spellings also trigger a one-row header skip.
var semesterMarkers = map[string]bool{
	"1":         true,
	"2 семестр": true,
	"2семестр":  true,
}

func isSemesterMarker(s string) bool {
	return s == "2 семестр" || s == "2семестр"
}

// findDataStart implements spec.md §4.4 step 1.
func findDataStart(sheet Sheet) (int, error) {
	for row := 0; row < len(sheet.Rows); row++ {
		v := sheet.Cell(row, 0)
		if !semesterMarkers[v] {
			continue
		}
		if isSemesterMarker(v) {
			return row + 2, nil
		}
		return row + 1, nil
	}
	return 0, schederr.New(schederr.DataStartNotFound, "no column 0 cell matches a data-start marker").WithContext(sheet.Name, -1)
}

// findInstructorColumn implements spec.md §4.4 step 2.
func findInstructorColumn(sheet Sheet, known map[string]int) (int, error) {
	if col, ok := known[sheet.Name]; ok {
		width := 0
		for _, r := range sheet.Rows {
			if len(r) > width {
				width = len(r)
			}
		}
		if col < 0 || col >= width {
			return 0, schederr.New(schederr.InstructorColumnNotFound, "known instructor column out of range").WithContext(sheet.Name, -1)
		}
		return col, nil
	}

	last := len(sheet.Rows) - 1
	endRow := 50
	if last < endRow {
		endRow = last
	}

	width := 0
	for _, r := range sheet.Rows {
		if len(r) > width {
			width = len(r)
		}
	}

	for col := width - 1; col >= 0; col-- {
		for row := 11; row <= endRow; row++ {
			cell := strings.ToLower(sheet.Cell(row, col))
			if cell == "" {
				continue
			}
			for _, marker := range instructorMarkers {
				if strings.Contains(cell, marker) {
					return col, nil
				}
			}
		}
	}
	return 0, schederr.New(schederr.InstructorColumnNotFound, "no column contains an instructor marker").WithContext(sheet.Name, -1)
}

// forwardFillSubjects implements spec.md §4.4 step 3: a blank subject cell
// inherits the most recent non-blank subject above it, within the data
// region [start, len(rows)).
func forwardFillSubjects(sheet Sheet, subjectCol, start int) []string {
	out := make([]string, len(sheet.Rows)-start)
	last := ""
	for row := start; row < len(sheet.Rows); row++ {
		v := sheet.Cell(row, subjectCol)
		if v != "" {
			last = v
		}
		out[row-start] = last
	}
	return out
}

func parseHourCell(v string) int {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

func parseLanguage(v string, group model.Group) model.Language {
	lower := strings.ToLower(v)
	switch {
	case strings.Contains(lower, "рус"):
		return model.Russian
	case strings.Contains(lower, "каз"):
		return model.Kazakh
	default:
		return group.Language
	}
}

// buildRows turns one sheet's data region into Row values, skipping rows
// with an invalid group code (spec.md §7: InvalidGroupCode is a per-row
// warning) and reporting each skip through logger.
func buildRows(sheet Sheet, layout ColumnLayout, instructorCol, start int, logger *zap.Logger) []Row {
	subjects := forwardFillSubjects(sheet, layout.Subject, start)

	var rows []Row
	for row := start; row < len(sheet.Rows); row++ {
		groupRaw := sheet.Cell(row, layout.Group)
		if groupRaw == "" {
			continue
		}
		if !model.IsValidCode(groupRaw) {
			logger.Warn("skipping row with invalid group code",
				zap.String("sheet", sheet.Name),
				zap.Int("row", row),
				zap.String("group", groupRaw),
			)
			continue
		}
		group := model.ParseGroup(groupRaw)

		rows = append(rows, Row{
			Sheet:        sheet.Name,
			Index:        row,
			Subject:      subjects[row-start],
			Group:        groupRaw,
			StudentCount: parseHourCell(sheet.Cell(row, layout.StudentCount)),
			Lecture:      parseHourCell(sheet.Cell(row, layout.Lecture)),
			Practical:    parseHourCell(sheet.Cell(row, layout.Practical)),
			Lab:          parseHourCell(sheet.Cell(row, layout.Lab)),
			Language:     parseLanguage(sheet.Cell(row, layout.Language), group),
			Instructor:   strings.TrimSpace(sheet.Cell(row, instructorCol)),
		})
	}
	return rows
}

// groupIntoBlocks partitions rows into contiguous same-subject blocks
// (spec.md §4.4 step 4).
func groupIntoBlocks(rows []Row) []Block {
	var blocks []Block
	for _, r := range rows {
		if len(blocks) == 0 || blocks[len(blocks)-1].Subject != r.Subject {
			blocks = append(blocks, Block{Subject: r.Subject})
		}
		blocks[len(blocks)-1].Rows = append(blocks[len(blocks)-1].Rows, r)
	}
	return blocks
}

// ParseSheet runs C4 over one sheet, producing streams and recoverable
// errors. A sheet-level failure (no data-start marker, no instructor
// column) is returned as a single error and yields no streams; the caller
// (ParseWorkload) is responsible for downgrading that to a warning and
// continuing with the remaining sheets (spec.md §4.4, §7).
func ParseSheet(sheet Sheet, layout ColumnLayout, knownInstructorColumns map[string]int, deadGroups map[string]bool, logger *zap.Logger) ([]model.Stream, []error, error) {
	start, err := findDataStart(sheet)
	if err != nil {
		return nil, nil, err
	}
	instructorCol, err := findInstructorColumn(sheet, knownInstructorColumns)
	if err != nil {
		return nil, nil, err
	}

	rows := buildRows(sheet, layout, instructorCol, start, logger)
	blocks := groupIntoBlocks(rows)

	var streams []model.Stream
	var rowErrs []error
	for _, block := range blocks {
		pattern := ClassifyBlock(block.Rows)
		blockStreams, errs := ExtractStreams(block, pattern, deadGroups)
		streams = append(streams, blockStreams...)
		for _, e := range errs {
			rowErrs = append(rowErrs, e)
			logger.Warn("skipping stream after extraction error",
				zap.String("sheet", sheet.Name),
				zap.String("subject", block.Subject),
				zap.Error(e),
			)
		}
	}
	return streams, rowErrs, nil
}

// ParseWorkload runs C4 over every sheet. A sheet that fails outright
// (DataStartNotFound, InstructorColumnNotFound) is skipped with a warning;
// the remaining sheets are still parsed (spec.md §4.4, §7).
func ParseWorkload(sheets []Sheet, layout ColumnLayout, knownInstructorColumns map[string]int, deadGroups map[string]bool, logger *zap.Logger) ([]model.Stream, []error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var streams []model.Stream
	var errs []error
	for _, sheet := range sheets {
		s, rowErrs, err := ParseSheet(sheet, layout, knownInstructorColumns, deadGroups, logger)
		if err != nil {
			logger.Warn("skipping sheet", zap.String("sheet", sheet.Name), zap.Error(err))
			errs = append(errs, err)
			continue
		}
		streams = append(streams, s...)
		errs = append(errs, rowErrs...)
	}
	return streams, errs
}
