package workload

import (
	"github.com/google/uuid"

	"github.com/wkatu/timetable/internal/model"
)

// streamNamespace is the fixed namespace used to derive deterministic
// stream identifiers via uuid.NewSHA1 (spec.md §8 determinism invariant:
// identical inputs must yield byte-identical output, which rules out
// uuid.New()'s randomness).
var streamNamespace = uuid.MustParse("8f2b6f0a-2f0b-4f8d-9b0b-6a2f7c9d8e1a")

// draft is an in-progress stream before its hours are decomposed and its ID
// assigned.
type draft struct {
	subject    string
	typ        model.StreamType
	instructor string
	groups     []string
	students   int
	language   model.Language
	totalHours int
	sheet      string
	rows       []int
	isSub      bool
	isImplicit bool
}

func (d *draft) addGroup(r Row, deadGroups map[string]bool) {
	d.groups = append(d.groups, r.Group)
	d.rows = append(d.rows, r.Index)
	if !deadGroups[r.Group] {
		d.students += r.StudentCount
	}
}

func newDraft(subject string, typ model.StreamType, sheet string, r Row, deadGroups map[string]bool, totalHours int) *draft {
	d := &draft{
		subject:    subject,
		typ:        typ,
		instructor: r.Instructor,
		language:   r.Language,
		sheet:      sheet,
		totalHours: totalHours,
	}
	d.addGroup(r, deadGroups)
	return d
}

func (d *draft) finalize(hoursErr func(int) (model.WeeklyHours, error)) (model.Stream, error) {
	hours, err := hoursErr(d.totalHours)
	if err != nil {
		return model.Stream{}, err
	}
	s := model.Stream{
		Subject:            d.subject,
		Type:               d.typ,
		Instructor:         d.instructor,
		Groups:             d.groups,
		StudentCount:       d.students,
		Language:           d.language,
		Hours:              hours,
		Provenance:         model.Provenance{Sheet: d.sheet, Rows: d.rows},
		IsSubgroup:         d.isSub,
		IsImplicitSubgroup: d.isImplicit,
	}
	s.ID = uuid.NewSHA1(streamNamespace, []byte(s.Key())).String()
	return s, nil
}

// ExtractStreams runs C3 over one subject block already tagged with its
// pattern, returning the extracted streams and any recoverable per-row
// errors (skipped rows, spec.md §7).
func ExtractStreams(block Block, pattern Pattern, deadGroups map[string]bool) ([]model.Stream, []error) {
	var streams []model.Stream
	var errs []error

	commit := func(d *draft) {
		s, err := d.finalize(DecomposeHours)
		if err != nil {
			errs = append(errs, err)
			return
		}
		streams = append(streams, s)
	}

	streams = append(streams, extractLectures(block, deadGroups, &errs)...)

	switch pattern {
	case Pattern1a:
		extractOnePerRow(block.Rows, model.Practical, func(r Row) int { return r.Practical }, deadGroups, false, false, block.Subject, commit)
		extractOnePerRow(block.Rows, model.Lab, func(r Row) int { return r.Lab }, deadGroups, false, false, block.Subject, commit)

	case Pattern1b:
		extractChained(block.Rows, model.Practical, func(r Row) int { return r.Practical }, deadGroups, block.Subject, commit)
		extractChained(block.Rows, model.Lab, func(r Row) int { return r.Lab }, deadGroups, block.Subject, commit)

	case PatternImplicitSubgroup:
		extractOnePerRowDedup(block.Rows, model.Practical, func(r Row) int { return r.Practical }, deadGroups, block.Subject, commit)
		extractOnePerRow(block.Rows, model.Lab, func(r Row) int { return r.Lab }, deadGroups, false, true, block.Subject, commit)

	case PatternExplicitSubgroup:
		extractOnePerRow(block.Rows, model.Practical, func(r Row) int { return r.Practical }, deadGroups, true, false, block.Subject, commit)
		extractOnePerRow(block.Rows, model.Lab, func(r Row) int { return r.Lab }, deadGroups, true, false, block.Subject, commit)
	}

	return streams, errs
}

// extractLectures groups the block's rows by instructor, preserving file
// order, and emits one lecture stream per instructor with positive lecture
// hours (spec.md §4.3, identical across all four patterns).
func extractLectures(block Block, deadGroups map[string]bool, errs *[]error) []model.Stream {
	order := make([]string, 0)
	byInstructor := make(map[string][]Row)
	hoursByInstructor := make(map[string]int)

	for _, r := range block.Rows {
		if _, seen := byInstructor[r.Instructor]; !seen {
			order = append(order, r.Instructor)
		}
		byInstructor[r.Instructor] = append(byInstructor[r.Instructor], r)
		if r.Lecture > 0 && hoursByInstructor[r.Instructor] == 0 {
			hoursByInstructor[r.Instructor] = r.Lecture
		}
	}

	var out []model.Stream
	for _, instructor := range order {
		total := hoursByInstructor[instructor]
		if total <= 0 {
			continue
		}
		rows := byInstructor[instructor]
		d := &draft{
			subject:    block.Subject,
			typ:        model.Lecture,
			instructor: instructor,
			language:   rows[0].Language,
			sheet:      block.Subject,
			totalHours: total,
		}
		if len(rows) > 0 {
			d.sheet = rows[0].Sheet
		}
		for _, r := range rows {
			d.addGroup(r, deadGroups)
		}
		s, err := d.finalize(DecomposeHours)
		if err != nil {
			*errs = append(*errs, err)
			continue
		}
		out = append(out, s)
	}
	return out
}

// extractOnePerRow implements pattern 1a's rule (and the explicit/implicit
// subgroup variants that also emit one stream per qualifying row): every
// row whose selected column is positive becomes its own single-group
// stream. Repeated group codes are not skipped here (implicit_subgroup
// practicals use extractOnePerRowDedup for that);
// forceSubgroupFlag/forceImplicitFlag set the corresponding Stream flags.
func extractOnePerRow(rows []Row, typ model.StreamType, col func(Row) int, deadGroups map[string]bool, forceSubgroupFlag, forceImplicitFlag bool, subject string, commit func(*draft)) {
	for _, r := range rows {
		v := col(r)
		if v <= 0 {
			continue
		}
		d := newDraft(subject, typ, r.Sheet, r, deadGroups, v)
		d.isSub = forceSubgroupFlag
		d.isImplicit = forceImplicitFlag
		commit(d)
	}
}

// extractOnePerRowDedup is extractOnePerRow restricted to the first
// occurrence of each group code in the block (spec.md §4.3
// implicit_subgroup practicals rule).
func extractOnePerRowDedup(rows []Row, typ model.StreamType, col func(Row) int, deadGroups map[string]bool, subject string, commit func(*draft)) {
	seen := make(map[string]bool)
	for _, r := range rows {
		v := col(r)
		if v <= 0 {
			continue
		}
		if seen[r.Group] {
			continue
		}
		seen[r.Group] = true
		d := newDraft(subject, typ, r.Sheet, r, deadGroups, v)
		commit(d)
	}
}

// extractChained implements pattern 1b's rule: a row with a positive
// column value starts a new stream as its leader; subsequent rows with a
// blank (non-positive) value append to the open stream, carrying the
// leader's hours, provided they have the leader's instructor. A new
// non-blank row closes the previous stream and opens a new one; a blank
// row from a different instructor is ignored and does not close it. The
// last open stream flushes at block end (spec.md §4.3).
func extractChained(rows []Row, typ model.StreamType, col func(Row) int, deadGroups map[string]bool, subject string, commit func(*draft)) {
	var open *draft

	flush := func() {
		if open != nil {
			commit(open)
			open = nil
		}
	}

	for _, r := range rows {
		v := col(r)
		switch {
		case v > 0:
			flush()
			open = newDraft(subject, typ, r.Sheet, r, deadGroups, v)
		case open != nil && r.Instructor == open.instructor:
			open.addGroup(r, deadGroups)
		default:
			// blank row with no open stream (or an instructor change with a
			// blank value): nothing to append to, nothing to start.
		}
	}
	flush()
}
