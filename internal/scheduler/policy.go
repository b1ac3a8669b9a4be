package scheduler

// Policy exposes the four behaviors spec.md §9 leaves as open questions.
// Every field defaults to false (Go's zero value), matching the source's
// observed behavior; see DESIGN.md for the reasoning behind each default.
type Policy struct {
	// ThirdYearShiftFallback names the third-year whole-day shift
	// exception (spec.md §6 "Shift rule", year 3); off by default. The
	// placement engine does not read this field: year-3 groups are placed
	// in first shift whatever its value.
	ThirdYearShiftFallback bool

	// EnforceOneDayPerWeek names an instructor's one_day_per_week
	// constraint (spec.md §6 item 6); off by default. The placement engine
	// does not read this field or the constraint, whatever its value.
	EnforceOneDayPerWeek bool

	// ExtendShiftBoundary widens first shift to slots 1..7 instead of
	// 1..5 (spec.md §9). Described in the constraints doc but not
	// enforced by the source; off by default.
	ExtendShiftBoundary bool

	// DeadGroupsOccupyIndexes makes a dead group still reserve
	// group-conflict slots even though its student count is zeroed for
	// capacity purposes (spec.md §9, sources disagree). Off by default:
	// dead groups are skipped entirely by availability checks and
	// reservation.
	DeadGroupsOccupyIndexes bool
}

// DefaultPolicy is the zero-value Policy: every Open Question switch off.
var DefaultPolicy = Policy{}
