package workload

import (
	"fmt"

	"github.com/wkatu/timetable/internal/model"
	"github.com/wkatu/timetable/internal/schederr"
)

// DecomposeHours splits total semester hours into odd/even weekly counts
// satisfying 8*odd + 7*even = total over a 15-week semester (spec.md §4.1,
// C1). Zero is a legal (0, 0) decomposition.
func DecomposeHours(total int) (model.WeeklyHours, error) {
	if total < 0 {
		return model.WeeklyHours{}, schederr.New(schederr.InvalidHours,
			fmt.Sprintf("total hours must be >= 0, got %d", total))
	}

	base := total / 15
	r := total % 15

	switch r {
	case 0:
		return model.WeeklyHours{Total: total, OddWeek: base, EvenWeek: base}, nil
	case 8:
		return model.WeeklyHours{Total: total, OddWeek: base + 1, EvenWeek: base}, nil
	case 7:
		return model.WeeklyHours{Total: total, OddWeek: base, EvenWeek: base + 1}, nil
	default:
		return model.WeeklyHours{}, schederr.New(schederr.InvalidHours,
			fmt.Sprintf("total hours %d has no valid odd/even decomposition (remainder %d)", total, r))
	}
}
