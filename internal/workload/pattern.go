package workload

import "github.com/wkatu/timetable/internal/model"

// Pattern tags one of the four row-layout encodings a subject block can
// use (spec.md §4.2, C2).
type Pattern int

const (
	Pattern1a Pattern = iota
	Pattern1b
	PatternImplicitSubgroup
	PatternExplicitSubgroup
)

func (p Pattern) String() string {
	switch p {
	case Pattern1a:
		return "1a"
	case Pattern1b:
		return "1b"
	case PatternImplicitSubgroup:
		return "implicit_subgroup"
	case PatternExplicitSubgroup:
		return "explicit_subgroup"
	default:
		return "unknown"
	}
}

// ClassifyBlock is a pure, deterministic function of a subject block's rows
// (spec.md §4.2, C2). An empty block defaults to Pattern1a.
func ClassifyBlock(rows []Row) Pattern {
	if len(rows) == 0 {
		return Pattern1a
	}

	for _, r := range rows {
		if model.ParseGroup(r.Group).IsSubgroupCoded {
			return PatternExplicitSubgroup
		}
	}

	seen := make(map[string]bool, len(rows))
	for _, r := range rows {
		if seen[r.Group] {
			return PatternImplicitSubgroup
		}
		seen[r.Group] = true
	}

	filled := 0
	for _, r := range rows {
		if r.Practical > 0 {
			filled++
		}
	}
	fillRate := float64(filled) / float64(len(rows))
	if fillRate > 0.5 {
		return Pattern1a
	}
	return Pattern1b
}
