package model

import "strconv"

// StreamType distinguishes the three kinds of teaching unit a stream can
// represent (spec.md §3).
type StreamType int

const (
	Lecture StreamType = iota
	Practical
	Lab
)

func (t StreamType) String() string {
	switch t {
	case Lecture:
		return "lecture"
	case Practical:
		return "practical"
	case Lab:
		return "lab"
	default:
		return "unknown"
	}
}

// Provenance records where a stream came from, for diagnostics and for the
// per-sheet/per-row warning context spec.md §7 requires.
type Provenance struct {
	Sheet string
	Rows  []int
}

// Stream is a teaching unit identified by (subject, stream type,
// instructor), carrying the ordered group list it serves (spec.md §3).
// Streams are immutable once extracted by internal/workload.
type Stream struct {
	ID         string
	Subject    string
	Type       StreamType
	Instructor string

	Groups       []string
	StudentCount int
	Language     Language
	Hours        WeeklyHours

	Provenance Provenance

	IsSubgroup         bool
	IsImplicitSubgroup bool
}

// Key returns the natural key the "one instructor => one stream" invariant
// (spec.md §3) and stream-uniqueness property (spec.md §8) are defined
// over: (subject, stream type, instructor, groups, hours).
func (s Stream) Key() string {
	key := s.Subject + "|" + s.Type.String() + "|" + s.Instructor + "|"
	for _, g := range s.Groups {
		key += g + ","
	}
	key += "|"
	key += strconv.Itoa(s.Hours.Total) + "/" + strconv.Itoa(s.Hours.OddWeek) + "/" + strconv.Itoa(s.Hours.EvenWeek)
	return key
}
