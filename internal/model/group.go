package model

import "regexp"

// groupCodePattern matches a Cyrillic specialty prefix, a dash, a two-digit
// cohort/year code, an optional trailing letter, and an optional " О"
// marker (spec.md §3 "Group code"). It is intentionally not end-anchored:
// the base code is often followed by a language or subgroup suffix
// (e.g. "ИС-21/р/", "ИС-31/1/"), which is matched separately.
var groupCodePattern = regexp.MustCompile(
	`^([\p{Cyrillic}]+)-(\d)(\d)([\p{Cyrillic}A-Za-z]?)( О)?`,
)

// subgroupPattern matches the explicit subgroup notations: /1/, /2/, \1\,
// \2\, or a trailing " -1"/" -2" (spec.md §3). It intentionally does not
// match the study-form suffixes /у/ and /г/, which never denote a subgroup.
var subgroupPattern = regexp.MustCompile(`(/[12]/|\\[12]\\| -[12]$)`)

// languagePattern flags a group as Russian-medium when it carries a /г/ or
// /р/ marker; otherwise the group is treated as Kazakh-medium.
var languagePattern = regexp.MustCompile(`/[гр]/`)

// Language is the medium of instruction for a group.
type Language int

const (
	Kazakh Language = iota
	Russian
)

func (l Language) String() string {
	if l == Russian {
		return "rus"
	}
	return "kaz"
}

// Group is a parsed student-group code (spec.md §3).
type Group struct {
	Code            string
	SpecialtyPrefix string
	Year            int
	Language        Language
	IsSubgroupCoded bool
	Dead            bool
}

// ExclusiveSpecialties are the specialty prefixes whose group-building
// declaration forbids any other specialty from sharing the address
// (spec.md §4.6 tier 3, §6 item 8, GLOSSARY "Specialty prefix").
var ExclusiveSpecialties = map[string]bool{
	"ВЕТ": true,
	"СТР": true,
	"АРХ": true,
	"ЗК":  true,
	"ЮР":  true,
}

// ParseGroup parses a raw group code string into a Group. It never fails:
// a code that does not match the expected shape still yields a Group with
// SpecialtyPrefix/Year left zero-valued, since malformed codes are handled
// as a per-row warning (schederr.InvalidGroupCode) by the caller, not here.
func ParseGroup(raw string) Group {
	g := Group{Code: raw}

	if languagePattern.MatchString(raw) {
		g.Language = Russian
	}
	if subgroupPattern.MatchString(raw) {
		g.IsSubgroupCoded = true
	}

	m := groupCodePattern.FindStringSubmatch(raw)
	if m == nil {
		return g
	}
	g.SpecialtyPrefix = m[1]
	// the second of the two cohort digits conveys the year of study
	g.Year = int(m[3][0] - '0')
	return g
}

// IsValidCode reports whether raw matches the group code grammar.
func IsValidCode(raw string) bool {
	return groupCodePattern.MatchString(raw)
}
