package stylegraph

import "time"

// Violation codes (exported consts for IDE completion and for the i18n
// message dictionary).
const (
	CodeUnknownProperty = "unknown_property"
	CodeInvalidColor    = "invalid_color"
	CodeInvalidLength   = "invalid_length"
	CodeInvalidEnum     = "invalid_enum"
	CodeInvalidNumber   = "invalid_number"
	CodeOutOfRange      = "out_of_range"
	CodeTooManyLayers   = "too_many_layers"
	CodeRelationCycle   = "relation_cycle"
)

// Violation records a single schema violation.
type Violation struct {
	Component string    `json:"component"`
	Property  string    `json:"property"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// maxViolations caps the violation log; the oldest entries are evicted.
const maxViolations = 200

type violationLog struct {
	entries []Violation
}

func (l *violationLog) append(v Violation) {
	l.entries = append(l.entries, v)
	if len(l.entries) > maxViolations {
		l.entries = l.entries[len(l.entries)-maxViolations:]
	}
}

// recent returns up to limit of the most recent entries, oldest-first within
// that slice. A non-positive limit means 50.
func (l *violationLog) recent(limit int) []Violation {
	if limit <= 0 {
		limit = 50
	}
	if limit > len(l.entries) {
		limit = len(l.entries)
	}
	out := make([]Violation, limit)
	copy(out, l.entries[len(l.entries)-limit:])
	return out
}

func (l *violationLog) clear() { l.entries = nil }
