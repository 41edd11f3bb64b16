package domain

import (
	"fmt"
	"slices"
	"strings"
)

// Violation types reported to API clients.
const (
	ViolationMissing      = "missing"
	ViolationType         = "type_error"
	ViolationLiteral      = "literal_error"
	ViolationGreaterEqual = "greater_than_equal"
	ViolationLessEqual    = "less_than_equal"
	ViolationURL          = "url_parsing"
	ViolationJSON         = "json_invalid"
	ViolationValue        = "value_error"
	ViolationFinite       = "finite_number"
)

// A Violation describes one failed constraint.
//
// Loc is the path to the offending value, e.g. ["body", "variants", 0, "stock"].
type Violation struct {
	Loc  []any  `json:"loc"`
	Msg  string `json:"msg"`
	Type string `json:"type"`
}

type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, fmt.Sprintf("%s: %s", joinLoc(v.Loc), v.Msg))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func joinLoc(loc []any) string {
	s := make([]string, len(loc))
	for i, l := range loc {
		s[i] = fmt.Sprint(l)
	}
	return strings.Join(s, ".")
}

// Violations accumulates constraint failures of one payload.
type Violations []Violation

func (vs *Violations) Add(typ, msg string, loc ...any) {
	*vs = append(*vs, Violation{Loc: loc, Msg: msg, Type: typ})
}

func (vs *Violations) Missing(loc ...any) {
	vs.Add(ViolationMissing, "Field required", loc...)
}

// Err returns nil when nothing was collected.
func (vs Violations) Err() error {
	if len(vs) == 0 {
		return nil
	}
	return &ValidationError{Violations: slices.Clone(vs)}
}
