package notation

import (
	"errors"
	"fmt"
)

// Sentinel errors for position parsing.
var (
	// ErrMissingFields indicates a record has fewer than three fields or an empty name.
	ErrMissingFields = errors.New("missing fields")
	// ErrBadDegreeFormat indicates the degree token is not of the form D°MM'.
	ErrBadDegreeFormat = errors.New("bad degree format")
	// ErrOutOfRange indicates a degree outside 0-29 or a minute outside 0-59.
	ErrOutOfRange = errors.New("value out of range")
	// ErrUnknownSign indicates a sign name outside the twelve canonical signs.
	ErrUnknownSign = errors.New("unknown sign")
	// ErrMissingAscendant indicates the chart has no ASC record.
	ErrMissingAscendant = errors.New("missing required body ASC")
	// ErrDuplicateBody indicates the same body name appears on two lines.
	ErrDuplicateBody = errors.New("duplicate body")
	// ErrBadRetrograde indicates a fourth field other than R, or extra fields after it.
	ErrBadRetrograde = errors.New("bad retrograde marker")
)

// Rule names the parsing rule a record violated.
type Rule string

const (
	// RuleMissingFields is violated by records with too few fields.
	RuleMissingFields Rule = "missing_fields"
	// RuleBadDegreeFormat is violated by malformed degree tokens.
	RuleBadDegreeFormat Rule = "bad_degree_format"
	// RuleOutOfRange is violated by degree or minute values outside their range.
	RuleOutOfRange Rule = "out_of_range"
	// RuleUnknownSign is violated by unrecognised sign names.
	RuleUnknownSign Rule = "unknown_sign"
	// RuleMissingAscendant is violated by a chart without an ASC record.
	RuleMissingAscendant Rule = "missing_ascendant"
	// RuleDuplicateBody is violated when a body name repeats.
	RuleDuplicateBody Rule = "duplicate_body"
	// RuleBadRetrograde is violated by an unknown flag field or trailing fields.
	RuleBadRetrograde Rule = "bad_retrograde"
)

// ParseError records a rejected record with its line context. Line is
// 1-based; it is zero for whole-chart rules such as a missing ASC.
type ParseError struct {
	Rule Rule
	Line int
	Text string
	Err  error
}

// Error returns a human-readable message naming the line and the rule.
func (e *ParseError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("chart: %s", e.Err)
	}
	return fmt.Sprintf("line %d %q: %s", e.Line, e.Text, e.Err)
}

// Unwrap returns the underlying error for use with errors.Is/As.
func (e *ParseError) Unwrap() error {
	return e.Err
}
