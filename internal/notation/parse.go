// Package notation converts between chart text records of the form
// Name,Sign,DD°MM'[,R] and zodiac positions.
package notation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/papapumpkin/natal/internal/zodiac"
)

// RetrogradeMarker is the optional fourth field flagging a retrograde body.
const RetrogradeMarker = "R"

// degreePattern accepts D°MM' with a straight, curly or typographic prime.
var degreePattern = regexp.MustCompile(`^(\d+)\s*°\s*(\d+)\s*['’′]$`)

// ParseLine parses a single record. lineNo is used only for error context.
func ParseLine(line string, lineNo int) (zodiac.Position, error) {
	fail := func(rule Rule, err error) (zodiac.Position, error) {
		return zodiac.Position{}, &ParseError{Rule: rule, Line: lineNo, Text: line, Err: err}
	}

	fields := strings.Split(line, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	if len(fields) < 3 {
		return fail(RuleMissingFields, fmt.Errorf("%w: want Name,Sign,D°MM' but got %d field(s)", ErrMissingFields, len(fields)))
	}
	name, signName, token := fields[0], fields[1], fields[2]
	if name == "" || signName == "" || token == "" {
		return fail(RuleMissingFields, fmt.Errorf("%w: name, sign and degree must be non-empty", ErrMissingFields))
	}
	if len(fields) > 4 {
		return fail(RuleBadRetrograde, fmt.Errorf("%w: %d fields, at most 4 allowed", ErrBadRetrograde, len(fields)))
	}
	retro := len(fields) == 4 && fields[3] != ""
	if retro && fields[3] != RetrogradeMarker {
		return fail(RuleBadRetrograde, fmt.Errorf("%w: %q", ErrBadRetrograde, fields[3]))
	}

	sign, ok := zodiac.ParseSign(signName)
	if !ok {
		return fail(RuleUnknownSign, fmt.Errorf("%w: %q", ErrUnknownSign, signName))
	}

	m := degreePattern.FindStringSubmatch(token)
	if m == nil {
		return fail(RuleBadDegreeFormat, fmt.Errorf("%w: %q", ErrBadDegreeFormat, token))
	}
	degree, err := strconv.Atoi(m[1])
	if err != nil {
		return fail(RuleBadDegreeFormat, fmt.Errorf("%w: degree %q: %v", ErrBadDegreeFormat, m[1], err))
	}
	minute, err := strconv.Atoi(m[2])
	if err != nil {
		return fail(RuleBadDegreeFormat, fmt.Errorf("%w: minute %q: %v", ErrBadDegreeFormat, m[2], err))
	}
	if degree > zodiac.DegreesPerSign-1 {
		return fail(RuleOutOfRange, fmt.Errorf("%w: degree %d not in 0-29", ErrOutOfRange, degree))
	}
	if minute > 59 {
		return fail(RuleOutOfRange, fmt.Errorf("%w: minute %d not in 0-59", ErrOutOfRange, minute))
	}

	return zodiac.NewPosition(name, sign, degree, minute, retro), nil
}

// Parse parses a newline-delimited chart. It is all-or-nothing: the first
// invalid record aborts the whole parse, and a chart without ASC is rejected.
// Blank lines are skipped.
func Parse(text string) ([]zodiac.Position, error) {
	var positions []zodiac.Position
	seen := make(map[string]int)

	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(strings.TrimSuffix(raw, "\r"))
		if line == "" {
			continue
		}
		lineNo := i + 1
		p, err := ParseLine(line, lineNo)
		if err != nil {
			return nil, err
		}
		if prev, dup := seen[p.Name]; dup {
			return nil, &ParseError{
				Rule: RuleDuplicateBody,
				Line: lineNo,
				Text: line,
				Err:  fmt.Errorf("%w: %s already defined on line %d", ErrDuplicateBody, p.Name, prev),
			}
		}
		seen[p.Name] = lineNo
		positions = append(positions, p)
	}

	if _, ok := seen[zodiac.ASC]; !ok {
		return nil, &ParseError{Rule: RuleMissingAscendant, Err: ErrMissingAscendant}
	}
	return positions, nil
}
