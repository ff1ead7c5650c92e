package constraint

import (
	"fmt"
	"regexp"
)

// Path identifies a value's location inside a configuration document.
// Loc is a dotted path such as "repos[2].hooks[0].language".
type Path struct {
	Loc   string
	Value interface{}
	Line  int
}

// Field builds a Path for a named field.
func Field(loc string, value interface{}, line int) Path {
	return Path{Loc: loc, Value: value, Line: line}
}

// String returns the value formatted for diagnostics.
func (p Path) String() string {
	if p.Line > 0 {
		return fmt.Sprintf("%s (line %d)", p.Loc, p.Line)
	}
	return p.Loc
}

// Constraint checks a single value at a path. Implementations return a
// *Error (or a type embedding it) describing the violation.
type Constraint interface {
	Apply(p Path) error
}

// Error is the base error returned by failing constraints. It carries the
// path so callers can point at the offending value.
type Error struct {
	Path   Path
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Path.String(), e.Reason)
}

// Check applies constraints in order and returns the first violation.
func Check(p Path, constraints ...Constraint) error {
	for _, c := range constraints {
		if err := c.Apply(p); err != nil {
			return err
		}
	}
	return nil
}

// NonEmpty requires a non-empty string value.
type NonEmpty struct{}

func (NonEmpty) Apply(p Path) error {
	s, _ := p.Value.(string)
	if s == "" {
		return &Error{Path: p, Reason: "value must not be empty"}
	}
	return nil
}

// Pattern requires the value to match a regular expression.
type Pattern struct {
	re   *regexp.Regexp
	desc string
}

// NewPattern compiles expr and returns a Pattern constraint. desc is used in
// the violation message ("value must be a valid <desc>").
func NewPattern(expr, desc string) *Pattern {
	return &Pattern{re: regexp.MustCompile(expr), desc: desc}
}

func (c *Pattern) Apply(p Path) error {
	s, ok := p.Value.(string)
	if !ok || !c.re.MatchString(s) {
		return &Error{Path: p, Reason: fmt.Sprintf("value %q must be a valid %s", p.Value, c.desc)}
	}
	return nil
}

// ValidRegexp requires the value to compile as a regular expression. The
// consuming runner matches file lists with regexes, so malformed patterns
// are configuration errors rather than runtime surprises.
type ValidRegexp struct{}

func (ValidRegexp) Apply(p Path) error {
	s, ok := p.Value.(string)
	if !ok {
		return &Error{Path: p, Reason: fmt.Sprintf("value %v is not a string", p.Value)}
	}
	if s == "" {
		return nil
	}
	if _, err := regexp.Compile(s); err != nil {
		return &Error{Path: p, Reason: fmt.Sprintf("invalid regular expression %q: %v", s, err)}
	}
	return nil
}
