package constraint

import (
	"fmt"
	"sort"
	"strings"
)

// Choices restricts a string value to a set of acceptable values. The set is
// either fixed at construction or selected per path.
type Choices struct {
	acceptable map[string]bool
	selector   func(p Path) []string
}

// NewChoices returns a Choices constraint with a fixed acceptable set.
func NewChoices(values ...string) *Choices {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return &Choices{acceptable: set}
}

// DynamicChoices returns a Choices constraint whose acceptable set is
// computed from the path being checked.
func DynamicChoices(selector func(p Path) []string) *Choices {
	return &Choices{selector: selector}
}

// baseError aliases Error so it can be embedded without the field name
// shadowing the promoted Error() method.
type baseError = Error

// InvalidChoiceError reports a value outside the acceptable set.
type InvalidChoiceError struct {
	*baseError
	Acceptable []string
}

func (c *Choices) values(p Path) []string {
	if c.selector != nil {
		return c.selector(p)
	}
	vals := make([]string, 0, len(c.acceptable))
	for v := range c.acceptable {
		vals = append(vals, v)
	}
	sort.Strings(vals)
	return vals
}

func (c *Choices) Apply(p Path) error {
	s, _ := p.Value.(string)
	acceptable := c.values(p)
	for _, v := range acceptable {
		if v == s {
			return nil
		}
	}
	return &InvalidChoiceError{
		baseError: &Error{
			Path:   p,
			Reason: fmt.Sprintf("value %q is not one of: %s", s, strings.Join(acceptable, ", ")),
		},
		Acceptable: acceptable,
	}
}
