package constraint

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNonEmpty(t *testing.T) {
	assert.NoError(t, Check(Field("repos[0].repo", "https://example.com/x", 3), NonEmpty{}))

	err := Check(Field("repos[0].repo", "", 3), NonEmpty{})
	require.Error(t, err)
	var cerr *Error
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "repos[0].repo", cerr.Path.Loc)
	assert.Equal(t, 3, cerr.Path.Line)
}

func TestChoicesWithStaticSet(t *testing.T) {
	c := NewChoices("python", "system", "script")

	assert.NoError(t, c.Apply(Field("hooks[0].language", "system", 0)))

	err := c.Apply(Field("hooks[0].language", "golang", 12))
	require.Error(t, err)

	var choiceErr *InvalidChoiceError
	require.True(t, errors.As(err, &choiceErr))
	assert.Equal(t, []string{"python", "script", "system"}, choiceErr.Acceptable)
	assert.Equal(t, "golang", choiceErr.Path.Value)
	assert.Contains(t, err.Error(), "line 12")
}

func TestChoicesWithDynamicSet(t *testing.T) {
	c := DynamicChoices(func(p Path) []string {
		if p.Loc == "a" {
			return []string{"x"}
		}
		return []string{"y"}
	})

	assert.NoError(t, c.Apply(Field("a", "x", 0)))
	assert.Error(t, c.Apply(Field("a", "y", 0)))
	assert.NoError(t, c.Apply(Field("b", "y", 0)))
}

func TestChoicesErrorListsAcceptableValues(t *testing.T) {
	c := NewChoices("pre-commit", "pre-push")
	err := c.Apply(Field("hooks[0].stages[1]", "deploy", 0))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pre-commit, pre-push")
}

func TestPattern(t *testing.T) {
	c := NewPattern(`^[a-z][a-z0-9-]*$`, "hook id")

	assert.NoError(t, c.Apply(Field("hooks[0].id", "black", 0)))
	assert.Error(t, c.Apply(Field("hooks[0].id", "Not A Hook", 0)))
}

func TestValidRegexp(t *testing.T) {
	assert.NoError(t, Check(Field("files", `\.py$`, 0), ValidRegexp{}))
	assert.NoError(t, Check(Field("files", "", 0), ValidRegexp{}), "empty pattern means unset")

	err := Check(Field("exclude", `(unclosed`, 5), ValidRegexp{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exclude (line 5)")
}

func TestCheckReturnsFirstViolation(t *testing.T) {
	err := Check(Field("x", "", 0), NonEmpty{}, NewChoices("a"))
	require.Error(t, err)
	var cerr *Error
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "value must not be empty", cerr.Reason)
}
