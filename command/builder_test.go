package command

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateGitURL(t *testing.T) {
	testCases := []struct {
		name  string
		url   string
		valid bool
	}{
		{"https", "https://github.com/psf/black", true},
		{"http", "http://example.com/repo", true},
		{"ssh scheme", "ssh://git@example.com/repo.git", true},
		{"scp-like", "git@github.com:psf/black.git", true},
		{"git protocol", "git://example.com/repo.git", true},
		{"empty", "", false},
		{"leading dash", "--upload-pack=evil", false},
		{"shell metacharacters", "https://example.com/$(rm -rf)", false},
		{"bare path", "/home/user/repo", false},
	}

	sb := NewSafeBuilder()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := sb.Validate("gitURL", tc.url)
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidateGitRef(t *testing.T) {
	testCases := []struct {
		name  string
		ref   string
		valid bool
	}{
		{"tag", "v1.2.5", true},
		{"calver tag", "22.3.0", true},
		{"sha", "0f1a2b3c4d5e6f7a8b9c0d1e2f3a4b5c6d7e8f9a", true},
		{"branch path", "feature/rev-bumps", true},
		{"empty", "", false},
		{"leading dash", "-v1.0", false},
		{"spaces", "v1 .0", false},
		{"metacharacters", "v1;rm", false},
	}

	sb := NewSafeBuilder()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := sb.Validate("gitRef", tc.ref)
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidateUnknownArgType(t *testing.T) {
	sb := NewSafeBuilder()
	assert.Error(t, sb.Validate("unknown", "value"))
}

func TestBuildRejectsEmptyName(t *testing.T) {
	sb := NewSafeBuilder()
	_, err := sb.Build(context.Background(), "")
	assert.Error(t, err)
}

func TestWithTimeoutIsCapped(t *testing.T) {
	sb := NewSafeBuilder()
	cmd, err := sb.Build(context.Background(), "git", "version")
	require.NoError(t, err)
	defer cmd.Release()

	cmd = cmd.WithTimeout(time.Hour)
	assert.Equal(t, MaxTimeout, cmd.timeout)
}

func TestReleaseCancelsContext(t *testing.T) {
	sb := NewSafeBuilder()
	cmd, err := sb.Build(context.Background(), "git", "version")
	require.NoError(t, err)

	cmd.Release()
	assert.ErrorIs(t, cmd.ctx.Err(), context.Canceled)

	// Release is idempotent.
	cmd.Release()
}

func TestWithTimeoutReleasesPreviousContext(t *testing.T) {
	sb := NewSafeBuilder()
	cmd, err := sb.Build(context.Background(), "git", "version")
	require.NoError(t, err)
	defer cmd.Release()

	old := cmd.ctx
	cmd = cmd.WithTimeout(time.Minute)
	assert.ErrorIs(t, old.Err(), context.Canceled)
	assert.NoError(t, cmd.ctx.Err())
}

// recordingExecutor captures what Exec hands to the executor seam.
type recordingExecutor struct {
	name string
	args []string
}

func (e *recordingExecutor) CommandContext(ctx context.Context, name string, args ...string) *exec.Cmd {
	e.name = name
	e.args = args
	// Hand back a no-op so nothing real runs if the caller executes it.
	return exec.CommandContext(ctx, "true")
}

func TestExecRoutesThroughExecutor(t *testing.T) {
	recorder := &recordingExecutor{}
	sb := NewSafeBuilderWithExecutor(recorder)

	cmd, err := sb.Build(context.Background(), "git", "ls-remote", "--tags")
	require.NoError(t, err)
	defer cmd.Release()

	cmd.Exec()
	assert.Equal(t, "git", recorder.name)
	assert.Equal(t, []string{"ls-remote", "--tags"}, recorder.args)
}
