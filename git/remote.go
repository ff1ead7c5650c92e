package git

import (
	"context"
	"sort"
	"strings"

	"github.com/hooktools/core/command"
	"github.com/hooktools/core/errors"
)

// Tag is one tag advertised by a remote repository.
type Tag struct {
	Name string
	// SHA is the object the ref points at. For annotated tags this is the
	// tag object itself.
	SHA string
	// PeeledSHA is the commit an annotated tag dereferences to, when the
	// remote advertises it.
	PeeledSHA string
}

// CommitSHA returns the commit a tag ultimately points at.
func (t Tag) CommitSHA() string {
	if t.PeeledSHA != "" {
		return t.PeeledSHA
	}
	return t.SHA
}

// Remote queries remote repositories without cloning them.
type Remote struct {
	builder *command.SafeBuilder
}

// NewRemote creates a Remote backed by the real git binary.
func NewRemote() *Remote {
	return &Remote{builder: command.NewSafeBuilder()}
}

// NewRemoteWithExecutor creates a Remote with a custom command executor,
// letting tests replace git with a fixture-producing command.
func NewRemoteWithExecutor(exec command.Executor) *Remote {
	return &Remote{builder: command.NewSafeBuilderWithExecutor(exec)}
}

// ListTags lists the tags a remote repository advertises, sorted by name.
func (r *Remote) ListTags(ctx context.Context, url string) ([]Tag, error) {
	if err := r.builder.Validate("gitURL", url); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidInput, "refusing to query remote")
	}

	cmd, err := r.builder.Build(ctx, "git", "ls-remote", "--tags", url)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to build git command")
	}
	defer cmd.Release()

	output, err := cmd.Exec().Output()
	if err != nil {
		return nil, errors.GitCommandFailed([]string{"ls-remote", "--tags", url}, err)
	}

	return ParseLsRemoteTags(output), nil
}

// ParseLsRemoteTags parses `git ls-remote --tags` output. Peeled entries
// (`^{}`) are folded into the tag they dereference.
func ParseLsRemoteTags(output []byte) []Tag {
	const tagPrefix = "refs/tags/"

	tags := make(map[string]*Tag)
	var order []string

	for _, line := range strings.Split(string(output), "\n") {
		fields := strings.Fields(line)
		if len(fields) != 2 || !strings.HasPrefix(fields[1], tagPrefix) {
			continue
		}
		sha, ref := fields[0], strings.TrimPrefix(fields[1], tagPrefix)

		if name, peeled := strings.CutSuffix(ref, "^{}"); peeled {
			if tag, ok := tags[name]; ok {
				tag.PeeledSHA = sha
			}
			continue
		}

		if _, ok := tags[ref]; !ok {
			tags[ref] = &Tag{Name: ref, SHA: sha}
			order = append(order, ref)
		}
	}

	sort.Strings(order)
	result := make([]Tag, 0, len(order))
	for _, name := range order {
		result = append(result, *tags[name])
	}
	return result
}

// WorkTreeRoot returns the top-level directory of the work tree containing dir.
func WorkTreeRoot(ctx context.Context, dir string) (string, error) {
	builder := command.NewSafeBuilder()
	cmd, err := builder.Build(ctx, "git", "rev-parse", "--show-toplevel")
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeInternal, "failed to build git command")
	}
	defer cmd.Release()

	execCmd := cmd.Exec()
	execCmd.Dir = dir
	output, err := execCmd.Output()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeGitNotARepo, "not inside a git work tree").
			WithDetail("dir", dir)
	}
	return strings.TrimSpace(string(output)), nil
}
