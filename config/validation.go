package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hooktools/core/constraint"
	"github.com/hooktools/core/errors"
)

var (
	remoteURLRegex = regexp.MustCompile(`^(https?://|git://|ssh://|git@)[^\s]+$`)
	pinnedRevRegex = regexp.MustCompile(`^(v?\d|[0-9a-f]{7,40}$)`)
)

var (
	languageChoices = constraint.NewChoices(Languages...)
	stageChoices    = constraint.NewChoices(stagesWithLegacy()...)
	metaHookChoices = constraint.NewChoices(MetaHooks...)
	hookTypeChoices = constraint.NewChoices(HookTypes...)
)

// Validate checks the semantic properties of the configuration: well-formed
// repository URLs and revisions, unique hook ids per block, mandatory inline
// fields on local hooks, and closed vocabularies for languages, stages, and
// meta hooks. It never mutates the configuration.
func (c *Config) Validate() error {
	if len(c.Repos) == 0 {
		return errors.New(errors.ErrCodeConfigValidation, "repos must list at least one repository block")
	}

	if err := constraint.Check(
		constraint.Field("files", c.Files, 0), constraint.ValidRegexp{},
	); err != nil {
		return wrapConstraint(err)
	}
	if err := constraint.Check(
		constraint.Field("exclude", c.Exclude, 0), constraint.ValidRegexp{},
	); err != nil {
		return wrapConstraint(err)
	}

	for _, hookType := range c.DefaultInstallHookTypes {
		if err := hookTypeChoices.Apply(constraint.Field("default_install_hook_types", hookType, 0)); err != nil {
			return wrapConstraint(err)
		}
	}
	for _, stage := range c.DefaultStages {
		if err := stageChoices.Apply(constraint.Field("default_stages", stage, 0)); err != nil {
			return wrapConstraint(err)
		}
	}
	for language := range c.DefaultLanguageVersion {
		if err := languageChoices.Apply(constraint.Field("default_language_version", language, 0)); err != nil {
			return wrapConstraint(err)
		}
	}

	for i := range c.Repos {
		if err := validateRepo(i, &c.Repos[i]); err != nil {
			return err
		}
	}

	return nil
}

func validateRepo(index int, repo *Repo) error {
	loc := fmt.Sprintf("repos[%d]", index)

	if repo.Repo == "" {
		return errors.New(errors.ErrCodeConfigValidation, loc+": repo must not be empty").
			WithDetail("line", repo.Line)
	}

	if repo.IsRemote() {
		if !remoteURLRegex.MatchString(repo.Repo) {
			return errors.New(errors.ErrCodeConfigValidation,
				fmt.Sprintf("%s: repo %q is not a valid repository URL", loc, repo.Repo)).
				WithDetail("repo", repo.Repo).
				WithDetail("line", repo.Line)
		}
		if repo.Rev == "" {
			return errors.New(errors.ErrCodeConfigValidation,
				fmt.Sprintf("%s: remote repository %q must pin a rev", loc, repo.Repo)).
				WithDetail("repo", repo.Repo).
				WithDetail("line", repo.Line)
		}
	} else if repo.Rev != "" {
		return errors.New(errors.ErrCodeConfigValidation,
			fmt.Sprintf("%s: %q repositories do not take a rev", loc, repo.Repo)).
			WithDetail("line", repo.Line)
	}

	if len(repo.Hooks) == 0 {
		return errors.New(errors.ErrCodeConfigValidation, loc+": repository block defines no hooks").
			WithDetail("repo", repo.Repo).
			WithDetail("line", repo.Line)
	}

	seen := make(map[string]bool, len(repo.Hooks))
	for j := range repo.Hooks {
		hook := &repo.Hooks[j]
		hookLoc := fmt.Sprintf("%s.hooks[%d]", loc, j)

		if hook.ID == "" {
			return errors.New(errors.ErrCodeConfigValidation, hookLoc+": hook id must not be empty").
				WithDetail("line", hook.Line)
		}
		if seen[hook.ID] {
			return errors.New(errors.ErrCodeConfigValidation,
				fmt.Sprintf("%s: duplicate hook id %q within repository block", hookLoc, hook.ID)).
				WithDetail("hook", hook.ID).
				WithDetail("line", hook.Line)
		}
		seen[hook.ID] = true

		if err := validateHook(hookLoc, repo, hook); err != nil {
			return err
		}
	}

	return nil
}

func validateHook(loc string, repo *Repo, hook *Hook) error {
	if repo.IsLocal() {
		for _, required := range []struct {
			field string
			value string
		}{
			{"name", hook.Name},
			{"entry", hook.Entry},
			{"language", hook.Language},
		} {
			field, value := required.field, required.value
			if value == "" {
				return errors.New(errors.ErrCodeConfigValidation,
					fmt.Sprintf("%s: local hook %q must set %s", loc, hook.ID, field)).
					WithDetail("hook", hook.ID).
					WithDetail("field", field).
					WithDetail("line", hook.Line)
			}
		}
	}

	if repo.IsMeta() {
		if err := metaHookChoices.Apply(constraint.Field(loc+".id", hook.ID, hook.Line)); err != nil {
			return wrapConstraint(err)
		}
	}

	if hook.Language != "" {
		if err := languageChoices.Apply(constraint.Field(loc+".language", hook.Language, hook.Line)); err != nil {
			return wrapConstraint(err)
		}
	}

	for _, stage := range hook.Stages {
		if err := stageChoices.Apply(constraint.Field(loc+".stages", stage, hook.Line)); err != nil {
			return wrapConstraint(err)
		}
	}

	if err := constraint.Check(
		constraint.Field(loc+".files", hook.Files, hook.Line), constraint.ValidRegexp{},
	); err != nil {
		return wrapConstraint(err)
	}
	if err := constraint.Check(
		constraint.Field(loc+".exclude", hook.Exclude, hook.Line), constraint.ValidRegexp{},
	); err != nil {
		return wrapConstraint(err)
	}

	return nil
}

func wrapConstraint(err error) error {
	return errors.Wrap(err, errors.ErrCodeConfigValidation, "configuration field failed validation")
}

// FindingLevel classifies lint findings.
type FindingLevel string

const (
	LevelWarning FindingLevel = "warning"
	LevelInfo    FindingLevel = "info"
)

// Finding is a non-fatal observation about the configuration. Findings never
// block the consuming runner; `validate --strict` escalates warnings.
type Finding struct {
	Level   FindingLevel `json:"level"`
	Loc     string       `json:"loc"`
	Line    int          `json:"line,omitempty"`
	Message string       `json:"message"`
}

func (f Finding) String() string {
	if f.Line > 0 {
		return fmt.Sprintf("%s: %s (line %d): %s", f.Level, f.Loc, f.Line, f.Message)
	}
	return fmt.Sprintf("%s: %s: %s", f.Level, f.Loc, f.Message)
}

// Lint reports advisory findings: mutable revision pins, hooks that can
// never see a file list, legacy stage names.
func (c *Config) Lint() []Finding {
	var findings []Finding

	for i := range c.Repos {
		repo := &c.Repos[i]
		loc := fmt.Sprintf("repos[%d]", i)

		if repo.IsRemote() && repo.Rev != "" && !pinnedRevRegex.MatchString(repo.Rev) {
			findings = append(findings, Finding{
				Level:   LevelWarning,
				Loc:     loc + ".rev",
				Line:    repo.Line,
				Message: fmt.Sprintf("rev %q looks mutable; pin an immutable tag so upgrades stay deliberate", repo.Rev),
			})
		}

		for j := range repo.Hooks {
			hook := &repo.Hooks[j]
			hookLoc := fmt.Sprintf("%s.hooks[%d]", loc, j)

			// A hook that ignores filenames but is not always_run only fires
			// when its files pattern happens to match, which is rarely what
			// a repo-wide check (like a test runner) intends.
			if !hook.PassesFilenames() && !hook.AlwaysRun {
				findings = append(findings, Finding{
					Level:   LevelWarning,
					Loc:     hookLoc,
					Line:    hook.Line,
					Message: fmt.Sprintf("hook %q sets pass_filenames: false without always_run: true; it may be skipped entirely", hook.ID),
				})
			}

			if hook.AlwaysRun && hook.Files != "" {
				findings = append(findings, Finding{
					Level:   LevelInfo,
					Loc:     hookLoc + ".files",
					Line:    hook.Line,
					Message: fmt.Sprintf("hook %q sets always_run: true, so its files pattern has no effect", hook.ID),
				})
			}

			for _, stage := range hook.Stages {
				if replacement, ok := LegacyStages[stage]; ok {
					findings = append(findings, Finding{
						Level:   LevelInfo,
						Loc:     hookLoc + ".stages",
						Line:    hook.Line,
						Message: fmt.Sprintf("stage %q is a legacy name; use %q", stage, replacement),
					})
				}
			}
		}
	}

	return findings
}

// HasWarnings reports whether any finding is warning-level.
func HasWarnings(findings []Finding) bool {
	for _, f := range findings {
		if f.Level == LevelWarning {
			return true
		}
	}
	return false
}

// FormatFindings renders findings one per line.
func FormatFindings(findings []Finding) string {
	lines := make([]string, len(findings))
	for i, f := range findings {
		lines[i] = f.String()
	}
	return strings.Join(lines, "\n")
}
