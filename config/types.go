package config

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

//go:generate go run ../tools/schema-generator/

// Sentinel values for the repo field. Blocks using them define hooks inline
// (local) or reference the runner's built-in meta hooks (meta) instead of
// pointing at a remote repository.
const (
	RepoLocal = "local"
	RepoMeta  = "meta"
)

// Hook is a single hook entry: one named invocation of a tool, as exposed by
// the repository block it belongs to.
type Hook struct {
	ID                      string   `yaml:"id" json:"id" jsonschema:"description=Identifier of the hook exposed by the repository"`
	Name                    string   `yaml:"name,omitempty" json:"name,omitempty" jsonschema:"description=Override for the hook's display name (required for local hooks)"`
	Alias                   string   `yaml:"alias,omitempty" json:"alias,omitempty" jsonschema:"description=Additional id to select the hook with on the command line"`
	Entry                   string   `yaml:"entry,omitempty" json:"entry,omitempty" jsonschema:"description=Executable to run (required for local hooks)"`
	Language                string   `yaml:"language,omitempty" json:"language,omitempty" jsonschema:"description=Language the hook is written in (required for local hooks)"`
	LanguageVersion         string   `yaml:"language_version,omitempty" json:"language_version,omitempty" jsonschema:"description=Language runtime version pin, e.g. python3.10"`
	Files                   string   `yaml:"files,omitempty" json:"files,omitempty" jsonschema:"description=Regular expression selecting files to run on"`
	Exclude                 string   `yaml:"exclude,omitempty" json:"exclude,omitempty" jsonschema:"description=Regular expression deselecting files"`
	Types                   []string `yaml:"types,omitempty" json:"types,omitempty" jsonschema:"description=File types to run on (AND semantics)"`
	TypesOr                 []string `yaml:"types_or,omitempty" json:"types_or,omitempty" jsonschema:"description=File types to run on (OR semantics)"`
	ExcludeTypes            []string `yaml:"exclude_types,omitempty" json:"exclude_types,omitempty" jsonschema:"description=File types to exclude"`
	Args                    []string `yaml:"args,omitempty" json:"args,omitempty" jsonschema:"description=Additional arguments passed to the hook entry"`
	Stages                  []string `yaml:"stages,omitempty" json:"stages,omitempty" jsonschema:"description=Git hook stages the hook runs in"`
	AdditionalDependencies  []string `yaml:"additional_dependencies,omitempty" json:"additional_dependencies,omitempty" jsonschema:"description=Extra packages installed into the hook environment"`
	AlwaysRun               bool     `yaml:"always_run,omitempty" json:"always_run,omitempty" jsonschema:"description=Run even when no matching files changed"`
	Verbose                 bool     `yaml:"verbose,omitempty" json:"verbose,omitempty" jsonschema:"description=Print hook output even on success"`
	LogFile                 string   `yaml:"log_file,omitempty" json:"log_file,omitempty" jsonschema:"description=File the hook output is appended to"`
	PassFilenames           *bool    `yaml:"pass_filenames,omitempty" json:"pass_filenames,omitempty" jsonschema:"description=Whether changed filenames are passed as arguments (default true)"`
	MinimumPreCommitVersion string   `yaml:"minimum_pre_commit_version,omitempty" json:"minimum_pre_commit_version,omitempty" jsonschema:"description=Minimum runner version required by this hook"`

	// Line is the source line of the hook block, for diagnostics.
	Line int `yaml:"-" json:"-" jsonschema:"-"`
}

// UnmarshalYAML decodes the hook block and records its source line.
func (h *Hook) UnmarshalYAML(node *yaml.Node) error {
	type rawHook Hook
	var raw rawHook
	if err := node.Decode(&raw); err != nil {
		return err
	}
	*h = Hook(raw)
	h.Line = node.Line
	return nil
}

// PassesFilenames reports the effective pass_filenames value; the consuming
// runner defaults it to true when unset.
func (h *Hook) PassesFilenames() bool {
	return h.PassFilenames == nil || *h.PassFilenames
}

// Repo is one repository block: a source of hooks pinned to a revision.
type Repo struct {
	Repo  string `yaml:"repo" json:"repo" jsonschema:"description=Repository URL, or the sentinels 'local' and 'meta'"`
	Rev   string `yaml:"rev,omitempty" json:"rev,omitempty" jsonschema:"description=Immutable tag or revision of the repository to use"`
	Hooks []Hook `yaml:"hooks" json:"hooks" jsonschema:"description=Ordered hooks provided by this repository"`

	// Line is the source line of the repo block, for diagnostics.
	Line int `yaml:"-" json:"-" jsonschema:"-"`
}

// UnmarshalYAML decodes the repository block and records its source line.
func (r *Repo) UnmarshalYAML(node *yaml.Node) error {
	type rawRepo Repo
	var raw rawRepo
	if err := node.Decode(&raw); err != nil {
		return err
	}
	*r = Repo(raw)
	r.Line = node.Line
	return nil
}

// IsLocal reports whether the block defines its hooks inline.
func (r *Repo) IsLocal() bool { return r.Repo == RepoLocal }

// IsMeta reports whether the block references the runner's meta hooks.
func (r *Repo) IsMeta() bool { return r.Repo == RepoMeta }

// IsRemote reports whether the block references a fetched repository.
func (r *Repo) IsRemote() bool { return !r.IsLocal() && !r.IsMeta() }

// Config represents a .pre-commit-config.yaml document.
type Config struct {
	Repos                   []Repo            `yaml:"repos" json:"repos" jsonschema:"description=Ordered repository blocks; execution order follows document order"`
	DefaultInstallHookTypes []string          `yaml:"default_install_hook_types,omitempty" json:"default_install_hook_types,omitempty" jsonschema:"description=Hook types installed by default"`
	DefaultLanguageVersion  map[string]string `yaml:"default_language_version,omitempty" json:"default_language_version,omitempty" jsonschema:"description=Default language runtime versions by language"`
	DefaultStages           []string          `yaml:"default_stages,omitempty" json:"default_stages,omitempty" jsonschema:"description=Default stages for hooks that do not set their own"`
	Files                   string            `yaml:"files,omitempty" json:"files,omitempty" jsonschema:"description=Global file selection regular expression"`
	Exclude                 string            `yaml:"exclude,omitempty" json:"exclude,omitempty" jsonschema:"description=Global file exclusion regular expression"`
	FailFast                bool              `yaml:"fail_fast,omitempty" json:"fail_fast,omitempty" jsonschema:"description=Stop running hooks after the first failure"`
	MinimumPreCommitVersion string            `yaml:"minimum_pre_commit_version,omitempty" json:"minimum_pre_commit_version,omitempty" jsonschema:"description=Minimum runner version required by this configuration"`

	// CI captures the hosted-CI block verbatim; its schema belongs to the
	// hosted service, not to this toolkit.
	CI map[string]interface{} `yaml:"ci,omitempty" json:"ci,omitempty" jsonschema:"description=Settings for the hosted CI service"`
}

// CIConfig is the typed view of the hosted-CI block.
type CIConfig struct {
	AutofixCommitMsg    string   `yaml:"autofix_commit_msg" mapstructure:"autofix_commit_msg"`
	AutofixPRs          *bool    `yaml:"autofix_prs" mapstructure:"autofix_prs"`
	AutoupdateBranch    string   `yaml:"autoupdate_branch" mapstructure:"autoupdate_branch"`
	AutoupdateCommitMsg string   `yaml:"autoupdate_commit_msg" mapstructure:"autoupdate_commit_msg"`
	AutoupdateSchedule  string   `yaml:"autoupdate_schedule" mapstructure:"autoupdate_schedule"`
	Skip                []string `yaml:"skip" mapstructure:"skip"`
	Submodules          bool     `yaml:"submodules" mapstructure:"submodules"`
}

// UnmarshalCI decodes the free-form ci block into target. The target must be
// a pointer; a missing ci block leaves it zero-valued.
func (c *Config) UnmarshalCI(target interface{}) error {
	if c.CI == nil {
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  target,
		TagName: "mapstructure",
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(c.CI); err != nil {
		return fmt.Errorf("failed to decode ci block: %w", err)
	}

	return nil
}

// HookCount returns the total number of hook entries across all blocks.
func (c *Config) HookCount() int {
	n := 0
	for _, repo := range c.Repos {
		n += len(repo.Hooks)
	}
	return n
}
