package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/hooktools/core/errors"
)

func parseConfig(t *testing.T, content string) *Config {
	t.Helper()
	var cfg Config
	require.NoError(t, yaml.Unmarshal([]byte(content), &cfg))
	return &cfg
}

func TestValidateAcceptsWellFormedConfig(t *testing.T) {
	cfg := parseConfig(t, sampleConfig)
	assert.NoError(t, cfg.Validate())
}

func TestValidateRequiresRepos(t *testing.T) {
	cfg := &Config{}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeConfigValidation, errors.GetCode(err))
}

func TestValidateRejectsMalformedRepoURL(t *testing.T) {
	cfg := parseConfig(t, `repos:
  - repo: not a url
    rev: v1.0.0
    hooks:
      - id: x
`)
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a valid repository URL")
}

func TestValidateAcceptsCommonURLSchemes(t *testing.T) {
	for _, url := range []string{
		"https://github.com/psf/black",
		"http://internal.example/repo",
		"git://example.com/repo.git",
		"ssh://git@example.com/repo.git",
		"git@github.com:psf/black.git",
	} {
		cfg := parseConfig(t, `repos:
  - repo: `+url+`
    rev: v1.0.0
    hooks:
      - id: x
`)
		assert.NoError(t, cfg.Validate(), url)
	}
}

func TestValidateRequiresRevOnRemote(t *testing.T) {
	cfg := parseConfig(t, `repos:
  - repo: https://github.com/psf/black
    hooks:
      - id: black
`)
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must pin a rev")
}

func TestValidateRejectsRevOnLocal(t *testing.T) {
	cfg := parseConfig(t, `repos:
  - repo: local
    rev: v1.0.0
    hooks:
      - id: mine
        name: mine
        entry: mine
        language: system
`)
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "do not take a rev")
}

func TestValidateRejectsDuplicateHookIDs(t *testing.T) {
	cfg := parseConfig(t, `repos:
  - repo: https://github.com/psf/black
    rev: 22.3.0
    hooks:
      - id: black
      - id: black
`)
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate hook id")
}

func TestValidateAllowsSameIDAcrossBlocks(t *testing.T) {
	cfg := parseConfig(t, `repos:
  - repo: https://github.com/psf/black
    rev: 22.3.0
    hooks:
      - id: black
  - repo: local
    hooks:
      - id: black
        name: local black
        entry: black
        language: system
`)
	assert.NoError(t, cfg.Validate())
}

func TestValidateLocalHookRequiredFields(t *testing.T) {
	for _, tc := range []struct {
		name    string
		hook    string
		missing string
	}{
		{"missing name", "entry: pytest\n        language: system", "name"},
		{"missing entry", "name: pytest\n        language: system", "entry"},
		{"missing language", "name: pytest\n        entry: pytest", "language"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			cfg := parseConfig(t, `repos:
  - repo: local
    hooks:
      - id: pytest-check
        `+tc.hook+`
`)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "must set "+tc.missing)
		})
	}
}

func TestValidateMetaHookIDs(t *testing.T) {
	cfg := parseConfig(t, `repos:
  - repo: meta
    hooks:
      - id: check-hooks-apply
`)
	assert.NoError(t, cfg.Validate())

	cfg = parseConfig(t, `repos:
  - repo: meta
    hooks:
      - id: not-a-meta-hook
`)
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is not one of")
}

func TestValidateUnknownLanguage(t *testing.T) {
	cfg := parseConfig(t, `repos:
  - repo: local
    hooks:
      - id: x
        name: x
        entry: x
        language: cobol
`)
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"cobol" is not one of`)
}

func TestValidateStagesIncludingLegacy(t *testing.T) {
	cfg := parseConfig(t, `repos:
  - repo: https://github.com/psf/black
    rev: 22.3.0
    hooks:
      - id: black
        stages: [pre-commit, push]
`)
	assert.NoError(t, cfg.Validate())

	cfg = parseConfig(t, `repos:
  - repo: https://github.com/psf/black
    rev: 22.3.0
    hooks:
      - id: black
        stages: [before-lunch]
`)
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsBrokenRegex(t *testing.T) {
	cfg := parseConfig(t, `repos:
  - repo: https://github.com/psf/black
    rev: 22.3.0
    hooks:
      - id: black
        files: "([unclosed"
`)
	err := cfg.Validate()
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeConfigValidation, errors.GetCode(err))
}

func TestValidateDoesNotMutate(t *testing.T) {
	cfg := parseConfig(t, sampleConfig)
	before, err := yaml.Marshal(cfg)
	require.NoError(t, err)

	require.NoError(t, cfg.Validate())

	after, err := yaml.Marshal(cfg)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestLintWarnsOnMutableRev(t *testing.T) {
	cfg := parseConfig(t, `repos:
  - repo: https://github.com/psf/black
    rev: main
    hooks:
      - id: black
`)
	findings := cfg.Lint()
	require.NotEmpty(t, findings)
	assert.Equal(t, LevelWarning, findings[0].Level)
	assert.Contains(t, findings[0].Message, "looks mutable")
	assert.True(t, HasWarnings(findings))
}

func TestLintAcceptsPinnedRevs(t *testing.T) {
	for _, rev := range []string{"v1.2.5", "22.3.0", "4.0.1", "abc1234def5678"} {
		cfg := parseConfig(t, `repos:
  - repo: https://github.com/psf/black
    rev: "`+rev+`"
    hooks:
      - id: black
`)
		for _, f := range cfg.Lint() {
			assert.NotContains(t, f.Message, "looks mutable", rev)
		}
	}
}

func TestLintWarnsOnSkippableHook(t *testing.T) {
	cfg := parseConfig(t, `repos:
  - repo: local
    hooks:
      - id: pytest-check
        name: pytest-check
        entry: pytest
        language: system
        pass_filenames: false
`)
	findings := cfg.Lint()
	require.Len(t, findings, 1)
	assert.Equal(t, LevelWarning, findings[0].Level)
	assert.Contains(t, findings[0].Message, "pass_filenames: false without always_run: true")
}

func TestLintQuietOnPytestCheckShape(t *testing.T) {
	// pass_filenames: false together with always_run: true is the intended
	// shape for repo-wide hooks and produces no findings.
	cfg := parseConfig(t, `repos:
  - repo: local
    hooks:
      - id: pytest-check
        name: pytest-check
        entry: pytest
        language: system
        pass_filenames: false
        always_run: true
`)
	assert.Empty(t, cfg.Lint())
}

func TestLintFlagsLegacyStages(t *testing.T) {
	cfg := parseConfig(t, `repos:
  - repo: https://github.com/psf/black
    rev: 22.3.0
    hooks:
      - id: black
        stages: [push]
`)
	findings := cfg.Lint()
	require.Len(t, findings, 1)
	assert.Equal(t, LevelInfo, findings[0].Level)
	assert.Contains(t, findings[0].Message, `"pre-push"`)
	assert.False(t, HasWarnings(findings))
}

func TestFormatFindings(t *testing.T) {
	findings := []Finding{
		{Level: LevelWarning, Loc: "repos[0].rev", Line: 3, Message: "mutable"},
		{Level: LevelInfo, Loc: "repos[1]", Message: "legacy"},
	}
	out := FormatFindings(findings)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "warning: repos[0].rev (line 3): mutable")
	assert.Contains(t, lines[1], "info: repos[1]: legacy")
}
