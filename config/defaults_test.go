package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetDefaults(t *testing.T) {
	cfg := parseConfig(t, sampleConfig)
	cfg.SetDefaults()

	assert.Equal(t, []string{"pre-commit"}, cfg.DefaultInstallHookTypes)
	assert.Equal(t, Stages, cfg.DefaultStages)

	// Remote hooks inherit their id as display name.
	assert.Equal(t, "pycln", cfg.Repos[0].Hooks[0].Name)

	// Local hooks keep their explicit name.
	assert.Equal(t, "pytest-check", cfg.Repos[2].Hooks[0].Name)

	// Hooks without stages get the defaults.
	assert.Equal(t, cfg.DefaultStages, cfg.Repos[0].Hooks[0].Stages)
}

func TestSetDefaultsKeepsExplicitValues(t *testing.T) {
	cfg := parseConfig(t, `default_stages: [pre-push]
default_install_hook_types: [pre-push]
repos:
  - repo: https://github.com/psf/black
    rev: 22.3.0
    hooks:
      - id: black
        name: blacken
        stages: [manual]
`)
	cfg.SetDefaults()

	assert.Equal(t, []string{"pre-push"}, cfg.DefaultStages)
	assert.Equal(t, []string{"pre-push"}, cfg.DefaultInstallHookTypes)
	assert.Equal(t, "blacken", cfg.Repos[0].Hooks[0].Name)
	assert.Equal(t, []string{"manual"}, cfg.Repos[0].Hooks[0].Stages)
}

func TestVocabularies(t *testing.T) {
	assert.Contains(t, Languages, "python")
	assert.Contains(t, Languages, "system")
	assert.Contains(t, Stages, "pre-commit")
	assert.NotContains(t, Stages, "commit")
	assert.Equal(t, "pre-commit", LegacyStages["commit"])
	require.Len(t, MetaHooks, 3)
}
