package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hooktools/core/cli"
	"github.com/hooktools/core/errors"
	"github.com/hooktools/core/testutil"
)

const validConfig = `repos:
  - repo: https://github.com/psf/black
    rev: 22.3.0
    hooks:
      - id: black
  - repo: local
    hooks:
      - id: pytest-check
        name: pytest-check
        entry: pytest
        language: system
        pass_filenames: false
        always_run: true
`

// execute runs a subcommand under a standard root, capturing stdout.
func execute(t *testing.T, sub *cobra.Command, args ...string) (string, error) {
	t.Helper()

	root := cli.NewStandardCommand("hookctl", "test harness")
	root.AddCommand(sub)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func TestValidateCmdAcceptsValidConfig(t *testing.T) {
	path := testutil.WriteConfig(t, t.TempDir(), validConfig)

	out, err := execute(t, NewValidateCmd(), "validate", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "valid (2 repos, 2 hooks)")
}

func TestValidateCmdRejectsDuplicateIDs(t *testing.T) {
	path := testutil.WriteConfig(t, t.TempDir(), `repos:
  - repo: https://github.com/psf/black
    rev: 22.3.0
    hooks:
      - id: black
      - id: black
`)

	_, err := execute(t, NewValidateCmd(), "validate", "--config", path)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeConfigValidation, errors.GetCode(err))
}

func TestValidateCmdStrictEscalatesWarnings(t *testing.T) {
	path := testutil.WriteConfig(t, t.TempDir(), `repos:
  - repo: https://github.com/psf/black
    rev: main
    hooks:
      - id: black
`)

	out, err := execute(t, NewValidateCmd(), "validate", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "looks mutable")
	assert.Contains(t, out, "valid with warnings")

	_, err = execute(t, NewValidateCmd(), "validate", "--strict", "--config", path)
	require.Error(t, err)
}

func TestValidateCmdJSONOutput(t *testing.T) {
	path := testutil.WriteConfig(t, t.TempDir(), validConfig)

	out, err := execute(t, NewValidateCmd(), "validate", "--json", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, `"valid": true`)
	assert.Contains(t, out, `"path"`)
}

func TestListCmdShowsHooks(t *testing.T) {
	path := testutil.WriteConfig(t, t.TempDir(), validConfig)

	out, err := execute(t, NewListCmd(), "list", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "black")
	assert.Contains(t, out, "pytest-check")
	assert.Contains(t, out, "22.3.0")
	assert.Contains(t, out, "2 repos, 2 hooks")
}

func TestFmtCmdCheckDetectsDrift(t *testing.T) {
	// Four-space indentation is valid YAML but not canonical.
	path := testutil.WriteConfig(t, t.TempDir(), `repos:
    - repo: https://github.com/psf/black
      rev: 22.3.0
      hooks:
          - id: black
`)

	_, err := execute(t, NewFmtCmd(), "fmt", "--check", "--config", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not canonically formatted")
}

func TestFmtCmdRewritesInPlace(t *testing.T) {
	path := testutil.WriteConfig(t, t.TempDir(), `repos:
    - repo: https://github.com/psf/black
      rev: 22.3.0
      hooks:
          - id: black
`)

	out, err := execute(t, NewFmtCmd(), "fmt", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "reformatted")

	// A second run is a no-op.
	out, err = execute(t, NewFmtCmd(), "fmt", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "already formatted")
}

func TestInitCmdWritesStarterThatValidates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".pre-commit-config.yaml")

	_, err := execute(t, NewInitCmd(), "init", "--config", path)
	require.NoError(t, err)

	out, err := execute(t, NewValidateCmd(), "validate", "--strict", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "valid")
}

func TestInitCmdRefusesToOverwrite(t *testing.T) {
	path := testutil.WriteConfig(t, t.TempDir(), validConfig)

	_, err := execute(t, NewInitCmd(), "init", "--config", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = execute(t, NewInitCmd(), "init", "--force", "--config", path)
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "pytest-check")
}

func TestSchemaCmdPrintsSchema(t *testing.T) {
	out, err := execute(t, NewSchemaCmd(), "schema")
	require.NoError(t, err)
	assert.Contains(t, out, `"repos"`)
	assert.Contains(t, out, "json-schema")
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, NewVersionCmd(), "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Version:")

	out, err = execute(t, NewVersionCmd(), "version", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"goVersion"`)
}
