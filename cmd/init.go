package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hooktools/core/cli"
	"github.com/hooktools/core/config"
	"github.com/hooktools/core/errors"
)

const starterConfig = `repos:
  - repo: https://github.com/hadialqattan/pycln
    rev: v1.2.5
    hooks:
      - id: pycln
        args: [--config=pyproject.toml]
  - repo: https://github.com/psf/black
    rev: 22.3.0
    hooks:
      - id: black
        language_version: python3
  - repo: https://gitlab.com/pycqa/flake8
    rev: 4.0.1
    hooks:
      - id: flake8
  - repo: https://github.com/pre-commit/mirrors-mypy
    rev: v0.942
    hooks:
      - id: mypy
  - repo: local
    hooks:
      - id: pytest-check
        name: pytest-check
        entry: pytest
        language: system
        pass_filenames: false
        always_run: true
`

func NewInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a starter .pre-commit-config.yaml",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultConfigFileName
			if flag, _ := cmd.Flags().GetString("config"); flag != "" {
				path = flag
			}

			if _, err := os.Stat(path); err == nil && !force {
				return errors.New(errors.ErrCodeInvalidInput,
					fmt.Sprintf("%s already exists; use --force to overwrite", path))
			}

			// The starter must pass our own validation.
			doc, err := config.LoadFromBytes([]byte(starterConfig))
			if err == nil {
				err = doc.Config.Validate()
			}
			if err != nil {
				return errors.Wrap(err, errors.ErrCodeInternal, "starter configuration is invalid")
			}

			if err := os.WriteFile(path, []byte(starterConfig), 0o644); err != nil {
				return errors.Wrap(err, errors.ErrCodePermissionDenied, "write "+path)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.Okf("wrote %s", path))
			fmt.Fprintln(cmd.OutOrStdout(), cli.Muted("Run 'hookctl install-hooks' to activate it."))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing configuration")
	return cmd
}
