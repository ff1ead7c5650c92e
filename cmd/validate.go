package cmd

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/hooktools/core/cli"
	"github.com/hooktools/core/config"
	"github.com/hooktools/core/errors"
	"github.com/hooktools/core/settings"
)

// validateReport is the JSON shape emitted with --json.
type validateReport struct {
	Path     string           `json:"path"`
	Valid    bool             `json:"valid"`
	Error    string           `json:"error,omitempty"`
	Findings []config.Finding `json:"findings,omitempty"`
}

func NewValidateCmd() *cobra.Command {
	var strict bool
	var watch bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the pre-commit configuration",
		Long: `Checks the configuration against the schema and the semantic rules:
well-formed repository URLs and revs, unique hook ids per block, known
languages and stages, and compilable file patterns. Lint findings such as
mutable revs are reported as warnings.

Examples:
  hookctl validate
  hookctl validate --strict
  hookctl validate --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := cli.ResolveConfigFile(cmd)
			if err != nil {
				return err
			}

			if cfg, err := settings.Load(filepath.Dir(path)); err == nil && cfg.Validate.Strict {
				strict = true
			}

			opts := cli.GetOptions(cmd)
			if !watch {
				return runValidate(cmd, path, strict, opts.JSONOutput)
			}
			return watchValidate(cmd, path, strict, opts.JSONOutput)
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Treat warnings as errors")
	cmd.Flags().BoolVar(&watch, "watch", false, "Re-validate whenever the file changes")
	return cmd
}

func runValidate(cmd *cobra.Command, path string, strict, jsonOut bool) error {
	doc, err := config.Load(path)
	if err == nil {
		err = doc.Config.Validate()
	}
	if err != nil {
		if jsonOut {
			printReport(cmd, validateReport{Path: path, Valid: false, Error: err.Error()})
		}
		return err
	}

	findings := doc.Config.Lint()

	if jsonOut {
		printReport(cmd, validateReport{Path: path, Valid: true, Findings: findings})
	} else {
		if len(findings) > 0 {
			fmt.Fprintln(cmd.OutOrStdout(), config.FormatFindings(findings))
		}
		if config.HasWarnings(findings) {
			fmt.Fprintln(cmd.OutOrStdout(), cli.Warnf("%s: valid with warnings (%d repos, %d hooks)",
				path, len(doc.Config.Repos), doc.Config.HookCount()))
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), cli.Okf("%s: valid (%d repos, %d hooks)",
				path, len(doc.Config.Repos), doc.Config.HookCount()))
		}
	}

	if strict && config.HasWarnings(findings) {
		return errors.New(errors.ErrCodeConfigValidation, "strict mode: warnings present")
	}
	return nil
}

// watchValidate re-runs validation whenever the config file is written.
// Editors often replace the file rather than writing in place, so the
// parent directory is watched and events are filtered by name.
func watchValidate(cmd *cobra.Command, path string, strict, jsonOut bool) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "create file watcher")
	}
	defer watcher.Close()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "watch "+dir)
	}

	report := func() {
		if err := runValidate(cmd, path, strict, jsonOut); err != nil && !jsonOut {
			fmt.Fprintln(cmd.ErrOrStderr(), cli.Errorf("%v", err))
		}
	}
	report()

	for {
		select {
		case <-cmd.Context().Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(path) {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				report()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintln(cmd.ErrOrStderr(), cli.Errorf("watch error: %v", err))
		}
	}
}

func printReport(cmd *cobra.Command, report validateReport) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
}
