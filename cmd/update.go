package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hooktools/core/cli"
	"github.com/hooktools/core/config"
	"github.com/hooktools/core/errors"
	"github.com/hooktools/core/git"
	"github.com/hooktools/core/revs"
	"github.com/hooktools/core/settings"
)

// newTagLister produces the tag source for update plans. Tests swap it
// out to answer tag listings without a network.
var newTagLister = func() revs.TagLister { return git.NewRemote() }

func NewUpdateCmd() *cobra.Command {
	var dryRun bool
	var freeze bool
	var repo string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update pinned revisions to the latest tags",
		Long: `Queries each remote repository for its tags and rewrites the rev
values to the newest version tag. Comments, key order and block order are
preserved, but the file is re-encoded in canonical form (two-space indent),
the same shape "hookctl fmt" produces.

Repositories listed under update.exclude in .hookctl.toml are skipped.

Examples:
  hookctl update --dry-run
  hookctl update --freeze
  hookctl update --repo https://github.com/psf/black`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := cli.ResolveConfigFile(cmd)
			if err != nil {
				return err
			}

			doc, err := config.Load(path)
			if err != nil {
				return err
			}

			cfg, err := settings.Load(filepath.Dir(path))
			if err != nil {
				return err
			}

			logger := cli.GetLogger(cmd)

			planner := revs.NewPlanner(newTagLister())
			opts := revs.Options{Freeze: freeze || cfg.Update.Freeze, Repo: repo}

			bumps, planErr := planner.Plan(cmd.Context(), doc, opts)

			kept := bumps[:0]
			for _, b := range bumps {
				if cfg.Excluded(b.RepoURL) {
					logger.WithField("repo", b.RepoURL).Debug("Skipping excluded repository")
					continue
				}
				kept = append(kept, b)
			}
			bumps = kept

			for _, b := range bumps {
				fmt.Fprintln(cmd.OutOrStdout(), b.String())
			}

			if len(bumps) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), cli.Okf("all revs are up to date"))
			} else if !dryRun {
				revs.Apply(doc, bumps)
				formatted, err := doc.Encode()
				if err != nil {
					return err
				}
				info, err := os.Stat(path)
				if err != nil {
					return err
				}
				if err := os.WriteFile(path, formatted, info.Mode().Perm()); err != nil {
					return errors.Wrap(err, errors.ErrCodePermissionDenied, "write "+path)
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.Okf("updated %d rev(s) in %s", len(bumps), path))
			}

			// Unreachable remotes are reported after any successful bumps
			// have been applied.
			return planErr
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print planned updates without writing")
	cmd.Flags().BoolVar(&freeze, "freeze", false, "Pin revs to commit SHAs with a frozen tag comment")
	cmd.Flags().StringVar(&repo, "repo", "", "Only update the repository with this URL")
	return cmd
}
