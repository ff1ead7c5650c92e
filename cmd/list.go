package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hooktools/core/cli"
	"github.com/hooktools/core/config"
)

func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List configured repositories and hooks",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := cli.ResolveConfigFile(cmd)
			if err != nil {
				return err
			}

			doc, err := config.Load(path)
			if err != nil {
				return err
			}

			opts := cli.GetOptions(cmd)
			if opts.JSONOutput {
				data, err := json.MarshalIndent(doc.Config.Repos, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}

			table := cli.NewTable("REPO", "REV", "HOOK", "STAGES")
			for i := range doc.Config.Repos {
				repo := &doc.Config.Repos[i]
				for j := range repo.Hooks {
					hook := &repo.Hooks[j]
					rev := repo.Rev
					if rev == "" {
						rev = "-"
					}
					stages := strings.Join(hook.Stages, ",")
					if stages == "" {
						stages = "-"
					}
					table.AddRow(repo.Repo, rev, hook.ID, stages)
				}
			}

			fmt.Fprint(cmd.OutOrStdout(), table.Render())
			fmt.Fprintln(cmd.OutOrStdout(), cli.Muted(fmt.Sprintf("%d repos, %d hooks",
				len(doc.Config.Repos), doc.Config.HookCount())))
			return nil
		},
	}
	return cmd
}
