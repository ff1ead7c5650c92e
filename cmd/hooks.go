package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hooktools/core/cli"
	"github.com/hooktools/core/config"
	"github.com/hooktools/core/githook"
)

// resolveHookTypes picks the hook types to manage: the flag wins, then
// the configuration's default_install_hook_types, then pre-commit alone.
func resolveHookTypes(cmd *cobra.Command, flagTypes []string) ([]string, string, error) {
	cwd, _ := os.Getwd()

	path, err := cli.ResolveConfigFile(cmd)
	if err != nil {
		// install can still run without a config file
		path = ""
	}

	if len(flagTypes) > 0 {
		return flagTypes, cwd, nil
	}

	if path != "" {
		doc, err := config.Load(path)
		if err != nil {
			return nil, "", err
		}
		if len(doc.Config.DefaultInstallHookTypes) > 0 {
			return doc.Config.DefaultInstallHookTypes, filepath.Dir(path), nil
		}
		cwd = filepath.Dir(path)
	}

	return []string{"pre-commit"}, cwd, nil
}

func NewInstallHooksCmd() *cobra.Command {
	var hookTypes []string

	cmd := &cobra.Command{
		Use:   "install-hooks",
		Short: "Install git hook shims for the configured hook types",
		RunE: func(cmd *cobra.Command, args []string) error {
			types, dir, err := resolveHookTypes(cmd, hookTypes)
			if err != nil {
				return err
			}

			if err := githook.NewManager().Install(cmd.Context(), dir, types); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.Okf("installed hooks: %v", types))
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&hookTypes, "hook-type", "t", nil, "Hook type to install (repeatable)")
	return cmd
}

func NewUninstallHooksCmd() *cobra.Command {
	var hookTypes []string

	cmd := &cobra.Command{
		Use:   "uninstall-hooks",
		Short: "Remove git hook shims installed by hookctl",
		RunE: func(cmd *cobra.Command, args []string) error {
			types, dir, err := resolveHookTypes(cmd, hookTypes)
			if err != nil {
				return err
			}

			if err := githook.NewManager().Uninstall(cmd.Context(), dir, types); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.Okf("removed hooks: %v", types))
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&hookTypes, "hook-type", "t", nil, "Hook type to remove (repeatable)")
	return cmd
}
