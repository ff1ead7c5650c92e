package main

import (
	"os"

	"github.com/hooktools/core/cli"
	"github.com/hooktools/core/cmd"
	"github.com/hooktools/core/version"
)

func main() {
	rootCmd := cli.NewStandardCommand(
		"hookctl",
		"Inspect, validate and maintain .pre-commit-config.yaml files",
	)
	rootCmd.Version = version.Version
	cli.SetVersionTemplate(rootCmd, cli.VersionInfo{
		Version:   version.Version,
		Commit:    version.Commit,
		BuildDate: version.BuildDate,
		BuildArch: version.GetInfo().Platform,
	})

	rootCmd.AddCommand(cmd.NewValidateCmd())
	rootCmd.AddCommand(cmd.NewListCmd())
	rootCmd.AddCommand(cmd.NewFmtCmd())
	rootCmd.AddCommand(cmd.NewUpdateCmd())
	rootCmd.AddCommand(cmd.NewInitCmd())
	rootCmd.AddCommand(cmd.NewInstallHooksCmd())
	rootCmd.AddCommand(cmd.NewUninstallHooksCmd())
	rootCmd.AddCommand(cmd.NewSchemaCmd())
	rootCmd.AddCommand(cmd.NewVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		verbose, _ := rootCmd.PersistentFlags().GetBool("verbose")
		cli.NewErrorHandler(verbose).Handle(err)
		os.Exit(1)
	}
}
