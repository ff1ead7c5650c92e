// Package cli provides shared helpers for hookctl commands: standard
// flags, logger wiring, styled output, and error presentation.
package cli

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/hooktools/core/config"
	"github.com/hooktools/core/logging"
	"github.com/hooktools/core/settings"
)

// CommandOptions holds common options shared by hookctl commands.
type CommandOptions struct {
	ConfigFile string
	Verbose    bool
	JSONOutput bool
}

// NewStandardCommand creates a new command with standard hookctl flags.
func NewStandardCommand(use, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           use,
		Short:         short,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().StringP("config", "c", "", "Path to .pre-commit-config.yaml")

	// Accept snake_case spellings, matching the keys the config file uses.
	cmd.PersistentFlags().SetNormalizeFunc(normalizeFlagName)

	// Settings apply before any subcommand runs; flags still win because
	// GetLogger reads them afterwards.
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		applySettingsLogLevel()
	}

	return cmd
}

func applySettingsLogLevel() {
	cwd, err := os.Getwd()
	if err != nil {
		return
	}
	s, err := settings.Load(cwd)
	if err != nil || s.Log.Level == "" {
		return
	}
	level, err := logrus.ParseLevel(s.Log.Level)
	if err != nil {
		return
	}
	logging.NewLogger("hookctl")
	logging.SetLevel("hookctl", level)
}

func normalizeFlagName(f *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

// GetLogger creates a logger based on command flags.
func GetLogger(cmd *cobra.Command) *logrus.Logger {
	entry := logging.NewLogger("hookctl")
	logger := entry.Logger

	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	return logger
}

// GetOptions extracts common options from a command.
func GetOptions(cmd *cobra.Command) CommandOptions {
	configFile, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	return CommandOptions{
		ConfigFile: configFile,
		Verbose:    verbose,
		JSONOutput: jsonOutput,
	}
}

// ResolveConfigFile returns the config path from the flag, or searches
// upward from the working directory when the flag is empty.
func ResolveConfigFile(cmd *cobra.Command) (string, error) {
	configFile, _ := cmd.Flags().GetString("config")
	if configFile != "" {
		return configFile, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	return config.FindConfigFile(cwd)
}
