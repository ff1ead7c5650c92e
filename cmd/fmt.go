package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hooktools/core/cli"
	"github.com/hooktools/core/config"
	"github.com/hooktools/core/errors"
)

func NewFmtCmd() *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "fmt",
		Short: "Rewrite the configuration in canonical form",
		Long: `Re-encodes the configuration with two-space indentation and stable key
order. Comments and repository ordering are preserved.

Examples:
  hookctl fmt
  hookctl fmt --check`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := cli.ResolveConfigFile(cmd)
			if err != nil {
				return err
			}

			original, err := os.ReadFile(path)
			if err != nil {
				return errors.ConfigNotFound(path)
			}

			doc, err := config.Load(path)
			if err != nil {
				return err
			}

			formatted, err := doc.Encode()
			if err != nil {
				return err
			}

			if bytes.Equal(original, formatted) {
				fmt.Fprintln(cmd.OutOrStdout(), cli.Okf("%s is already formatted", path))
				return nil
			}

			if check {
				return errors.ConfigInvalid(fmt.Sprintf("%s is not canonically formatted", path))
			}

			info, err := os.Stat(path)
			if err != nil {
				return err
			}
			if err := os.WriteFile(path, formatted, info.Mode().Perm()); err != nil {
				return errors.Wrap(err, errors.ErrCodePermissionDenied, "write "+path)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.Okf("reformatted %s", path))
			return nil
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "Exit non-zero instead of rewriting")
	return cmd
}
