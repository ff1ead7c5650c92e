package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hooktools/core/schema"
)

func NewSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema for .pre-commit-config.yaml",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), string(schema.EmbeddedSchema()))
			return nil
		},
	}
}
