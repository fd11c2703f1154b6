package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gaborage/salesquery/database"
)

// NewPresetsCommand creates the presets command
func NewPresetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the available report presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range database.Presets() {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// completePresets offers preset names for the first positional argument.
func completePresets(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return database.Presets(), cobra.ShellCompDirectiveNoFileComp
}
