// Package commands implements the salesquery command line interface.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/gaborage/salesquery/config"
)

// GlobalOptions holds flags shared by every command.
type GlobalOptions struct {
	ConfigFile string
}

// NewRootCommand creates the salesquery root command with all subcommands.
func NewRootCommand(version string) *cobra.Command {
	opts := &GlobalOptions{}

	root := &cobra.Command{
		Use:   "salesquery",
		Short: "Render and run sales reporting queries",
		Long: `Builds the sales reporting queries for MySQL, PostgreSQL or Oracle and runs
them against the configured database.

Configuration is read from config.yaml (or --config), config.<env>.yaml and
environment variables such as DATABASE_HOST. Pass --config - to read the
YAML document from stdin.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.ConfigFile, "config", config.DefaultFile, "Configuration file (- for stdin)")

	root.AddCommand(
		NewPresetsCommand(),
		NewRenderCommand(),
		NewRunCommand(opts),
		NewPingCommand(opts),
	)

	return root
}
