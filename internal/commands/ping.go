package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/gaborage/salesquery/database"
)

const pingTimeout = 10 * time.Second

// NewPingCommand creates the ping command
func NewPingCommand(global *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the configured database is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := loadRuntime(cmd, global)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), pingTimeout)
			defer cancel()

			return withConnection(ctx, &cfg.Database, log, func(ctx context.Context, db database.Interface) error {
				start := time.Now()
				if err := db.Health(ctx); err != nil {
					return fmt.Errorf("database health check failed: %w", err)
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s at %s is reachable (%s)\n",
					db.DatabaseType(), cfg.Database.Host, time.Since(start).Round(time.Millisecond))
				return err
			})
		},
	}
}
