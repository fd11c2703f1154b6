package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/gaborage/salesquery/cache"
	"github.com/gaborage/salesquery/cache/memory"
	"github.com/gaborage/salesquery/cache/redis"
	"github.com/gaborage/salesquery/config"
	"github.com/gaborage/salesquery/database"
	"github.com/gaborage/salesquery/logger"
	"github.com/gaborage/salesquery/query"
	"github.com/gaborage/salesquery/sales"
)

const stdinConfig = "-"

// withConnection opens the configured database for the duration of fn.
var withConnection = database.WithConnection

// RunOptions holds options for the run command
type RunOptions struct {
	Limit  int64
	Year   int
	Format string
}

// NewRunCommand creates the run command
func NewRunCommand(global *GlobalOptions) *cobra.Command {
	opts := &RunOptions{}

	cmd := &cobra.Command{
		Use:   "run <preset>",
		Short: "Execute a report preset and print its rows",
		Example: `  # Top five customers as a table
  salesquery run top-customers --limit 5

  # Monthly trend as CSV
  salesquery run monthly-trend --year 2018 --format csv`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completePresets,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreset(cmd, global, opts, args[0])
		},
	}

	cmd.Flags().Int64VarP(&opts.Limit, "limit", "l", defaultLimit, "Row limit for ranking presets")
	cmd.Flags().IntVarP(&opts.Year, "year", "y", time.Now().Year(), "Year for the monthly trend")
	cmd.Flags().StringVarP(&opts.Format, "format", "o", string(FormatTable), "Output format (table, csv, json, yaml)")
	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{string(FormatTable), string(FormatCSV), string(FormatJSON), string(FormatYAML)}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runPreset(cmd *cobra.Command, global *GlobalOptions, opts *RunOptions, name string) error {
	formatter, err := NewFormatter(OutputFormat(opts.Format))
	if err != nil {
		return err
	}

	cfg, log, err := loadRuntime(cmd, global)
	if err != nil {
		return err
	}
	log = log.WithFields(map[string]any{"run_id": uuid.NewString(), "preset": name})

	resultCache, err := newCache(&cfg.Cache)
	if err != nil {
		return err
	}
	if resultCache != nil {
		defer func() {
			if err := resultCache.Close(); err != nil {
				log.Warn().Err(err).Msg("Failed to close result cache")
			}
		}()
	}

	ctx := logger.WithDBCounter(cmd.Context())

	var res *query.Result
	err = withConnection(ctx, &cfg.Database, log, func(ctx context.Context, db database.Interface) error {
		exec := query.DatabaseOperation(query.NewExecutor(db), query.OptionsFromConfig(cfg, resultCache, log))
		svc := sales.NewReportService(exec, db.DatabaseType())

		var runErr error
		res, runErr = svc.Preset(ctx, name, opts.Limit, opts.Year)
		return runErr
	})
	if err != nil {
		log.Error().Err(err).Msg("Report preset failed")
		return err
	}
	log.Info().
		Int("rows", res.Len()).
		Int64("db_calls", logger.GetDBCounter(ctx)).
		Dur("db_elapsed", time.Duration(logger.GetDBElapsed(ctx))).
		Msg("Report preset completed")

	return formatter.Format(res, cmd.OutOrStdout())
}

// loadRuntime loads the configuration and builds the logger it describes.
// Logs go to stderr so stdout carries only command output. A config path of
// "-" reads the YAML document from stdin.
func loadRuntime(cmd *cobra.Command, global *GlobalOptions) (*config.Config, logger.Logger, error) {
	var (
		cfg *config.Config
		err error
	)
	if global.ConfigFile == stdinConfig {
		var data []byte
		if data, err = io.ReadAll(cmd.InOrStdin()); err != nil {
			return nil, nil, fmt.Errorf("failed to read config from stdin: %w", err)
		}
		cfg, err = config.LoadBytes(data)
	} else {
		cfg, err = config.LoadFile(global.ConfigFile)
	}
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger.NewWithWriter(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Pretty, nil), nil
}

// newCache returns the configured result cache, or nil when caching is disabled.
func newCache(cfg *config.CacheConfig) (cache.Cache, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	switch cfg.Type {
	case config.CacheMemory:
		return memory.New(memory.Options{MaxEntries: cfg.MaxEntries}), nil
	case config.CacheRedis:
		client, err := redis.NewClient(redis.FromConfig(cfg.Redis))
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unsupported cache type: %s", cfg.Type)
	}
}
