package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/gaborage/salesquery/database"
	"github.com/gaborage/salesquery/database/sqlcheck"
)

const defaultLimit = 10

// RenderOptions holds options for the render command
type RenderOptions struct {
	Limit  int64
	Year   int
	Vendor string
	Check  bool
}

// NewRenderCommand creates the render command
func NewRenderCommand() *cobra.Command {
	opts := &RenderOptions{}

	cmd := &cobra.Command{
		Use:   "render <preset>",
		Short: "Print the SQL of a report preset",
		Example: `  # MySQL text of the top customers report
  salesquery render top-customers --limit 5

  # Oracle pagination
  salesquery render top-products --vendor oracle

  # Parse the rendered statement before printing it
  salesquery render monthly-trend --year 2018 --check`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completePresets,
		RunE: func(cmd *cobra.Command, args []string) error {
			sql, err := renderPreset(args[0], opts)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), sql)
			return err
		},
	}

	cmd.Flags().Int64VarP(&opts.Limit, "limit", "l", defaultLimit, "Row limit for ranking presets")
	cmd.Flags().IntVarP(&opts.Year, "year", "y", time.Now().Year(), "Year for the monthly trend")
	cmd.Flags().StringVar(&opts.Vendor, "vendor", database.MySQL, "SQL dialect (mysql|postgresql|oracle)")
	cmd.Flags().BoolVar(&opts.Check, "check", false, "Parse the rendered SQL (mysql only)")

	return cmd
}

func renderPreset(name string, opts *RenderOptions) (string, error) {
	if err := database.ValidateDatabaseType(opts.Vendor); err != nil {
		return "", err
	}
	if opts.Check && opts.Vendor != database.MySQL {
		return "", fmt.Errorf("--check supports only the %s dialect", database.MySQL)
	}

	sql, err := database.NewDirector(database.NewQueryBuilder(opts.Vendor)).ByName(name, opts.Limit, opts.Year)
	if err != nil {
		return "", err
	}

	if opts.Check {
		if err := sqlcheck.CheckSelect(sql); err != nil {
			return "", err
		}
	}
	return sql, nil
}
