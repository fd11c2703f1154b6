package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/gaborage/salesquery/query"
)

// OutputFormat represents the desired output format.
type OutputFormat string

const (
	FormatTable OutputFormat = "table"
	FormatCSV   OutputFormat = "csv"
	FormatJSON  OutputFormat = "json"
	FormatYAML  OutputFormat = "yaml"
)

var supportedFormats = []OutputFormat{FormatTable, FormatCSV, FormatJSON, FormatYAML}

const nullText = "NULL"

// Formatter writes a result set.
type Formatter interface {
	Format(res *query.Result, w io.Writer) error
}

// NewFormatter creates a Formatter for the given format.
func NewFormatter(format OutputFormat) (Formatter, error) {
	switch format {
	case FormatTable:
		return tableFormatter{}, nil
	case FormatCSV:
		return csvFormatter{}, nil
	case FormatJSON:
		return jsonFormatter{}, nil
	case FormatYAML:
		return yamlFormatter{}, nil
	default:
		names := lo.Map(supportedFormats, func(f OutputFormat, _ int) string { return string(f) })
		return nil, fmt.Errorf("unsupported format %q, must be one of: %s", format, strings.Join(names, ", "))
	}
}

type tableFormatter struct{}

func (tableFormatter) Format(res *query.Result, w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	if _, err := fmt.Fprintln(tw, strings.Join(res.Columns, "\t")); err != nil {
		return err
	}
	for _, row := range res.Rows {
		if _, err := fmt.Fprintln(tw, strings.Join(cells(res.Columns, row), "\t")); err != nil {
			return err
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "(%d rows)\n", res.Len())
	return err
}

type csvFormatter struct{}

func (csvFormatter) Format(res *query.Result, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(res.Columns); err != nil {
		return err
	}
	for _, row := range res.Rows {
		if err := cw.Write(cells(res.Columns, row)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

type jsonFormatter struct{}

func (jsonFormatter) Format(res *query.Result, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res.Rows)
}

type yamlFormatter struct{}

func (yamlFormatter) Format(res *query.Result, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(res.Rows); err != nil {
		return err
	}
	return enc.Close()
}

// cells renders row in column order.
func cells(columns []string, row query.Row) []string {
	return lo.Map(columns, func(col string, _ int) string {
		return formatValue(row[col])
	})
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return nullText
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case time.Time:
		return val.Format(time.DateTime)
	default:
		return fmt.Sprint(val)
	}
}
