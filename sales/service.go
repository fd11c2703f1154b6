package sales

import (
	"context"
	"fmt"

	"github.com/gaborage/salesquery/database"
	"github.com/gaborage/salesquery/query"
)

// ReportService runs the reporting presets and decodes their rows.
// Each call renders with its own builder, so a service may be shared between
// goroutines as long as its Executor is.
type ReportService struct {
	exec   query.Executor
	vendor string
}

// NewReportService returns a service rendering SQL for vendor and executing
// it through exec.
func NewReportService(exec query.Executor, vendor string) *ReportService {
	return &ReportService{exec: exec, vendor: vendor}
}

// Preset renders and executes the named preset and returns the raw rows.
func (s *ReportService) Preset(ctx context.Context, name string, limit int64, year int) (*query.Result, error) {
	return s.run(ctx, func(d *database.Director) (string, error) {
		return d.ByName(name, limit, year)
	})
}

// SalesSummaryByCategory returns sale count, revenue and average sale per
// category, highest revenue first.
func (s *ReportService) SalesSummaryByCategory(ctx context.Context) ([]CategorySummary, error) {
	return runReport[CategorySummary](ctx, s, (*database.Director).SalesSummaryByCategory)
}

// TopCustomers returns the limit customers with the highest total spend.
func (s *ReportService) TopCustomers(ctx context.Context, limit int64) ([]CustomerRanking, error) {
	return runReport[CustomerRanking](ctx, s, func(d *database.Director) (string, error) {
		return d.TopCustomers(limit)
	})
}

// MonthlySalesTrend returns one row per month of year that has sales, in
// calendar order.
func (s *ReportService) MonthlySalesTrend(ctx context.Context, year int) ([]MonthlyTrend, error) {
	return runReport[MonthlyTrend](ctx, s, func(d *database.Director) (string, error) {
		return d.MonthlySalesTrend(year)
	})
}

// TopProducts returns the limit products with the highest revenue.
func (s *ReportService) TopProducts(ctx context.Context, limit int64) ([]ProductRanking, error) {
	return runReport[ProductRanking](ctx, s, func(d *database.Director) (string, error) {
		return d.TopProducts(limit)
	})
}

// EmployeePerformance returns sales totals per sales person.
func (s *ReportService) EmployeePerformance(ctx context.Context) ([]EmployeePerformance, error) {
	return runReport[EmployeePerformance](ctx, s, (*database.Director).EmployeePerformance)
}

// CustomerAnalysis returns purchase totals and the last purchase date per
// customer for sales in the past year.
func (s *ReportService) CustomerAnalysis(ctx context.Context) ([]CustomerActivity, error) {
	return runReport[CustomerActivity](ctx, s, (*database.Director).CustomerAnalysis)
}

// CategoryPerformance returns totals for every category. Categories without
// sales are included with a zero sale count.
func (s *ReportService) CategoryPerformance(ctx context.Context) ([]CategoryPerformance, error) {
	return runReport[CategoryPerformance](ctx, s, (*database.Director).CategoryPerformance)
}

// run lets render configure a fresh builder, then executes the builder's
// statement with its bound arguments.
func (s *ReportService) run(ctx context.Context, render func(*database.Director) (string, error)) (*query.Result, error) {
	d := database.NewDirector(database.NewQueryBuilder(s.vendor))
	if _, err := render(d); err != nil {
		return nil, err
	}
	return query.Run(ctx, s.exec, d.Builder())
}

func runReport[T any](ctx context.Context, s *ReportService, render func(*database.Director) (string, error)) ([]T, error) {
	res, err := s.run(ctx, render)
	if err != nil {
		return nil, err
	}

	rows, err := DecodeAll[T](res)
	if err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	return rows, nil
}
