package sales

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gaborage/salesquery/database"
	dbtypes "github.com/gaborage/salesquery/database/types"
	"github.com/gaborage/salesquery/query"
	"github.com/gaborage/salesquery/testing/fixtures"
	"github.com/gaborage/salesquery/testing/mocks"
)

const (
	salesSummarySQL = "SELECT c.category_name, COUNT(s.sale_id) as total_sales, SUM(s.total_price) as total_revenue, " +
		"AVG(s.total_price) as avg_sale_amount FROM sales s " +
		"INNER JOIN products p ON s.product_id = p.product_id " +
		"INNER JOIN categories c ON p.category_id = c.category_id " +
		"GROUP BY c.category_name ORDER BY total_revenue DESC"

	topCustomersSQL = "SELECT CONCAT(c.first_name, ' ', c.last_name) as customer_name, " +
		"COUNT(s.sale_id) as total_purchases, SUM(s.total_price) as total_spent FROM sales s " +
		"INNER JOIN customers c ON s.customer_id = c.customer_id " +
		"GROUP BY c.customer_id, c.first_name, c.last_name ORDER BY total_spent DESC LIMIT 5"
)

func TestReportServiceSalesSummaryByCategory(t *testing.T) {
	exec := &mocks.MockExecutor{}
	exec.ExpectExecute(salesSummarySQL, fixtures.NewResult(
		[]string{"category_name", "total_sales", "total_revenue", "avg_sale_amount"},
		[]any{"Beverages", int64(12), "240.00", "20.00"},
		[]any{"Seafood", int64(3), "90.30", "30.10"},
	), nil)

	got, err := NewReportService(exec, database.MySQL).SalesSummaryByCategory(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Beverages", got[0].CategoryName)
	assert.Equal(t, int64(12), got[0].TotalSales)
	assert.InDelta(t, 30.1, got[1].AvgSaleAmount, 0.0001)
	exec.AssertExpectations(t)
}

func TestReportServiceTopCustomers(t *testing.T) {
	exec := &mocks.MockExecutor{}
	exec.ExpectExecute(topCustomersSQL, fixtures.NewResult(
		[]string{"customer_name", "total_purchases", "total_spent"},
		[]any{"Grace Hopper", int64(9), "1200.00"},
	), nil)

	got, err := NewReportService(exec, database.MySQL).TopCustomers(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, []CustomerRanking{{CustomerName: "Grace Hopper", TotalPurchases: 9, TotalSpent: 1200}}, got)
}

func TestReportServiceRendersEveryReport(t *testing.T) {
	exec := &mocks.MockExecutor{}
	exec.ExpectAnyExecute(&query.Result{Rows: []query.Row{}}, nil)
	svc := NewReportService(exec, database.MySQL)
	ctx := context.Background()

	_, err := svc.MonthlySalesTrend(ctx, 2018)
	require.NoError(t, err)
	_, err = svc.TopProducts(ctx, 3)
	require.NoError(t, err)
	_, err = svc.EmployeePerformance(ctx)
	require.NoError(t, err)
	_, err = svc.CustomerAnalysis(ctx)
	require.NoError(t, err)
	_, err = svc.CategoryPerformance(ctx)
	require.NoError(t, err)

	exec.AssertNumberOfCalls(t, "Execute", 5)
	statements := make([]string, 0, len(exec.Calls))
	for _, call := range exec.Calls {
		statements = append(statements, call.Arguments.String(1))
	}
	assert.Contains(t, statements[0], "WHERE YEAR(sale_date) = 2018")
	assert.Contains(t, statements[1], "LIMIT 3")
	assert.Contains(t, statements[2], "INNER JOIN employees e")
	assert.Contains(t, statements[4], "LEFT JOIN")
}

func TestReportServicePreset(t *testing.T) {
	exec := &mocks.MockExecutor{}
	exec.ExpectExecute(topCustomersSQL, fixtures.NewResult([]string{"customer_name"}), nil)

	res, err := NewReportService(exec, database.MySQL).Preset(context.Background(), database.PresetTopCustomers, 5, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"customer_name"}, res.Columns)
	assert.Equal(t, 0, res.Len())

	_, err = NewReportService(exec, database.MySQL).Preset(context.Background(), "weekly", 5, 0)
	require.ErrorIs(t, err, database.ErrUnknownPreset)
	exec.AssertNumberOfCalls(t, "Execute", 1)
}

func TestReportServiceOracleRendering(t *testing.T) {
	exec := &mocks.MockExecutor{}
	exec.ExpectAnyExecute(&query.Result{}, nil)

	_, err := NewReportService(exec, database.Oracle).TopProducts(context.Background(), 4)
	require.NoError(t, err)
	exec.AssertCalled(t, "Execute", mock.Anything, mock.MatchedBy(func(sql string) bool {
		return strings.HasSuffix(sql, "ORDER BY total_revenue DESC FETCH NEXT 4 ROWS ONLY")
	}), mock.Anything)
}

func TestReportServiceErrors(t *testing.T) {
	t.Run("execution error", func(t *testing.T) {
		execErr := errors.New("connection refused")
		exec := &mocks.MockExecutor{}
		exec.ExpectAnyExecute(nil, execErr)

		_, err := NewReportService(exec, database.MySQL).EmployeePerformance(context.Background())
		require.ErrorIs(t, err, execErr)
	})

	t.Run("decode error", func(t *testing.T) {
		exec := &mocks.MockExecutor{}
		exec.ExpectAnyExecute(fixtures.NewResult([]string{"total_sales"}, []any{"lots"}), nil)

		_, err := NewReportService(exec, database.MySQL).EmployeePerformance(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decode report")
	})

	t.Run("construction error skips execution", func(t *testing.T) {
		exec := &mocks.MockExecutor{}
		svc := NewReportService(exec, database.MySQL)

		_, err := svc.run(context.Background(), func(d *database.Director) (string, error) {
			return d.Builder().Select("1").Build()
		})
		var ce *dbtypes.ConstructionError
		require.ErrorAs(t, err, &ce)
		exec.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestReportServiceConcurrentUse(t *testing.T) {
	var mu sync.Mutex
	seen := map[string]int{}
	exec := query.ExecutorFunc(func(_ context.Context, sql string, _ ...any) (*query.Result, error) {
		mu.Lock()
		seen[sql]++
		mu.Unlock()
		return &query.Result{}, nil
	})
	svc := NewReportService(exec, database.MySQL)

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = svc.SalesSummaryByCategory(context.Background())
		}()
		go func() {
			defer wg.Done()
			_, _ = svc.TopCustomers(context.Background(), 5)
		}()
	}
	wg.Wait()

	assert.Equal(t, map[string]int{salesSummarySQL: 20, topCustomersSQL: 20}, seen)
}
