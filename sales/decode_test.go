package sales

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaborage/salesquery/query"
)

func TestDecodeConvertsDriverValues(t *testing.T) {
	row := query.Row{
		"category_name":   "Confections",
		"total_sales":     int64(120),
		"total_revenue":   "4521.75",
		"avg_sale_amount": "37.68",
		"unknown_column":  true,
	}

	got, err := Decode[CategorySummary](row)
	require.NoError(t, err)
	assert.Equal(t, CategorySummary{
		CategoryName:  "Confections",
		TotalSales:    120,
		TotalRevenue:  4521.75,
		AvgSaleAmount: 37.68,
	}, got)
}

func TestDecodeTimes(t *testing.T) {
	lastSale := time.Date(2018, 5, 9, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		value any
		want  *time.Time
	}{
		{name: "time value", value: lastSale, want: &lastSale},
		{name: "datetime text", value: "2018-05-09 14:30:00", want: &lastSale},
		{name: "datetime with millis", value: "2018-05-09 14:30:00.000", want: &lastSale},
		{name: "null", value: nil, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode[CategoryPerformance](query.Row{
				"category_name":  "Seafood",
				"last_sale_date": tt.value,
			})
			require.NoError(t, err)
			if tt.want == nil {
				assert.Nil(t, got.LastSaleDate)
				return
			}
			require.NotNil(t, got.LastSaleDate)
			assert.True(t, tt.want.Equal(*got.LastSaleDate))
		})
	}
}

func TestDecodeRejectsBadDate(t *testing.T) {
	_, err := Decode[CustomerActivity](query.Row{"last_purchase_date": "yesterday"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode row")
}

func TestDecodeAll(t *testing.T) {
	t.Run("nil result", func(t *testing.T) {
		got, err := DecodeAll[MonthlyTrend](nil)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("rows in order", func(t *testing.T) {
		res := &query.Result{
			Columns: []string{"month", "month_name", "total_sales", "total_revenue"},
			Rows: []query.Row{
				{"month": int64(1), "month_name": "January", "total_sales": int64(10), "total_revenue": "100.50"},
				{"month": int64(2), "month_name": "February", "total_sales": int64(4), "total_revenue": "20.00"},
			},
		}

		got, err := DecodeAll[MonthlyTrend](res)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, 1, got[0].Month)
		assert.Equal(t, "February", got[1].MonthName)
		assert.InDelta(t, 100.5, got[0].TotalRevenue, 0.0001)
	})

	t.Run("reports failing row", func(t *testing.T) {
		res := &query.Result{Rows: []query.Row{
			{"product_name": "Chai", "sales_count": int64(1)},
			{"product_name": "Chang", "sales_count": "many"},
		}}

		_, err := DecodeAll[ProductRanking](res)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "row 1")
	})
}
