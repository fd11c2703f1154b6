package builder

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
)

// Preset names accepted by Director.ByName.
const (
	PresetSalesSummaryByCategory = "sales-summary"
	PresetTopCustomers           = "top-customers"
	PresetMonthlySalesTrend      = "monthly-trend"
	PresetTopProducts            = "top-products"
	PresetEmployeePerformance    = "employee-performance"
	PresetCustomerAnalysis       = "customer-analysis"
	PresetCategoryPerformance    = "category-performance"
)

// ErrUnknownPreset is returned by Director.ByName for names not listed by Presets.
var ErrUnknownPreset = errors.New("unknown query preset")

var presets = []string{
	PresetSalesSummaryByCategory,
	PresetTopCustomers,
	PresetMonthlySalesTrend,
	PresetTopProducts,
	PresetEmployeePerformance,
	PresetCustomerAnalysis,
	PresetCategoryPerformance,
}

// Director renders the reporting queries used across the application.
// It holds no state beyond the builder it drives; every method resets the
// builder first, so the builder's previous contents are discarded. Date and
// name expressions follow the builder's vendor.
type Director struct {
	qb *QueryBuilder
}

// NewDirector creates a director over the provided builder.
func NewDirector(qb *QueryBuilder) *Director {
	return &Director{qb: qb}
}

// Builder returns the builder the director drives. After a director call it
// holds the state of the last rendered query, which callers use to obtain
// bound arguments through ToSQL.
func (d *Director) Builder() *QueryBuilder {
	return d.qb
}

func (d *Director) dialect() dialect {
	return dialectFor(d.qb.Vendor())
}

// SalesSummaryByCategory renders sale count, revenue and average sale amount per category.
func (d *Director) SalesSummaryByCategory() (string, error) {
	return d.qb.Reset().
		Select(
			"c.category_name",
			"COUNT(s.sale_id) as total_sales",
			"SUM(s.total_price) as total_revenue",
			"AVG(s.total_price) as avg_sale_amount",
		).
		From("sales s").
		InnerJoin("products p", "s.product_id = p.product_id").
		InnerJoin("categories c", "p.category_id = c.category_id").
		GroupBy("c.category_name").
		OrderBy("total_revenue", Desc).
		Build()
}

// TopCustomers renders the customers with the highest total spend.
func (d *Director) TopCustomers(limit int64) (string, error) {
	return d.qb.Reset().
		Select(
			d.dialect().fullName("c.first_name", "c.last_name")+" as customer_name",
			"COUNT(s.sale_id) as total_purchases",
			"SUM(s.total_price) as total_spent",
		).
		From("sales s").
		InnerJoin("customers c", "s.customer_id = c.customer_id").
		GroupBy("c.customer_id", "c.first_name", "c.last_name").
		OrderBy("total_spent", Desc).
		Limit(limit).
		Build()
}

// MonthlySalesTrend renders per-month sale count and revenue for one year.
// The year is an integer and is rendered as a literal.
func (d *Director) MonthlySalesTrend(year int) (string, error) {
	dl := d.dialect()
	month, monthName := dl.month("sale_date"), dl.monthName("sale_date")

	return d.qb.Reset().
		Select(
			month+" as month",
			monthName+" as month_name",
			"COUNT(sale_id) as total_sales",
			"SUM(total_price) as total_revenue",
		).
		From("sales").
		Where(dl.year("sale_date") + " = " + strconv.Itoa(year)).
		GroupBy(month, monthName).
		OrderBy("month", Asc).
		Build()
}

// TopProducts renders the best selling products by revenue.
func (d *Director) TopProducts(limit int64) (string, error) {
	return d.qb.Reset().
		Select(
			"p.product_name",
			"SUM(s.quantity) as total_quantity",
			"SUM(s.total_price) as total_revenue",
			"COUNT(s.sale_id) as sales_count",
		).
		From("sales s").
		InnerJoin("products p", "s.product_id = p.product_id").
		GroupBy("p.product_id", "p.product_name").
		OrderBy("total_revenue", Desc).
		Limit(limit).
		Build()
}

// EmployeePerformance renders sale count, revenue and average sale amount per sales person.
func (d *Director) EmployeePerformance() (string, error) {
	return d.qb.Reset().
		Select(
			d.dialect().fullName("e.first_name", "e.last_name")+" as employee_name",
			"COUNT(s.sale_id) as total_sales",
			"SUM(s.total_price) as total_revenue",
			"AVG(s.total_price) as avg_sale_amount",
		).
		From("sales s").
		InnerJoin("employees e", "s.sales_person_id = e.employee_id").
		GroupBy("e.employee_id", "e.first_name", "e.last_name").
		OrderBy("total_revenue", Desc).
		Build()
}

// CustomerAnalysis renders purchase behaviour per customer over the last year.
func (d *Director) CustomerAnalysis() (string, error) {
	return d.qb.Reset().
		Select(
			d.dialect().fullName("c.first_name", "c.last_name")+" as customer_name",
			"ci.city_name",
			"COUNT(s.sale_id) as total_purchases",
			"SUM(s.total_price) as total_spent",
			"AVG(s.total_price) as avg_purchase_amount",
			"MAX(s.sale_date) as last_purchase_date",
		).
		From("sales s").
		InnerJoin("customers c", "s.customer_id = c.customer_id").
		InnerJoin("cities ci", "c.city_id = ci.city_id").
		Where("s.sale_date >= " + d.dialect().oneYearAgo()).
		GroupBy("c.customer_id", "c.first_name", "c.last_name", "ci.city_name").
		OrderBy("total_spent", Desc).
		Build()
}

// CategoryPerformance renders per-category totals including categories without sales.
func (d *Director) CategoryPerformance() (string, error) {
	return d.qb.Reset().
		Select(
			"c.category_name",
			"COUNT(DISTINCT p.product_id) as products_in_category",
			"COUNT(s.sale_id) as total_sales",
			"SUM(s.quantity) as total_quantity_sold",
			"SUM(s.total_price) as total_revenue",
			"AVG(s.total_price) as avg_sale_amount",
			"MAX(s.sale_date) as last_sale_date",
		).
		From("categories c").
		LeftJoin("products p", "c.category_id = p.category_id").
		LeftJoin("sales s", "p.product_id = s.product_id").
		GroupBy("c.category_id", "c.category_name").
		OrderBy("total_revenue", Desc).
		Build()
}

// Presets returns the preset names in display order.
func Presets() []string {
	return slices.Clone(presets)
}

// ByName renders the named preset. limit applies to the ranking presets and
// year to the monthly trend; other presets ignore them.
func (d *Director) ByName(name string, limit int64, year int) (string, error) {
	switch name {
	case PresetSalesSummaryByCategory:
		return d.SalesSummaryByCategory()
	case PresetTopCustomers:
		return d.TopCustomers(limit)
	case PresetMonthlySalesTrend:
		return d.MonthlySalesTrend(year)
	case PresetTopProducts:
		return d.TopProducts(limit)
	case PresetEmployeePerformance:
		return d.EmployeePerformance()
	case PresetCustomerAnalysis:
		return d.CustomerAnalysis()
	case PresetCategoryPerformance:
		return d.CategoryPerformance()
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
}
