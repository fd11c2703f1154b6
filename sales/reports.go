package sales

import "time"

// CategorySummary is a row of the sales summary by category.
type CategorySummary struct {
	CategoryName  string  `db:"category_name" json:"category_name"`
	TotalSales    int64   `db:"total_sales" json:"total_sales"`
	TotalRevenue  float64 `db:"total_revenue" json:"total_revenue"`
	AvgSaleAmount float64 `db:"avg_sale_amount" json:"avg_sale_amount"`
}

// CustomerRanking is a row of the top customers report.
type CustomerRanking struct {
	CustomerName   string  `db:"customer_name" json:"customer_name"`
	TotalPurchases int64   `db:"total_purchases" json:"total_purchases"`
	TotalSpent     float64 `db:"total_spent" json:"total_spent"`
}

// MonthlyTrend is a row of the monthly sales trend.
type MonthlyTrend struct {
	Month        int     `db:"month" json:"month"`
	MonthName    string  `db:"month_name" json:"month_name"`
	TotalSales   int64   `db:"total_sales" json:"total_sales"`
	TotalRevenue float64 `db:"total_revenue" json:"total_revenue"`
}

// ProductRanking is a row of the top products report.
type ProductRanking struct {
	ProductName   string  `db:"product_name" json:"product_name"`
	TotalQuantity int64   `db:"total_quantity" json:"total_quantity"`
	TotalRevenue  float64 `db:"total_revenue" json:"total_revenue"`
	SalesCount    int64   `db:"sales_count" json:"sales_count"`
}

// EmployeePerformance is a row of the sales person performance report.
type EmployeePerformance struct {
	EmployeeName  string  `db:"employee_name" json:"employee_name"`
	TotalSales    int64   `db:"total_sales" json:"total_sales"`
	TotalRevenue  float64 `db:"total_revenue" json:"total_revenue"`
	AvgSaleAmount float64 `db:"avg_sale_amount" json:"avg_sale_amount"`
}

// CustomerActivity is a row of the customer analysis over the last year.
type CustomerActivity struct {
	CustomerName      string     `db:"customer_name" json:"customer_name"`
	CityName          string     `db:"city_name" json:"city_name"`
	TotalPurchases    int64      `db:"total_purchases" json:"total_purchases"`
	TotalSpent        float64    `db:"total_spent" json:"total_spent"`
	AvgPurchaseAmount float64    `db:"avg_purchase_amount" json:"avg_purchase_amount"`
	LastPurchaseDate  *time.Time `db:"last_purchase_date" json:"last_purchase_date,omitempty"`
}

// CategoryPerformance is a row of the category performance report. Categories
// without sales have zero totals and no last sale date.
type CategoryPerformance struct {
	CategoryName       string     `db:"category_name" json:"category_name"`
	ProductsInCategory int64      `db:"products_in_category" json:"products_in_category"`
	TotalSales         int64      `db:"total_sales" json:"total_sales"`
	TotalQuantitySold  int64      `db:"total_quantity_sold" json:"total_quantity_sold"`
	TotalRevenue       float64    `db:"total_revenue" json:"total_revenue"`
	AvgSaleAmount      float64    `db:"avg_sale_amount" json:"avg_sale_amount"`
	LastSaleDate       *time.Time `db:"last_sale_date" json:"last_sale_date,omitempty"`
}
