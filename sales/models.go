// Package sales defines the retail records stored in the sales database and
// the typed rows produced by the reporting queries.
package sales

import "time"

// Record is implemented by every stored sales entity.
type Record interface {
	TableName() string
}

// Category groups products.
type Category struct {
	CategoryID   int64  `db:"category_id" json:"category_id"`
	CategoryName string `db:"category_name" json:"category_name" validate:"required"`
}

func (*Category) TableName() string { return "categories" }

// Product is an item available for sale. Optional columns are pointers and
// nil when NULL.
type Product struct {
	ProductID    int64      `db:"product_id" json:"product_id"`
	ProductName  string     `db:"product_name" json:"product_name" validate:"required"`
	Price        *float64   `db:"price" json:"price,omitempty" validate:"omitempty,gte=0"`
	CategoryID   *int64     `db:"category_id" json:"category_id,omitempty"`
	ClassType    *string    `db:"class_type" json:"class_type,omitempty" validate:"omitempty,oneof=Low Medium High"`
	ModifyDate   *time.Time `db:"modify_date" json:"modify_date,omitempty"`
	Resistant    *string    `db:"resistant" json:"resistant,omitempty" validate:"omitempty,oneof=Durable Weak Unknown"`
	IsAllergic   *string    `db:"is_allergic" json:"is_allergic,omitempty" validate:"omitempty,oneof=TRUE FALSE Unknown"`
	VitalityDays *int64     `db:"vitality_days" json:"vitality_days,omitempty" validate:"omitempty,gte=0"`
}

func (*Product) TableName() string { return "products" }

// Sale is one sales transaction line.
type Sale struct {
	SaleID            int64      `db:"sale_id" json:"sale_id"`
	SalesPersonID     *int64     `db:"sales_person_id" json:"sales_person_id,omitempty"`
	CustomerID        *int64     `db:"customer_id" json:"customer_id,omitempty"`
	ProductID         *int64     `db:"product_id" json:"product_id,omitempty"`
	Quantity          *int64     `db:"quantity" json:"quantity,omitempty" validate:"omitempty,gte=0"`
	Discount          *float64   `db:"discount" json:"discount,omitempty" validate:"omitempty,gte=0"`
	TotalPrice        *float64   `db:"total_price" json:"total_price,omitempty"`
	SaleDate          *time.Time `db:"sale_date" json:"sale_date,omitempty"`
	TransactionNumber *string    `db:"transaction_number" json:"transaction_number,omitempty"`
}

func (*Sale) TableName() string { return "sales" }

// Customer is a buyer.
type Customer struct {
	CustomerID    int64   `db:"customer_id" json:"customer_id"`
	FirstName     string  `db:"first_name" json:"first_name" validate:"required"`
	MiddleInitial *string `db:"middle_initial" json:"middle_initial,omitempty" validate:"omitempty,max=5"`
	LastName      string  `db:"last_name" json:"last_name" validate:"required"`
	CityID        *int64  `db:"city_id" json:"city_id,omitempty"`
	Address       *string `db:"address" json:"address,omitempty"`
}

func (*Customer) TableName() string { return "customers" }

// FullName joins first and last name.
func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}

// Employee is a sales person.
type Employee struct {
	EmployeeID    int64      `db:"employee_id" json:"employee_id"`
	FirstName     string     `db:"first_name" json:"first_name" validate:"required"`
	MiddleInitial *string    `db:"middle_initial" json:"middle_initial,omitempty" validate:"omitempty,max=5"`
	LastName      string     `db:"last_name" json:"last_name" validate:"required"`
	BirthDate     *time.Time `db:"birth_date" json:"birth_date,omitempty"`
	Gender        *string    `db:"gender" json:"gender,omitempty" validate:"omitempty,oneof=M F"`
	CityID        *int64     `db:"city_id" json:"city_id,omitempty"`
	HireDate      *time.Time `db:"hire_date" json:"hire_date,omitempty"`
}

func (*Employee) TableName() string { return "employees" }

// FullName joins first and last name.
func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// City belongs to exactly one country.
type City struct {
	CityID    int64   `db:"city_id" json:"city_id"`
	CityName  string  `db:"city_name" json:"city_name" validate:"required"`
	ZipCode   *string `db:"zip_code" json:"zip_code,omitempty"`
	CountryID *int64  `db:"country_id" json:"country_id" validate:"required"`
}

func (*City) TableName() string { return "cities" }

// Country is identified by a two letter code.
type Country struct {
	CountryID   int64  `db:"country_id" json:"country_id"`
	CountryName string `db:"country_name" json:"country_name" validate:"required"`
	CountryCode string `db:"country_code" json:"country_code" validate:"required,len=2"`
}

func (*Country) TableName() string { return "countries" }
