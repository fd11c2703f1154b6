package testing

import "time"

// Logger Constants
// Log levels used when building test loggers.
const (
	// TestLoggerLevelDebug is the debug log level used in most tests
	TestLoggerLevelDebug = "debug"
	// TestLoggerLevelDisabled completely disables logging in tests
	TestLoggerLevelDisabled = "disabled"
)

// Sales Schema Constants
// Table names of the sales reporting schema.
const (
	TestTableCategories = "categories"
	TestTableProducts   = "products"
	TestTableSales      = "sales"
	TestTableCustomers  = "customers"
	TestTableEmployees  = "employees"
	TestTableCities     = "cities"
	TestTableCountries  = "countries"
	TestDatabaseName    = "sales_manager"
)

// Report Parameters
// Defaults used when rendering presets in tests.
const (
	TestReportLimit = 10
	TestReportYear  = 2018
)

// Time Duration Constants
// Common time durations used in test synchronization and timeouts.
const (
	// TestShortDelay is a short delay for goroutine synchronization (100ms)
	TestShortDelay = 100 * time.Millisecond
	// TestEventuallyTimeout is the timeout for require.Eventually assertions (500ms)
	TestEventuallyTimeout = 500 * time.Millisecond
	// TestEventuallyTick is the polling interval for require.Eventually (50ms)
	TestEventuallyTick = 50 * time.Millisecond
)
