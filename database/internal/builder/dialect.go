package builder

import (
	"strings"

	dbtypes "github.com/gaborage/salesquery/database/types"
)

// dialect renders the date and string expressions the presets need in the
// builder vendor's SQL. MySQL is the reference; unknown vendors use it too.
type dialect struct {
	vendor dbtypes.Vendor
}

func dialectFor(vendor dbtypes.Vendor) dialect {
	return dialect{vendor: vendor}
}

// fullName joins first and last name with a single space.
func (d dialect) fullName(first, last string) string {
	if d.vendor == dbtypes.Oracle {
		// Oracle CONCAT takes exactly two arguments
		return first + " || ' ' || " + last
	}
	return "CONCAT(" + strings.Join([]string{first, "' '", last}, ", ") + ")"
}

func (d dialect) month(column string) string {
	switch d.vendor {
	case dbtypes.PostgreSQL, dbtypes.Oracle:
		return "EXTRACT(MONTH FROM " + column + ")"
	default:
		return "MONTH(" + column + ")"
	}
}

func (d dialect) monthName(column string) string {
	switch d.vendor {
	case dbtypes.PostgreSQL, dbtypes.Oracle:
		return "TO_CHAR(" + column + ", 'FMMonth')"
	default:
		return "MONTHNAME(" + column + ")"
	}
}

func (d dialect) year(column string) string {
	switch d.vendor {
	case dbtypes.PostgreSQL, dbtypes.Oracle:
		return "EXTRACT(YEAR FROM " + column + ")"
	default:
		return "YEAR(" + column + ")"
	}
}

// oneYearAgo is the current date minus one year.
func (d dialect) oneYearAgo() string {
	switch d.vendor {
	case dbtypes.PostgreSQL:
		return "CURRENT_DATE - INTERVAL '1 year'"
	case dbtypes.Oracle:
		return "ADD_MONTHS(TRUNC(SYSDATE), -12)"
	default:
		return "DATE_SUB(CURDATE(), INTERVAL 1 YEAR)"
	}
}
