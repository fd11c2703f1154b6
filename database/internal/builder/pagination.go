package builder

import (
	"strconv"
	"strings"

	dbtypes "github.com/gaborage/salesquery/database/types"
)

// paginationClause renders the row-limiting suffix for the builder's vendor.
// Values are emitted as given; the database rejects invalid ones.
func (qb *QueryBuilder) paginationClause() string {
	if qb.vendor == dbtypes.Oracle {
		return buildOraclePaginationClause(qb.limit, qb.offset)
	}

	parts := make([]string, 0, 2)
	if qb.limit != nil {
		parts = append(parts, "LIMIT "+strconv.FormatInt(*qb.limit, 10))
	}
	if qb.offset != nil {
		parts = append(parts, "OFFSET "+strconv.FormatInt(*qb.offset, 10))
	}
	return strings.Join(parts, " ")
}

// buildOraclePaginationClause renders Oracle 12c+ row limiting. Oracle requires
// OFFSET before FETCH.
func buildOraclePaginationClause(limit, offset *int64) string {
	parts := make([]string, 0, 2)
	if offset != nil {
		parts = append(parts, "OFFSET "+strconv.FormatInt(*offset, 10)+" ROWS")
	}
	if limit != nil {
		parts = append(parts, "FETCH NEXT "+strconv.FormatInt(*limit, 10)+" ROWS ONLY")
	}
	return strings.Join(parts, " ")
}
