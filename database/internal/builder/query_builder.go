// Package builder provides cross-database query building utilities.
// It accumulates SELECT clauses in a mutable builder and renders them through
// squirrel with vendor-specific placeholder formats and pagination.
package builder

import (
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/samber/lo"

	dbtypes "github.com/gaborage/salesquery/database/types"
)

const selectAll = "*"

// JoinKind is the keyword rendered in front of JOIN.
type JoinKind = string

const (
	InnerJoin JoinKind = "INNER"
	LeftJoin  JoinKind = "LEFT"
	RightJoin JoinKind = "RIGHT"
)

// Direction is the sort direction of an ORDER BY term.
type Direction = string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

type join struct {
	kind      JoinKind
	target    string
	condition string
}

func (j join) clause() string {
	return strings.ToUpper(j.kind) + " JOIN " + j.target + " ON " + j.condition
}

type orderTerm struct {
	expression string
	direction  Direction
}

func (o orderTerm) clause() string {
	dir := strings.ToUpper(strings.TrimSpace(o.direction))
	if dir == "" {
		dir = Asc
	}
	return o.expression + " " + dir
}

// QueryBuilder accumulates the clauses of a single SELECT statement.
// Mutators return the same instance so calls can be chained; Build renders the
// current state without consuming it and Reset returns the builder to empty.
// A QueryBuilder is owned by one caller and is not safe for concurrent use.
type QueryBuilder struct {
	vendor           dbtypes.Vendor
	statementBuilder squirrel.StatementBuilderType
	positional       bool

	columns []string
	table   string
	joins   []join
	where   []squirrel.Sqlizer
	groupBy []string
	having  []squirrel.Sqlizer
	orderBy []orderTerm
	limit   *int64
	offset  *int64
}

// NewQueryBuilder creates an empty query builder for the specified database vendor.
// It configures the placeholder format used when values are bound.
func NewQueryBuilder(vendor dbtypes.Vendor) *QueryBuilder {
	var sb squirrel.StatementBuilderType
	positional := true

	switch vendor {
	case dbtypes.PostgreSQL:
		// PostgreSQL uses $1, $2, ... placeholders
		sb = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	case dbtypes.Oracle:
		// Oracle uses :1, :2, ... placeholders
		sb = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Colon)
	default:
		// MySQL and unknown vendors use question mark placeholders
		sb = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)
		positional = false
	}

	return &QueryBuilder{
		vendor:           vendor,
		statementBuilder: sb,
		positional:       positional,
	}
}

// literal protects question marks in raw SQL text from positional
// placeholder numbering. Squirrel renders "??" back as "?".
func (qb *QueryBuilder) literal(text string) string {
	if !qb.positional {
		return text
	}
	return strings.ReplaceAll(text, "?", "??")
}

// predicate wraps a raw predicate. Without args its question marks are text;
// with args each one is a bind placeholder.
func (qb *QueryBuilder) predicate(text string, args []any) squirrel.Sqlizer {
	if len(args) == 0 {
		return squirrel.Expr(qb.literal(text))
	}
	return squirrel.Expr(text, args...)
}

// Vendor returns the database vendor string
func (qb *QueryBuilder) Vendor() string {
	return qb.vendor
}

// Select appends columns to the column list. Repeated calls accumulate.
func (qb *QueryBuilder) Select(columns ...string) *QueryBuilder {
	qb.columns = append(qb.columns, columns...)
	return qb
}

// SelectField appends a single column.
func (qb *QueryBuilder) SelectField(column string) *QueryBuilder {
	return qb.Select(column)
}

// From sets the source table. The last call wins.
func (qb *QueryBuilder) From(table string) *QueryBuilder {
	qb.table = table
	return qb
}

// Join appends a join clause rendered as "<KIND> JOIN <target> ON <condition>".
func (qb *QueryBuilder) Join(kind JoinKind, target, condition string) *QueryBuilder {
	qb.joins = append(qb.joins, join{kind: kind, target: target, condition: condition})
	return qb
}

// InnerJoin appends an INNER JOIN clause.
func (qb *QueryBuilder) InnerJoin(target, condition string) *QueryBuilder {
	return qb.Join(InnerJoin, target, condition)
}

// LeftJoin appends a LEFT JOIN clause.
func (qb *QueryBuilder) LeftJoin(target, condition string) *QueryBuilder {
	return qb.Join(LeftJoin, target, condition)
}

// RightJoin appends a RIGHT JOIN clause.
func (qb *QueryBuilder) RightJoin(target, condition string) *QueryBuilder {
	return qb.Join(RightJoin, target, condition)
}

// Where appends a raw predicate. Predicates are combined with AND; callers
// pre-combine OR groups into a single predicate. Blank predicates are ignored.
// When args are given every "?" in predicate binds one of them; without args
// the predicate is rendered verbatim.
func (qb *QueryBuilder) Where(predicate string, args ...any) *QueryBuilder {
	if strings.TrimSpace(predicate) == "" {
		return qb
	}
	qb.where = append(qb.where, qb.predicate(predicate, args))
	return qb
}

// WhereEq appends "column = ?" with value bound as an argument.
func (qb *QueryBuilder) WhereEq(column string, value any) *QueryBuilder {
	qb.where = append(qb.where, squirrel.Eq{column: value})
	return qb
}

// WhereIn appends "column IN (?,...)" with each value bound as an argument.
// An empty slice renders squirrel's always-false predicate "(1=0)".
func (qb *QueryBuilder) WhereIn(column string, values []any) *QueryBuilder {
	qb.where = append(qb.where, squirrel.Eq{column: values})
	return qb
}

// WhereBetween appends "column BETWEEN ? AND ?".
func (qb *QueryBuilder) WhereBetween(column string, low, high any) *QueryBuilder {
	qb.where = append(qb.where, squirrel.Expr(qb.literal(column)+" BETWEEN ? AND ?", low, high))
	return qb
}

// GroupBy appends grouping expressions.
func (qb *QueryBuilder) GroupBy(expressions ...string) *QueryBuilder {
	qb.groupBy = append(qb.groupBy, expressions...)
	return qb
}

// Having appends a HAVING predicate. It is rendered even when no GROUP BY is
// present; the database rejects such statements at execution time.
func (qb *QueryBuilder) Having(predicate string, args ...any) *QueryBuilder {
	if strings.TrimSpace(predicate) == "" {
		return qb
	}
	qb.having = append(qb.having, qb.predicate(predicate, args))
	return qb
}

// OrderBy appends an ordering term. An empty direction renders as ASC.
func (qb *QueryBuilder) OrderBy(expression string, direction Direction) *QueryBuilder {
	qb.orderBy = append(qb.orderBy, orderTerm{expression: expression, direction: direction})
	return qb
}

// Limit caps the number of returned rows. The value is rendered as given,
// negative values included.
func (qb *QueryBuilder) Limit(n int64) *QueryBuilder {
	qb.limit = &n
	return qb
}

// Offset skips the first n rows.
func (qb *QueryBuilder) Offset(n int64) *QueryBuilder {
	qb.offset = &n
	return qb
}

// Reset clears every accumulator. The vendor is kept.
func (qb *QueryBuilder) Reset() *QueryBuilder {
	qb.columns = nil
	qb.table = ""
	qb.joins = nil
	qb.where = nil
	qb.groupBy = nil
	qb.having = nil
	qb.orderBy = nil
	qb.limit = nil
	qb.offset = nil
	return qb
}

// Build renders the accumulated state into a SQL string.
func (qb *QueryBuilder) Build() (string, error) {
	sql, _, err := qb.ToSQL()
	return sql, err
}

// ToSQL renders the statement and returns the bound arguments alongside it.
func (qb *QueryBuilder) ToSQL() (sql string, args []any, err error) {
	sb, err := qb.selectBuilder()
	if err != nil {
		return "", nil, err
	}

	sql, args, err = sb.ToSql()
	if err != nil {
		return "", nil, dbtypes.NewConstructionError("render", err)
	}
	return sql, args, nil
}

// selectBuilder assembles a fresh squirrel builder from the current state so
// rendering never mutates the accumulators.
func (qb *QueryBuilder) selectBuilder() (squirrel.SelectBuilder, error) {
	if strings.TrimSpace(qb.table) == "" {
		return squirrel.SelectBuilder{}, dbtypes.NewConstructionError("FROM", dbtypes.ErrTableNotSet)
	}

	columns := qb.columns
	if len(columns) == 0 {
		columns = []string{selectAll}
	}

	sb := qb.statementBuilder.
		Select(lo.Map(columns, func(c string, _ int) string { return qb.literal(c) })...).
		From(qb.literal(qb.table))

	for _, j := range qb.joins {
		sb = sb.JoinClause(qb.literal(j.clause()))
	}
	for _, pred := range qb.where {
		sb = sb.Where(pred)
	}
	if len(qb.groupBy) > 0 {
		sb = sb.GroupBy(lo.Map(qb.groupBy, func(g string, _ int) string { return qb.literal(g) })...)
	}
	for _, pred := range qb.having {
		sb = sb.Having(pred)
	}
	if len(qb.orderBy) > 0 {
		sb = sb.OrderBy(lo.Map(qb.orderBy, func(o orderTerm, _ int) string {
			return qb.literal(o.clause())
		})...)
	}
	if clause := qb.paginationClause(); clause != "" {
		sb = sb.Suffix(clause)
	}

	return sb, nil
}
