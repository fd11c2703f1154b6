// Package database provides query building and connection management for the
// supported SQL vendors.
package database

import (
	"github.com/gaborage/salesquery/database/internal/builder"
)

// QueryBuilder accumulates the clauses of a SELECT statement and renders it
// with the placeholder format of its vendor.
type QueryBuilder = builder.QueryBuilder

// Director renders the named reporting queries by driving a QueryBuilder.
type Director = builder.Director

// JoinKind is the keyword rendered in front of JOIN.
type JoinKind = builder.JoinKind

// Direction is the sort direction of an ORDER BY term.
type Direction = builder.Direction

const (
	InnerJoin = builder.InnerJoin
	LeftJoin  = builder.LeftJoin
	RightJoin = builder.RightJoin

	Asc  = builder.Asc
	Desc = builder.Desc
)

// Preset names accepted by Director.ByName.
const (
	PresetSalesSummaryByCategory = builder.PresetSalesSummaryByCategory
	PresetTopCustomers           = builder.PresetTopCustomers
	PresetMonthlySalesTrend      = builder.PresetMonthlySalesTrend
	PresetTopProducts            = builder.PresetTopProducts
	PresetEmployeePerformance    = builder.PresetEmployeePerformance
	PresetCustomerAnalysis       = builder.PresetCustomerAnalysis
	PresetCategoryPerformance    = builder.PresetCategoryPerformance
)

// ErrUnknownPreset is returned by Director.ByName for unknown preset names.
var ErrUnknownPreset = builder.ErrUnknownPreset

// NewQueryBuilder creates an empty query builder for the specified database vendor.
func NewQueryBuilder(vendor string) *QueryBuilder {
	return builder.NewQueryBuilder(vendor)
}

// NewDirector creates a director over qb.
func NewDirector(qb *QueryBuilder) *Director {
	return builder.NewDirector(qb)
}

// Presets returns the names accepted by Director.ByName.
func Presets() []string {
	return builder.Presets()
}
