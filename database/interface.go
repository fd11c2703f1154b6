package database

import (
	"github.com/gaborage/salesquery/database/types"
)

// Interface defines the common database operations supported by every vendor.
// The definition lives in database/types to avoid import cycles.
type Interface = types.Interface

// Statement defines the interface for prepared statements.
type Statement = types.Statement

// Tx defines the interface for database transactions.
type Tx = types.Tx
