package database

import (
	"github.com/gaborage/salesquery/database/internal/tracking"
)

// Re-export the internal tracking implementation as the public API
type (
	TrackedConnection  = tracking.Connection
	TrackingContext    = tracking.Context
	TrackingSettings   = tracking.Settings
	TrackedStatement   = tracking.Statement
	TrackedTransaction = tracking.Transaction
)

// Re-export internal functions as public API
var (
	NewTrackedConnection = tracking.NewConnection
	TrackDBOperation     = tracking.TrackDBOperation
	NewTrackingSettings  = tracking.NewSettings
)

// Re-export internal constants
const (
	DefaultSlowQueryThreshold = tracking.DefaultSlowQueryThreshold
	DefaultMaxQueryLength     = tracking.DefaultMaxQueryLength
)
