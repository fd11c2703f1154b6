package tracking

import (
	"sync"

	"github.com/gaborage/salesquery/database/types"
)

// trackedRow defers tracking of a QueryRow call until the row is consumed,
// since database/sql reports QueryRow errors only from Scan.
type trackedRow struct {
	row    types.Row
	finish func(error)
	once   sync.Once
}

func wrapRow(row types.Row, finish func(error)) types.Row {
	if row == nil || finish == nil {
		return row
	}
	return &trackedRow{row: row, finish: finish}
}

func (r *trackedRow) Scan(dest ...any) error {
	err := r.row.Scan(dest...)
	r.once.Do(func() { r.finish(err) })
	return err
}

// Err reports the deferred error. Only a non-nil error completes tracking;
// a nil result leaves it to Scan.
func (r *trackedRow) Err() error {
	err := r.row.Err()
	if err != nil {
		r.once.Do(func() { r.finish(err) })
	}
	return err
}
