package fixtures

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/mock"

	"github.com/gaborage/salesquery/database/types"
	"github.com/gaborage/salesquery/query"
	"github.com/gaborage/salesquery/testing/mocks"
)

// NewHealthyDatabase creates a MySQL mock database that responds positively to
// health checks and stats. Query expectations are left to the caller.
func NewHealthyDatabase() *mocks.MockDatabase {
	mockDB := &mocks.MockDatabase{}

	mockDB.ExpectHealthCheck(true)
	mockDB.ExpectDatabaseType(types.MySQL)
	mockDB.ExpectStats(map[string]any{
		"open_connections": 1,
		"in_use":           0,
		"idle":             1,
	}, nil)
	mockDB.ExpectClose(nil)

	return mockDB
}

// NewFailingDatabase creates a mock database whose health check, queries and
// transactions fail with err (sql.ErrConnDone when nil).
func NewFailingDatabase(err error) *mocks.MockDatabase {
	if err == nil {
		err = sql.ErrConnDone
	}

	mockDB := &mocks.MockDatabase{}

	mockDB.On("Health", mock.Anything).Return(err)
	mockDB.ExpectDatabaseType(types.MySQL)
	mockDB.On("Query", mock.Anything, mock.Anything, mock.Anything).Return(nil, err)
	mockDB.On("Exec", mock.Anything, mock.Anything, mock.Anything).Return(nil, err)
	mockDB.On("Begin", mock.Anything).Return(nil, err)
	mockDB.ExpectClose(nil)

	return mockDB
}

// NewDatabaseWithRows creates a healthy mock database whose Query returns the
// given rows for the exact statement.
func NewDatabaseWithRows(statement string, columns []string, rows [][]any) *mocks.MockDatabase {
	mockDB := NewHealthyDatabase()
	mockDB.ExpectQuery(statement, NewMockRows(columns, rows), nil)
	return mockDB
}

// SQL Result Builders

// NewMockRows creates sql.Rows backed by sqlmock with the provided columns and data.
//
// Example:
//
//	rows := fixtures.NewMockRows(
//	  []string{"category_name", "total_sales"},
//	  [][]any{
//	    {"Beverages", int64(12)},
//	    {"Confections", int64(3)},
//	  },
//	)
func NewMockRows(columns []string, rows [][]any) *sql.Rows {
	db, sqlMock, err := sqlmock.New()
	if err != nil {
		panic(err) // This should never happen in tests
	}

	sqlRows := sqlmock.NewRows(columns)
	for _, row := range rows {
		driverValues := make([]driver.Value, len(row))
		for i, val := range row {
			driverValues[i] = val
		}
		sqlRows.AddRow(driverValues...)
	}

	sqlMock.ExpectQuery(".*").WillReturnRows(sqlRows)

	result, err := db.QueryContext(context.Background(), "SELECT")
	if err != nil {
		panic(err) // This should never happen in tests
	}
	return result
}

// NewResult builds a materialized result set with rows given in column order.
func NewResult(columns []string, rows ...[]any) *query.Result {
	res := &query.Result{Columns: columns, Rows: make([]query.Row, 0, len(rows))}
	for _, values := range rows {
		row := make(query.Row, len(columns))
		for i, col := range columns {
			if i < len(values) {
				row[col] = values[i]
			}
		}
		res.Rows = append(res.Rows, row)
	}
	return res
}

// NewMockResult creates sql.Result for testing Exec operations.
//
// Example:
//
//	result := fixtures.NewMockResult(1, 5) // lastInsertId=1, rowsAffected=5
func NewMockResult(lastInsertID, rowsAffected int64) sql.Result {
	return &mockResult{
		lastInsertID: lastInsertID,
		rowsAffected: rowsAffected,
	}
}

// NewErrorResult creates sql.Result that returns errors for testing error scenarios.
func NewErrorResult(err error) sql.Result {
	return &mockResult{
		err: err,
	}
}

// mockResult implements sql.Result for testing
type mockResult struct {
	lastInsertID int64
	rowsAffected int64
	err          error
}

func (r *mockResult) LastInsertId() (int64, error) {
	return r.lastInsertID, r.err
}

func (r *mockResult) RowsAffected() (int64, error) {
	return r.rowsAffected, r.err
}

// Transaction Helpers

// NewSuccessfulTransaction creates a mock transaction whose Exec and Commit succeed.
func NewSuccessfulTransaction() *mocks.MockTx {
	mockTx := &mocks.MockTx{}
	mockTx.On("Exec", mock.Anything, mock.Anything, mock.Anything).Return(NewMockResult(1, 1), nil)
	mockTx.ExpectCommit(nil)
	mockTx.ExpectRollback(nil)
	return mockTx
}

// NewFailedTransaction creates a mock transaction that fails on commit.
func NewFailedTransaction(commitErr error) *mocks.MockTx {
	if commitErr == nil {
		commitErr = errors.New("transaction commit failed")
	}

	mockTx := &mocks.MockTx{}
	mockTx.On("Exec", mock.Anything, mock.Anything, mock.Anything).Return(NewMockResult(1, 1), nil)
	mockTx.ExpectCommit(commitErr)
	mockTx.ExpectRollback(nil)
	return mockTx
}
