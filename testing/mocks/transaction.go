package mocks

import (
	"context"
	"database/sql"

	"github.com/stretchr/testify/mock"

	"github.com/gaborage/salesquery/database/types"
)

// MockTx provides a testify-based mock implementation of types.Tx.
//
// Example usage:
//
//	mockTx := &mocks.MockTx{}
//	mockTx.ExpectExec("INSERT INTO sales", result, nil)
//	mockTx.ExpectCommit(nil)
type MockTx struct {
	mock.Mock
}

// Query implements types.Tx
func (m *MockTx) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	arguments := m.Called(ctx, query, args)
	rows, _ := arguments.Get(0).(*sql.Rows)
	return rows, arguments.Error(1)
}

// QueryRow implements types.Tx
func (m *MockTx) QueryRow(ctx context.Context, query string, args ...any) types.Row {
	arguments := m.Called(ctx, query, args)
	return arguments.Get(0).(types.Row)
}

// Exec implements types.Tx
func (m *MockTx) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	arguments := m.Called(ctx, query, args)
	if arguments.Get(0) == nil {
		return nil, arguments.Error(1)
	}
	return arguments.Get(0).(sql.Result), arguments.Error(1)
}

// Prepare implements types.Tx
func (m *MockTx) Prepare(ctx context.Context, query string) (types.Statement, error) {
	arguments := m.Called(ctx, query)
	if arguments.Get(0) == nil {
		return nil, arguments.Error(1)
	}
	return arguments.Get(0).(types.Statement), arguments.Error(1)
}

// Commit implements types.Tx
func (m *MockTx) Commit() error {
	return m.Called().Error(0)
}

// Rollback implements types.Tx
func (m *MockTx) Rollback() error {
	return m.Called().Error(0)
}

// ExpectExec sets up an exec expectation with the provided result and error
func (m *MockTx) ExpectExec(query string, result sql.Result, err error) *mock.Call {
	return m.On("Exec", mock.Anything, query, mock.Anything).Return(result, err)
}

// ExpectCommit sets up a commit expectation with the provided error
func (m *MockTx) ExpectCommit(err error) *mock.Call {
	return m.On("Commit").Return(err)
}

// ExpectRollback sets up a rollback expectation with the provided error
func (m *MockTx) ExpectRollback(err error) *mock.Call {
	return m.On("Rollback").Return(err)
}

var _ types.Tx = (*MockTx)(nil)
