package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/gaborage/salesquery/query"
)

// MockExecutor provides a testify-based mock implementation of query.Executor.
// Bound arguments are recorded as a single []any.
//
// Example usage:
//
//	exec := &mocks.MockExecutor{}
//	exec.ExpectAnyExecute(&query.Result{Columns: []string{"category_name"}}, nil)
//
//	svc := sales.NewReportService(exec, database.MySQL)
type MockExecutor struct {
	mock.Mock
}

// Execute implements query.Executor
func (m *MockExecutor) Execute(ctx context.Context, sql string, args ...any) (*query.Result, error) {
	arguments := m.Called(ctx, sql, args)
	res, _ := arguments.Get(0).(*query.Result)
	return res, arguments.Error(1)
}

// ExpectExecute sets up an expectation for the exact statement.
func (m *MockExecutor) ExpectExecute(sql string, res *query.Result, err error) *mock.Call {
	return m.On("Execute", mock.Anything, sql, mock.Anything).Return(res, err)
}

// ExpectAnyExecute sets up an expectation matching every statement.
func (m *MockExecutor) ExpectAnyExecute(res *query.Result, err error) *mock.Call {
	return m.On("Execute", mock.Anything, mock.Anything, mock.Anything).Return(res, err)
}

var _ query.Executor = (*MockExecutor)(nil)
