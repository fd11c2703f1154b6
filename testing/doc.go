// Package testing provides testing utilities for salesquery.
//
// # Mocks
//
// The mocks subpackage provides testify-based mock implementations of the
// main interfaces:
//   - Database operations (types.Interface, types.Statement, types.Tx)
//   - Query execution (query.Executor)
//   - Result caching (cache.Cache)
//
// # Fixtures
//
// The fixtures subpackage provides pre-configured mocks and builders for
// common scenarios:
//   - Healthy and failing databases
//   - sql.Rows and query.Result builders for report rows
//   - Successful and failing transactions
//
// # Containers
//
// The containers subpackage, built with the integration tag, starts a MySQL
// server in Docker for end-to-end report tests.
package testing
