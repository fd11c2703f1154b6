package database_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaborage/salesquery/config"
	"github.com/gaborage/salesquery/database"
	"github.com/gaborage/salesquery/logger"
	"github.com/gaborage/salesquery/testing/fixtures"
	"github.com/gaborage/salesquery/testing/mocks"
)

const productByID = "SELECT product_name FROM products WHERE product_id = ?"

func newTrackedMockDatabase(t *testing.T) (*mocks.MockDatabase, database.Interface, *bytes.Buffer) {
	t.Helper()

	db := fixtures.NewHealthyDatabase()
	buf := &bytes.Buffer{}
	log := logger.NewWithWriter(buf, "debug", false, nil)
	return db, database.NewTrackedConnection(db, log, &config.DatabaseConfig{}), buf
}

func logCount(buf *bytes.Buffer) int {
	return strings.Count(buf.String(), "\n")
}

func TestTrackedConnectionStatementDelegates(t *testing.T) {
	db, conn, buf := newTrackedMockDatabase(t)

	stmt := &mocks.MockStatement{}
	stmt.ExpectExec(fixtures.NewMockResult(0, 1), nil)
	stmt.ExpectClose(nil)
	db.On("Prepare", context.Background(), productByID).Return(stmt, nil)

	tracked, err := conn.Prepare(context.Background(), productByID)
	require.NoError(t, err)
	assert.IsType(t, &database.TrackedStatement{}, tracked)

	res, err := tracked.Exec(context.Background(), 7)
	require.NoError(t, err)
	affected, err := res.RowsAffected()
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	require.NoError(t, tracked.Close())

	stmt.AssertExpectations(t)
	assert.Contains(t, buf.String(), "PREPARE: "+productByID)
	assert.Contains(t, buf.String(), "STMT_EXEC: "+productByID)
	assert.Equal(t, 2, logCount(buf))
}

func TestTrackedConnectionTransactionHelpers(t *testing.T) {
	t.Run("commit", func(t *testing.T) {
		db, conn, buf := newTrackedMockDatabase(t)
		tx := fixtures.NewSuccessfulTransaction()
		db.ExpectTransaction(tx, nil)

		trackedTx, err := conn.Begin(context.Background())
		require.NoError(t, err)
		_, err = trackedTx.Exec(context.Background(), "UPDATE products SET price = ? WHERE product_id = ?", 19.5, 1)
		require.NoError(t, err)
		require.NoError(t, trackedTx.Commit())

		tx.AssertCalled(t, "Commit")
		assert.Contains(t, buf.String(), "TX_COMMIT")
	})

	t.Run("failed commit", func(t *testing.T) {
		db, conn, buf := newTrackedMockDatabase(t)
		commitErr := errors.New("deadlock found when trying to get lock")
		db.ExpectTransaction(fixtures.NewFailedTransaction(commitErr), nil)

		trackedTx, err := conn.Begin(context.Background())
		require.NoError(t, err)
		require.ErrorIs(t, trackedTx.Commit(), commitErr)
		assert.Contains(t, buf.String(), `"level":"error"`)
	})
}

func TestTrackedConnectionFailingDatabase(t *testing.T) {
	connErr := errors.New("server has gone away")
	db := fixtures.NewFailingDatabase(connErr)
	conn := database.NewTrackedConnection(db, logger.Nop(), nil)

	_, err := conn.Query(context.Background(), "SELECT 1")
	require.ErrorIs(t, err, connErr)
	_, err = conn.Begin(context.Background())
	require.ErrorIs(t, err, connErr)
	require.ErrorIs(t, conn.Health(context.Background()), connErr)
	require.NoError(t, conn.Close())
}

func TestTrackedConnectionPassesThroughStats(t *testing.T) {
	_, conn, _ := newTrackedMockDatabase(t)

	stats, err := conn.Stats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats["open_connections"])
	assert.Equal(t, database.MySQL, conn.DatabaseType())
	require.NoError(t, conn.Health(context.Background()))
}
