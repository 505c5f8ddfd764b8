package recording_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/soclab/edma/recording"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type transferRow struct {
	Channel   int
	Direction string
	Bytes     int
}

func setupTestDB(t *testing.T) (*sql.DB, recording.DataRecorder) {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db, recording.NewWithDB(db)
}

func TestCreateTable(t *testing.T) {
	db, rec := setupTestDB(t)

	rec.CreateTable("transfers", transferRow{})

	var tableName string
	err := db.QueryRow("SELECT name FROM sqlite_master " +
		"WHERE type='table' AND name='transfers';").Scan(&tableName)
	require.NoError(t, err, "Table should be created")
	assert.Equal(t, "transfers", tableName)
	assert.Contains(t, rec.ListTables(), "transfers")
}

func TestInsertAndFlush(t *testing.T) {
	db, rec := setupTestDB(t)
	rec.CreateTable("transfers", transferRow{})

	rec.InsertData("transfers", transferRow{Channel: 3, Direction: "MemToMem", Bytes: 4096})
	rec.InsertData("transfers", transferRow{Channel: 5, Direction: "PeriphToMem", Bytes: 64})
	rec.Flush()

	var channel, bytes int
	var direction string
	err := db.QueryRow("SELECT Channel, Direction, Bytes FROM transfers "+
		"WHERE Channel=3;").Scan(&channel, &direction, &bytes)
	require.NoError(t, err, "Data should be flushed")
	assert.Equal(t, 3, channel)
	assert.Equal(t, "MemToMem", direction)
	assert.Equal(t, 4096, bytes)
}

func TestFlushWithNothingBufferedIsANoOp(t *testing.T) {
	_, rec := setupTestDB(t)
	rec.CreateTable("transfers", transferRow{})

	rec.Flush()
	rec.Flush()
}

func TestInsertIntoUnknownTablePanics(t *testing.T) {
	_, rec := setupTestDB(t)

	assert.Panics(t, func() {
		rec.InsertData("missing", transferRow{})
	})
}

func TestNestedStructsAreRejected(t *testing.T) {
	_, rec := setupTestDB(t)

	assert.Panics(t, func() {
		rec.CreateTable("bad", struct{ Inner transferRow }{})
	})
}

func TestReaderQueriesRowsBack(t *testing.T) {
	db, rec := setupTestDB(t)
	rec.CreateTable("transfers", transferRow{})
	for i := 0; i < 10; i++ {
		rec.InsertData("transfers", transferRow{
			Channel: i, Direction: "MemToMem", Bytes: 64 * i,
		})
	}
	rec.Flush()

	reader := recording.NewReaderWithDB(db)
	reader.MapTable("transfers", transferRow{})

	results, total, err := reader.Query(context.Background(), "transfers",
		recording.QueryParams{
			Where:   "Channel >= ?",
			Args:    []any{5},
			OrderBy: "Channel DESC",
			Limit:   3,
		})

	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, results, 3)
	first, ok := results[0].(*transferRow)
	require.True(t, ok)
	assert.Equal(t, 9, first.Channel)
	assert.Equal(t, 576, first.Bytes)
}
