/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: sqlite_test.go
Description: Tests for the SQLite record reader. Builds a real database file, then
checks column order, NULL handling, BLOB-to-string conversion, and the empty
database error path.
*/

package readers_test

import (
	"context"
	"database/sql"
	"io"
	"path/filepath"
	"testing"

	"github.com/kleascm/lyra-schema/pkg/readers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func buildDatabase(t *testing.T, statements ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	for _, stmt := range statements {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}
	return path
}

func TestSQLiteReaderBasic(t *testing.T) {
	path := buildDatabase(t,
		`CREATE TABLE users (id INTEGER, name TEXT, score REAL, note BLOB)`,
		`INSERT INTO users VALUES (1, 'Alice', 91.5, X'68656C6C6F')`,
		`INSERT INTO users VALUES (2, 'Bob', NULL, NULL)`,
	)

	r, err := readers.Open(context.Background(), "sqlite", path)
	require.NoError(t, err)
	defer r.Close()

	rec, err := r.Next()
	require.NoError(t, err)

	var keys []string
	for pair := rec.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	assert.Equal(t, []string{"id", "name", "score", "note"}, keys)

	id, _ := rec.Get("id")
	assert.Equal(t, int64(1), id)
	note, _ := rec.Get("note")
	assert.Equal(t, "hello", note, "BLOBs surface as strings")

	rec, err = r.Next()
	require.NoError(t, err)
	score, ok := rec.Get("score")
	require.True(t, ok)
	assert.Nil(t, score, "SQL NULL surfaces as missing")

	_, err = r.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestSQLiteReaderFirstTableOnly(t *testing.T) {
	path := buildDatabase(t,
		`CREATE TABLE first (a TEXT)`,
		`CREATE TABLE second (b TEXT)`,
		`INSERT INTO first VALUES ('from first')`,
		`INSERT INTO second VALUES ('from second')`,
	)

	r, err := readers.Open(context.Background(), "sqlite", path)
	require.NoError(t, err)
	defer r.Close()

	rec, err := r.Next()
	require.NoError(t, err)
	_, ok := rec.Get("a")
	assert.True(t, ok)
}

func TestSQLiteReaderQuotedTableName(t *testing.T) {
	// Identifiers with embedded quotes must be doubled, not Go-escaped.
	path := buildDatabase(t,
		`CREATE TABLE "odd""name" (a TEXT)`,
		`INSERT INTO "odd""name" VALUES ('ok')`,
	)

	r, err := readers.Open(context.Background(), "sqlite", path)
	require.NoError(t, err)
	defer r.Close()

	rec, err := r.Next()
	require.NoError(t, err)
	v, _ := rec.Get("a")
	assert.Equal(t, "ok", v)
}

func TestSQLiteReaderNoTables(t *testing.T) {
	path := buildDatabase(t, `PRAGMA user_version = 1`)
	_, err := readers.Open(context.Background(), "sqlite", path)
	assert.Error(t, err)
}
