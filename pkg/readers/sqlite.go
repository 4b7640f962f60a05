/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: sqlite.go
Description: SQLite record reader. Samples rows from the first user table of a
SQLite database file. Column order follows the table definition; NULLs are
surfaced as missing values and BLOBs as strings for classification.
*/

package readers

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"strings"

	_ "modernc.org/sqlite"
)

func init() {
	Register("sqlite", openSQLite)
}

type sqliteReader struct {
	db      *sql.DB
	rows    *sql.Rows
	columns []string
	record  int
	source  string
}

func openSQLite(ctx context.Context, path string) (RecordReader, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=query_only(1)")
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite source: %w", err)
	}

	var table string
	err = db.QueryRowContext(ctx,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY rowid LIMIT 1`,
	).Scan(&table)
	if err != nil {
		db.Close()
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("sqlite source %s contains no tables", path)
		}
		return nil, fmt.Errorf("failed to inspect sqlite source: %w", err)
	}

	rows, err := db.QueryContext(ctx, "SELECT * FROM "+quoteIdentifier(table))
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to query table %s: %w", table, err)
	}

	columns, err := rows.Columns()
	if err != nil {
		rows.Close()
		db.Close()
		return nil, fmt.Errorf("failed to read columns of %s: %w", table, err)
	}

	return &sqliteReader{db: db, rows: rows, columns: columns, source: path}, nil
}

func (s *sqliteReader) Next() (Record, error) {
	if !s.rows.Next() {
		if err := s.rows.Err(); err != nil {
			return nil, &DecodeError{Source: s.source, Record: s.record + 1, Err: err}
		}
		return nil, io.EOF
	}
	s.record++

	values := make([]any, len(s.columns))
	scan := make([]any, len(s.columns))
	for i := range values {
		scan[i] = &values[i]
	}
	if err := s.rows.Scan(scan...); err != nil {
		return nil, &DecodeError{Source: s.source, Record: s.record, Err: err}
	}

	rec := NewRecord()
	for i, column := range s.columns {
		switch v := values[i].(type) {
		case []byte:
			rec.Set(column, string(v))
		default:
			rec.Set(column, v)
		}
	}
	return rec, nil
}

// quoteIdentifier renders a SQL identifier, doubling embedded double quotes.
func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func (s *sqliteReader) Close() error {
	s.rows.Close()
	return s.db.Close()
}
