/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: csv.go
Description: CSV record reader. Reads a header row, then yields one record per data
row with column order preserved. Empty cells are surfaced as missing values since
CSV has no other way to express absence.
*/

package readers

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

func init() {
	Register("csv", openCSV)
}

// csvReader streams records from a delimited-text file.
type csvReader struct {
	file    *os.File
	reader  *csv.Reader
	headers []string
	record  int
}

func openCSV(_ context.Context, path string) (RecordReader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv source: %w", err)
	}

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	headers, err := r.Read()
	if err != nil {
		file.Close()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("csv source %s is empty", path)
		}
		return nil, &DecodeError{Source: path, Record: 1, Err: err}
	}

	return &csvReader{file: file, reader: r, headers: headers}, nil
}

func (c *csvReader) Next() (Record, error) {
	row, err := c.reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, &DecodeError{Source: c.file.Name(), Record: c.record + 1, Err: err}
	}
	c.record++

	rec := NewRecord()
	for i, header := range c.headers {
		if i >= len(row) || row[i] == "" {
			// CSV represents missing values as empty cells.
			rec.Set(header, nil)
			continue
		}
		rec.Set(header, row[i])
	}
	return rec, nil
}

func (c *csvReader) Close() error {
	return c.file.Close()
}
