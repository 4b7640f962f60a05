/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: html.go
Description: HTML table record reader. Parses the first <table> element of a static
HTML document with goquery and yields one record per body row, using header cells
as field names. Empty cells are surfaced as missing values, like CSV.
*/

package readers

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

func init() {
	Register("html", openHTML)
}

// htmlReader iterates the rows of a parsed table. The whole document is parsed
// up front; the sample cap still bounds how many rows the engine consumes.
type htmlReader struct {
	headers []string
	rows    [][]string
	next    int
}

func openHTML(_ context.Context, path string) (RecordReader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open html source: %w", err)
	}
	defer file.Close()

	doc, err := goquery.NewDocumentFromReader(file)
	if err != nil {
		return nil, &DecodeError{Source: path, Record: 1, Err: err}
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("html source %s contains no table", path)
	}

	var headers []string
	var rows [][]string

	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("th, td")
		values := make([]string, 0, cells.Length())
		isHeader := tr.Find("th").Length() > 0
		cells.Each(func(_ int, cell *goquery.Selection) {
			values = append(values, strings.TrimSpace(cell.Text()))
		})
		if len(values) == 0 {
			return
		}
		if headers == nil && isHeader {
			headers = values
			return
		}
		if headers == nil {
			// No <th> row: the first row serves as the header.
			headers = values
			return
		}
		rows = append(rows, values)
	})

	if headers == nil {
		return nil, fmt.Errorf("html table in %s has no rows", path)
	}

	return &htmlReader{headers: headers, rows: rows}, nil
}

func (h *htmlReader) Next() (Record, error) {
	if h.next >= len(h.rows) {
		return nil, io.EOF
	}
	row := h.rows[h.next]
	h.next++

	rec := NewRecord()
	for i, header := range h.headers {
		if i >= len(row) || row[i] == "" {
			rec.Set(header, nil)
			continue
		}
		rec.Set(header, row[i])
	}
	return rec, nil
}

func (h *htmlReader) Close() error {
	return nil
}
