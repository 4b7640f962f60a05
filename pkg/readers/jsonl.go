/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: jsonl.go
Description: JSONL (JSON Lines) record reader. Yields one record per non-blank line,
preserving field order as it appears on the wire and keeping numbers as json.Number
so the classifier can distinguish integers from floats without loss. Transparently
decompresses .gz sources.
*/

package readers

import (
	"bufio"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/buger/jsonparser"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Scanner buffer cap for one line. Large records happen in the wild.
const maxLineBytes = 16 * 1024 * 1024

func init() {
	Register("jsonl", openJSONL)
}

type jsonlReader struct {
	source  string
	file    *os.File
	gz      *gzip.Reader
	scanner *bufio.Scanner
	record  int
}

func openJSONL(_ context.Context, path string) (RecordReader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open jsonl source: %w", err)
	}

	r := &jsonlReader{source: path, file: file}

	var raw io.Reader = file
	if strings.HasSuffix(strings.ToLower(path), ".gz") {
		gz, err := gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to open gzip stream: %w", err)
		}
		r.gz = gz
		raw = gz
	}

	r.scanner = bufio.NewScanner(raw)
	r.scanner.Buffer(make([]byte, 64*1024), maxLineBytes)
	return r, nil
}

func (j *jsonlReader) Next() (Record, error) {
	for j.scanner.Scan() {
		line := strings.TrimSpace(j.scanner.Text())
		if line == "" {
			continue
		}
		j.record++

		if line[0] != '{' {
			return nil, &DecodeError{Source: j.source, Record: j.record,
				Err: fmt.Errorf("line is not a JSON object")}
		}
		rec, err := parseJSONObject([]byte(line))
		if err != nil {
			return nil, &DecodeError{Source: j.source, Record: j.record, Err: err}
		}
		return rec, nil
	}
	if err := j.scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read jsonl source: %w", err)
	}
	return nil, io.EOF
}

func (j *jsonlReader) Close() error {
	if j.gz != nil {
		j.gz.Close()
	}
	return j.file.Close()
}

// parseJSONObject decodes one JSON object into an order-preserving record.
func parseJSONObject(data []byte) (Record, error) {
	obj := orderedmap.New[string, any]()
	err := jsonparser.ObjectEach(data, func(key, value []byte, vt jsonparser.ValueType, _ int) error {
		name, err := jsonparser.ParseString(key)
		if err != nil {
			return fmt.Errorf("invalid object key: %w", err)
		}
		v, err := parseJSONValue(value, vt)
		if err != nil {
			return err
		}
		obj.Set(name, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return obj, nil
}

func parseJSONValue(value []byte, vt jsonparser.ValueType) (any, error) {
	switch vt {
	case jsonparser.Null:
		return nil, nil
	case jsonparser.Boolean:
		return jsonparser.ParseBoolean(value)
	case jsonparser.Number:
		return json.Number(string(value)), nil
	case jsonparser.String:
		return jsonparser.ParseString(value)
	case jsonparser.Object:
		return parseJSONObject(value)
	case jsonparser.Array:
		items := make([]any, 0)
		var itemErr error
		_, err := jsonparser.ArrayEach(value, func(item []byte, it jsonparser.ValueType, _ int, err error) {
			if itemErr != nil {
				return
			}
			if err != nil {
				itemErr = err
				return
			}
			v, err := parseJSONValue(item, it)
			if err != nil {
				itemErr = err
				return
			}
			items = append(items, v)
		})
		if err != nil {
			return nil, err
		}
		if itemErr != nil {
			return nil, itemErr
		}
		return items, nil
	default:
		return nil, fmt.Errorf("unexpected JSON value type %v", vt)
	}
}
