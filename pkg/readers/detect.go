/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: detect.go
Description: Source kind detector. Classifies a source file as csv, jsonl, html,
sqlite, or parquet by extension first, then by content sniffing (magic bytes,
JSON first line, markup prefix, delimiter heuristic).
*/

package readers

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// sqliteMagic is the 16-byte header of every SQLite database file.
const sqliteMagic = "SQLite format 3\x00"

// DetectKind determines the source kind for a path. Extension wins when it is
// unambiguous; otherwise the file content decides. Returns ErrUndetectableKind
// when neither suffices.
func DetectKind(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("source not found: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("source %s is a directory: %w", path, ErrUndetectableKind)
	}

	if kind := kindFromExtension(path); kind != "" {
		return kind, nil
	}
	return kindFromContent(path)
}

func kindFromExtension(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".csv":
		return "csv"
	case ".jsonl", ".jsonlines", ".ndjson":
		return "jsonl"
	case ".parquet", ".parq":
		return "parquet"
	case ".html", ".htm":
		return "html"
	case ".db", ".sqlite", ".sqlite3":
		return "sqlite"
	case ".gz":
		// Compressed JSONL keeps its inner extension: data.jsonl.gz.
		stem := strings.ToLower(strings.TrimSuffix(filepath.Base(path), ext))
		for _, inner := range []string{".jsonl", ".jsonlines", ".ndjson"} {
			if strings.HasSuffix(stem, inner) {
				return "jsonl"
			}
		}
	}
	return ""
}

func kindFromContent(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("cannot read source to detect kind: %w", err)
	}
	defer file.Close()

	header := make([]byte, len(sqliteMagic))
	n, _ := file.Read(header)
	header = header[:n]

	if bytes.HasPrefix(header, []byte(sqliteMagic)) {
		return "sqlite", nil
	}
	if bytes.HasPrefix(header, []byte(parquetMagic)) {
		return "parquet", nil
	}

	if _, err := file.Seek(0, 0); err != nil {
		return "", fmt.Errorf("cannot read source to detect kind: %w", err)
	}

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)
	if !scanner.Scan() {
		return "", fmt.Errorf("source %s is empty: %w", path, ErrUndetectableKind)
	}
	first := strings.TrimSpace(scanner.Text())

	if strings.HasPrefix(first, "{") {
		var v map[string]any
		if json.Unmarshal([]byte(first), &v) == nil {
			return "jsonl", nil
		}
	}
	if strings.HasPrefix(first, "<") {
		return "html", nil
	}
	if strings.Contains(first, ",") && len(strings.Split(first, ",")) > 1 {
		return "csv", nil
	}

	return "", fmt.Errorf("source %s: %w", path, ErrUndetectableKind)
}
