/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: report_writer.go
Description: Utility for writing generated schema documents to the output directory.
Handles timestamped, source-kind-specific filenames, ensures directories exist, and
writes pretty-printed JSON for easy diffing.
*/

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kleascm/lyra-schema/pkg/schema"
)

// WriteSchemaResult writes a schema document to the output directory with a
// timestamped, kind-tagged filename. Returns the path written.
func WriteSchemaResult(outputDir string, doc *schema.Document) (string, error) {
	dir := filepath.Join(outputDir, doc.Metadata.SourceKind)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	// Filename: 2024-06-11_01-30-00_csv_schema.json
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	filename := fmt.Sprintf("%s_%s_schema.json", timestamp, doc.Metadata.SourceKind)
	filePath := filepath.Join(dir, filename)

	data, err := doc.MarshalIndent()
	if err != nil {
		return "", fmt.Errorf("failed to marshal schema: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write schema file: %w", err)
	}

	return filePath, nil
}

// WriteSchemaTo writes a schema document to an explicit path, creating parent
// directories as needed.
func WriteSchemaTo(path string, doc *schema.Document) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	data, err := doc.MarshalIndent()
	if err != nil {
		return fmt.Errorf("failed to marshal schema: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write schema file: %w", err)
	}

	return nil
}
