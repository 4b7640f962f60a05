/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: engine_test.go
Description: End-to-end tests for schema generation. Exercises real temp files
through detection, reading, merging, and assembly, and checks the sample cap,
deterministic output, decode error handling, and metadata fields.
*/

package inference_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kleascm/lyra-schema/pkg/inference"
	"github.com/kleascm/lyra-schema/pkg/logging"
	"github.com/kleascm/lyra-schema/pkg/readers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestGenerateSchemaJSONL(t *testing.T) {
	source := writeTemp(t, "users.jsonl", strings.Join([]string{
		`{"id": 1, "name": "Alice", "email": "alice@example.com"}`,
		`{"id": 2, "name": "Bob", "email": "bob@example.com"}`,
		`{"id": 3, "name": "Cara", "email": "cara@example.com"}`,
	}, "\n"))

	opts := inference.DefaultOptions()
	doc, err := inference.GenerateSchema(context.Background(), source, opts)
	require.NoError(t, err)

	assert.Equal(t, "object", doc.Type)
	assert.Equal(t, 3, doc.Metadata.NumRows)
	assert.Equal(t, 3, doc.Metadata.NumColumns)
	assert.Equal(t, "jsonl", doc.Metadata.SourceKind)

	id, ok := doc.Properties.Get("id")
	require.True(t, ok)
	assert.Equal(t, "integer", id.Type)
	assert.Equal(t, "Column: id", id.Description)

	email, ok := doc.Properties.Get("email")
	require.True(t, ok)
	assert.Equal(t, "string", email.Type)
	assert.Equal(t, "email", email.BusinessType)

	assert.Equal(t, []string{"id", "name", "email"}, doc.Required)
}

func TestGenerateSchemaCSV(t *testing.T) {
	source := writeTemp(t, "people.csv", strings.Join([]string{
		"name,age,score",
		"Alice,30,91.5",
		"Bob,25,88",
		"Cara,,90.0",
	}, "\n"))

	doc, err := inference.GenerateSchema(context.Background(), source, inference.DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, "csv", doc.Metadata.SourceKind)
	assert.Equal(t, 3, doc.Metadata.NumRows)

	age, ok := doc.Properties.Get("age")
	require.True(t, ok)
	// Empty cell in the last row makes the column nullable.
	assert.Equal(t, []string{"integer", "null"}, age.Type)
	assert.NotContains(t, doc.Required, "age")

	score, ok := doc.Properties.Get("score")
	require.True(t, ok)
	assert.Equal(t, "number", score.Type)
	assert.Contains(t, doc.Required, "score")
}

func TestGenerateSchemaSampleCap(t *testing.T) {
	var lines []string
	for i := 0; i < 50; i++ {
		lines = append(lines, `{"n": `+string(rune('0'+i%10))+`}`)
	}
	source := writeTemp(t, "many.jsonl", strings.Join(lines, "\n"))

	opts := inference.DefaultOptions()
	opts.SampleRows = 7
	doc, err := inference.GenerateSchema(context.Background(), source, opts)
	require.NoError(t, err)
	assert.Equal(t, 7, doc.Metadata.NumRows)
}

func TestGenerateSchemaDeterministic(t *testing.T) {
	source := writeTemp(t, "det.jsonl", strings.Join([]string{
		`{"zulu": "a", "alpha": 1, "tags": ["x"], "user": {"city": "NYC"}}`,
		`{"zulu": "b", "alpha": 2, "tags": [], "user": {}}`,
	}, "\n"))

	opts := inference.DefaultOptions()
	first, err := inference.GenerateSchema(context.Background(), source, opts)
	require.NoError(t, err)
	second, err := inference.GenerateSchema(context.Background(), source, opts)
	require.NoError(t, err)

	a, err := first.MarshalIndent()
	require.NoError(t, err)
	b, err := second.MarshalIndent()
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b), "same sample must render byte-identical schemas")

	// Property order follows first observation, not lexical order.
	var order []string
	for pair := first.Properties.Oldest(); pair != nil; pair = pair.Next() {
		order = append(order, pair.Key)
	}
	assert.Equal(t, []string{"zulu", "alpha", "tags", "user"}, order)
}

func TestGenerateSchemaBusinessDisabled(t *testing.T) {
	source := writeTemp(t, "emails.jsonl", strings.Join([]string{
		`{"email": "a@b.com"}`,
		`{"email": "c@d.org"}`,
	}, "\n"))

	opts := inference.DefaultOptions()
	opts.UseBusinessTypes = false
	doc, err := inference.GenerateSchema(context.Background(), source, opts)
	require.NoError(t, err)

	data, err := doc.MarshalIndent()
	require.NoError(t, err)
	assert.NotContains(t, string(data), "business_type")
}

func TestGenerateSchemaBadRecord(t *testing.T) {
	source := writeTemp(t, "broken.jsonl", strings.Join([]string{
		`{"ok": 1}`,
		`this is not json`,
		`{"ok": 3}`,
	}, "\n"))

	// Default: decode failures abort the run.
	_, err := inference.GenerateSchema(context.Background(), source, inference.DefaultOptions())
	require.Error(t, err)
	assert.True(t, readers.IsDecodeError(err))

	// Opt-in skipping keeps the well-formed records.
	opts := inference.DefaultOptions()
	opts.SkipBadRecords = true
	doc, err := inference.GenerateSchema(context.Background(), source, opts)
	require.NoError(t, err)
	assert.Equal(t, 2, doc.Metadata.NumRows)
}

func TestGenerateSchemaExplicitKind(t *testing.T) {
	// A .txt extension defeats detection, but an explicit kind still works.
	source := writeTemp(t, "data.txt", `{"x": 1}`)

	opts := inference.DefaultOptions()
	opts.SourceKind = "jsonl"
	doc, err := inference.GenerateSchema(context.Background(), source, opts)
	require.NoError(t, err)
	assert.Equal(t, "jsonl", doc.Metadata.SourceKind)
}

func TestGenerateSchemaUnsupportedKind(t *testing.T) {
	source := writeTemp(t, "data.jsonl", `{"x": 1}`)

	opts := inference.DefaultOptions()
	opts.SourceKind = "avro"
	_, err := inference.GenerateSchema(context.Background(), source, opts)
	require.ErrorIs(t, err, readers.ErrUnsupportedKind)
}

func TestGenerateSchemaParquetUnavailable(t *testing.T) {
	source := writeTemp(t, "data.parquet", "PAR1....PAR1")

	_, err := inference.GenerateSchema(context.Background(), source, inference.DefaultOptions())
	require.ErrorIs(t, err, readers.ErrCapabilityUnavailable)
}

func TestGenerateSchemaEmptySource(t *testing.T) {
	source := writeTemp(t, "empty.jsonl", "")

	doc, err := inference.GenerateSchema(context.Background(), source, inference.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 0, doc.Metadata.NumRows)
	assert.Equal(t, 0, doc.Metadata.NumColumns)
	assert.Equal(t, 0, doc.Properties.Len())
	assert.Equal(t, []string{}, doc.Required)
}

func TestGenerateSchemaLogsRun(t *testing.T) {
	source := writeTemp(t, "logged.jsonl", strings.Join([]string{
		`{"ok": 1}`,
		`not json`,
		`{"ok": 3}`,
	}, "\n"))

	logDir := t.TempDir()
	logger, err := logging.NewLogger(&logging.LoggerConfig{
		Level:     logging.LogLevelDebug,
		Format:    logging.LogFormatText,
		OutputDir: logDir,
		MaxFiles:  3,
		MaxSize:   1024 * 1024,
		Timestamp: true,
	})
	require.NoError(t, err)

	opts := inference.DefaultOptions()
	opts.SkipBadRecords = true
	opts.Logger = logger
	_, err = inference.GenerateSchema(context.Background(), source, opts)
	require.NoError(t, err)
	require.NoError(t, logger.Close())

	files, err := filepath.Glob(filepath.Join(logDir, "lyra-schema_*.log"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "Schema generation started")
	assert.Contains(t, text, "Malformed record", "skipped records are reported")
	assert.Contains(t, text, "Schema generated")
}

func TestGenerateSchemaInvalidOptions(t *testing.T) {
	_, err := inference.GenerateSchema(context.Background(), "whatever", inference.Options{SampleRows: -1})
	require.Error(t, err)

	_, err = inference.GenerateSchema(context.Background(), "whatever", inference.Options{BusinessConsensus: 1.5})
	require.Error(t, err)
}
