/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: logger_test.go
Description: Tests for the logging system. Covers config validation, log file
creation, level filtering, the async queue, and retention cleanup on close.
*/

package logging_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kleascm/lyra-schema/pkg/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(dir string) *logging.LoggerConfig {
	return &logging.LoggerConfig{
		Level:     logging.LogLevelDebug,
		Format:    logging.LogFormatText,
		OutputDir: dir,
		MaxFiles:  5,
		MaxSize:   1024 * 1024,
		Timestamp: true,
		Caller:    false,
		Colors:    false,
	}
}

func TestLoggerConfigValidate(t *testing.T) {
	valid := testConfig(t.TempDir())
	require.NoError(t, valid.Validate())

	cases := []struct {
		name   string
		mutate func(*logging.LoggerConfig)
	}{
		{"empty output dir", func(c *logging.LoggerConfig) { c.OutputDir = "" }},
		{"zero max files", func(c *logging.LoggerConfig) { c.MaxFiles = 0 }},
		{"zero max size", func(c *logging.LoggerConfig) { c.MaxSize = 0 }},
		{"bad format", func(c *logging.LoggerConfig) { c.Format = "yaml" }},
		{"bad level", func(c *logging.LoggerConfig) { c.Level = "loud" }},
	}

	for _, tc := range cases {
		c := testConfig(t.TempDir())
		tc.mutate(c)
		assert.Error(t, c.Validate(), tc.name)
	}
}

func TestLoggerWritesFile(t *testing.T) {
	dir := t.TempDir()
	logger, err := logging.NewLogger(testConfig(dir))
	require.NoError(t, err)

	logger.Info("schema run", map[string]interface{}{"source": "rows.jsonl"})
	logger.LogDetection("rows.jsonl", "jsonl")
	require.NoError(t, logger.Close())

	files, err := filepath.Glob(filepath.Join(dir, "lyra-schema_*.log"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "rows.jsonl")
	assert.Contains(t, string(data), "Source kind detected")
}

func TestLoggerDefaultsWhenNil(t *testing.T) {
	logger, err := logging.NewLogger(nil)
	require.NoError(t, err)
	defer logger.Close()

	assert.NotNil(t, logger.GetLogger())
}

func TestLoggerCloseDrainsQueue(t *testing.T) {
	dir := t.TempDir()
	logger, err := logging.NewLogger(testConfig(dir))
	require.NoError(t, err)

	for i := 0; i < 200; i++ {
		logger.Info("queued entry", map[string]interface{}{"seq": i})
	}
	// Close must flush every buffered entry before the file closes.
	require.NoError(t, logger.Close())

	files, err := filepath.Glob(filepath.Join(dir, "lyra-schema_*.log"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Equal(t, 200, strings.Count(string(data), "queued entry"))
}

func TestLoggerEngineHelpers(t *testing.T) {
	dir := t.TempDir()
	logger, err := logging.NewLogger(testConfig(dir))
	require.NoError(t, err)

	logger.LogGeneration("run-1", "rows.jsonl", "jsonl", 42, 7, 150*time.Millisecond)
	logger.LogRecordError("run-1", "rows.jsonl", 3, errors.New("bad line"))
	logger.LogSchemaWritten("schemas/jsonl/latest_schema.json", 512)
	logger.Debug("resolver state", map[string]interface{}{"fields": 7})
	logger.Warning("slow source", map[string]interface{}{"source": "rows.jsonl"})
	logger.Error("write failed", map[string]interface{}{"path": "out.json"})
	require.NoError(t, logger.Close())

	files, err := filepath.Glob(filepath.Join(dir, "lyra-schema_*.log"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	text := string(data)
	for _, msg := range []string{
		"Schema generated",
		"Malformed record",
		"Schema written",
		"resolver state",
		"slow source",
		"write failed",
	} {
		assert.Contains(t, text, msg)
	}
}

func TestLoggerCleanupRetention(t *testing.T) {
	dir := t.TempDir()

	// Seed more historical log files than the retention limit.
	for i := 0; i < 8; i++ {
		name := filepath.Join(dir, "lyra-schema_old-"+string(rune('a'+i))+".log")
		require.NoError(t, os.WriteFile(name, []byte("old"), 0644))
	}

	config := testConfig(dir)
	config.MaxFiles = 3
	logger, err := logging.NewLogger(config)
	require.NoError(t, err)
	require.NoError(t, logger.Close())

	files, err := filepath.Glob(filepath.Join(dir, "lyra-schema_*.log"))
	require.NoError(t, err)
	assert.LessOrEqual(t, len(files), 3)
}
