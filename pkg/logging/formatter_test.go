/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: formatter_test.go
Description: Tests for the custom log formatter. Covers engine prefixes, level
rendering without colors, and field value formatting.
*/

package logging_test

import (
	"strings"
	"testing"
	"time"

	"github.com/kleascm/lyra-schema/pkg/logging"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func formatEntry(t *testing.T, message string, fields logrus.Fields) string {
	t.Helper()
	f := &logging.CustomFormatter{Timestamp: false, Caller: false, Colors: false}
	entry := logrus.NewEntry(logrus.New())
	entry = entry.WithFields(fields)
	entry.Level = logrus.InfoLevel
	entry.Message = message
	entry.Time = time.Now()

	out, err := f.Format(entry)
	require.NoError(t, err)
	return string(out)
}

func TestCustomFormatterEnginePrefixes(t *testing.T) {
	cases := []struct {
		message string
		prefix  string
	}{
		{"Schema generated", "[GENERATE]"},
		{"Source kind detected", "[DETECT]"},
		{"Malformed record", "[DECODE]"},
		{"Schema written", "[WRITE]"},
		{"Watching for changes", "[WATCH]"},
	}

	for _, tc := range cases {
		text := formatEntry(t, tc.message, nil)
		assert.Contains(t, text, "INFO")
		assert.Contains(t, text, tc.prefix, tc.message)
	}

	text := formatEntry(t, "something else entirely", nil)
	assert.NotContains(t, text, "[")
}

func TestCustomFormatterFieldValues(t *testing.T) {
	long := strings.Repeat("x", 60)
	text := formatEntry(t, "Schema generated", logrus.Fields{
		"duration": 1500 * time.Millisecond,
		"note":     long,
		"count":    42,
	})

	assert.Contains(t, text, "duration=1.5s")
	assert.Contains(t, text, "count=42")
	// Long string values are truncated.
	assert.Contains(t, text, strings.Repeat("x", 50)+"...")
	assert.NotContains(t, text, long)
}
