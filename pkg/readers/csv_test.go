/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: csv_test.go
Description: Tests for the CSV record reader. Covers header handling, column order,
empty cells as missing values, ragged rows, and malformed quoting surfaced as
decode errors.
*/

package readers_test

import (
	"context"
	"io"
	"testing"

	"github.com/kleascm/lyra-schema/pkg/readers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVReaderBasic(t *testing.T) {
	path := writeSource(t, "people.csv", "name,age,city\nAlice,30,NYC\nBob,25,LA\n")

	r, err := readers.Open(context.Background(), "csv", path)
	require.NoError(t, err)
	defer r.Close()

	rec, err := r.Next()
	require.NoError(t, err)
	require.Equal(t, 3, rec.Len())

	// Column order survives the round trip.
	var keys []string
	for pair := rec.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	assert.Equal(t, []string{"name", "age", "city"}, keys)

	name, _ := rec.Get("name")
	assert.Equal(t, "Alice", name)
	age, _ := rec.Get("age")
	assert.Equal(t, "30", age)

	_, err = r.Next()
	require.NoError(t, err)
	_, err = r.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestCSVReaderEmptyCellsAreMissing(t *testing.T) {
	path := writeSource(t, "gaps.csv", "a,b\n1,\n,2\n")

	r, err := readers.Open(context.Background(), "csv", path)
	require.NoError(t, err)
	defer r.Close()

	rec, err := r.Next()
	require.NoError(t, err)
	b, ok := rec.Get("b")
	require.True(t, ok)
	assert.Nil(t, b)

	rec, err = r.Next()
	require.NoError(t, err)
	a, _ := rec.Get("a")
	assert.Nil(t, a)
}

func TestCSVReaderRaggedRows(t *testing.T) {
	// A short row leaves trailing columns missing rather than failing.
	path := writeSource(t, "ragged.csv", "a,b,c\n1,2\n")

	r, err := readers.Open(context.Background(), "csv", path)
	require.NoError(t, err)
	defer r.Close()

	rec, err := r.Next()
	require.NoError(t, err)
	c, ok := rec.Get("c")
	require.True(t, ok)
	assert.Nil(t, c)
}

func TestCSVReaderMalformedQuoting(t *testing.T) {
	path := writeSource(t, "bad.csv", "a,b\n\"unterminated,2\n")

	r, err := readers.Open(context.Background(), "csv", path)
	require.NoError(t, err)
	defer r.Close()

	_, err = r.Next()
	require.Error(t, err)
	assert.True(t, readers.IsDecodeError(err))
}

func TestCSVReaderEmptyFile(t *testing.T) {
	path := writeSource(t, "empty.csv", "")
	_, err := readers.Open(context.Background(), "csv", path)
	assert.Error(t, err)
}

func TestCSVReaderHeaderOnly(t *testing.T) {
	path := writeSource(t, "header.csv", "a,b,c\n")

	r, err := readers.Open(context.Background(), "csv", path)
	require.NoError(t, err)
	defer r.Close()

	_, err = r.Next()
	assert.ErrorIs(t, err, io.EOF)
}
