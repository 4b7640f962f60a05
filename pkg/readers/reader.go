/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: reader.go
Description: Record reader interface and registry for the Lyra Schema engine. Readers
turn a source file into a lazy, finite stream of records. Each source kind registers
an opener so the engine can stay format-agnostic.
*/

package readers

import (
	"context"
	"fmt"
	"sort"
	"sync"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Record is one sampled record: an ordered map of field name to value.
// Values are nil, bool, string, json.Number, int64, float64, []any
// (arrays) or nested *orderedmap.OrderedMap[string, any] (objects).
// Key order is the order the source presented the fields in.
type Record = *orderedmap.OrderedMap[string, any]

// NewRecord creates an empty record.
func NewRecord() Record {
	return orderedmap.New[string, any]()
}

// RecordReader produces a lazy, finite, non-restartable sequence of records.
// Next returns io.EOF when the source is exhausted.
type RecordReader interface {
	Next() (Record, error)
	Close() error
}

// OpenFunc opens a reader for a source path.
type OpenFunc func(ctx context.Context, path string) (RecordReader, error)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]OpenFunc)
)

// Register adds an opener for a source kind. Called from reader init functions.
func Register(kind string, open OpenFunc) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[kind] = open
}

// Open resolves a source kind to a reader for the given path.
func Open(ctx context.Context, kind string, path string) (RecordReader, error) {
	registryMu.RLock()
	open, ok := registry[kind]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("source kind %q: %w", kind, ErrUnsupportedKind)
	}
	return open(ctx, path)
}

// Kinds returns the registered source kinds in sorted order.
func Kinds() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	kinds := make([]string, 0, len(registry))
	for kind := range registry {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}
