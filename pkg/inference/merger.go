/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: merger.go
Description: Structure merger for the Lyra Schema engine. Recursively walks each
sampled record, maintaining one field accumulator per field path, unioning the
keys observed across all records and tracking absences so optional fields resolve
nullable. All cross-record state lives here and dies with the generation call.
*/

package inference

import (
	"github.com/kleascm/lyra-schema/pkg/readers"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Merger accumulates inference state across one bounded sample of records.
// It is single-use: build one per generation call, merge, then resolve.
type Merger struct {
	useBusiness bool
	accs        map[string]*FieldAccumulator
	rows        int
}

// NewMerger creates an empty merger.
func NewMerger(useBusiness bool) *Merger {
	return &Merger{
		useBusiness: useBusiness,
		accs:        make(map[string]*FieldAccumulator),
	}
}

// Rows returns the number of records merged so far.
func (m *Merger) Rows() int {
	return m.rows
}

// MergeRecord folds one record into the accumulator set.
func (m *Merger) MergeRecord(rec readers.Record) {
	m.rows++
	m.walkObject(FieldPath{}, rec)
}

// acc returns the accumulator for a path, creating it lazily. backfill is the
// number of earlier occurrences of the enclosing container that predate this
// path's discovery; they count as absences so late-appearing fields resolve
// nullable.
func (m *Merger) acc(path FieldPath, backfill int) *FieldAccumulator {
	key := path.String()
	a, ok := m.accs[key]
	if !ok {
		a = NewFieldAccumulator(path)
		for i := 0; i < backfill; i++ {
			a.ObserveAbsent()
		}
		m.accs[key] = a
	}
	return a
}

func (m *Merger) walkObject(path FieldPath, obj *orderedmap.OrderedMap[string, any]) {
	a := m.acc(path, 0)
	a.ObserveObject()

	present := make(map[string]struct{}, obj.Len())
	for pair := obj.Oldest(); pair != nil; pair = pair.Next() {
		present[pair.Key] = struct{}{}
		a.AddChild(pair.Key)
		m.walkValue(path.Child(pair.Key), pair.Value, a.Objects-1)
	}

	// Keys seen in earlier records of this object but missing now.
	for _, key := range a.Children() {
		if _, ok := present[key]; ok {
			continue
		}
		m.acc(path.Child(key), 0).ObserveAbsent()
	}
}

func (m *Merger) walkArray(path FieldPath, items []any) {
	a := m.acc(path, 0)
	a.ObserveArray()
	if len(items) == 0 {
		return
	}
	a.HasItems = true
	itemsPath := path.Items()
	for _, item := range items {
		// Array elements share one path, so heterogeneous arrays union into
		// a single item type. Elements are never "absent".
		m.walkValue(itemsPath, item, 0)
	}
}

func (m *Merger) walkValue(path FieldPath, value any, backfill int) {
	switch v := value.(type) {
	case *orderedmap.OrderedMap[string, any]:
		m.acc(path, backfill)
		m.walkObject(path, v)
	case []any:
		m.acc(path, backfill)
		m.walkArray(path, v)
	default:
		m.acc(path, backfill).ObserveScalar(v, m.useBusiness, false)
	}
}

// Resolve finalizes every accumulator into a tree of resolved types rooted at
// the top-level record. threshold is the business-type consensus fraction.
func (m *Merger) Resolve(threshold float64) *ResolvedType {
	return m.resolveAt(FieldPath{}, threshold)
}

func (m *Merger) resolveAt(path FieldPath, threshold float64) *ResolvedType {
	a, ok := m.accs[path.String()]
	if !ok {
		return nil
	}

	rt := resolveScalar(a, m.useBusiness, threshold)

	if rt.Kind == KindObject {
		rt.Children = make(map[string]*ResolvedType, len(a.Children()))
		for _, key := range a.Children() {
			child := m.resolveAt(path.Child(key), threshold)
			if child == nil {
				continue
			}
			rt.ChildOrder = append(rt.ChildOrder, key)
			rt.Children[key] = child
		}
	}

	if rt.Kind == KindArray && a.HasItems {
		rt.Items = m.resolveAt(path.Items(), threshold)
	}

	return rt
}
