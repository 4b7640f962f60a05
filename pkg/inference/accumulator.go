/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: accumulator.go
Description: Field path addressing and per-path accumulation state for the Lyra
Schema engine. A FieldAccumulator holds the running counts for one field across
the whole sample: occurrences per primitive kind, per business-type candidate,
and nulls/absences, plus the child paths discovered under objects and arrays.
*/

package inference

import "strings"

// ItemsSegment is the shared path segment for all elements of an array field.
// Elements are inferred together regardless of index.
const ItemsSegment = "items"

// FieldPath is the structural address of a field inside nested data. The empty
// path addresses the top-level record.
type FieldPath []string

// Child extends the path with one more segment.
func (p FieldPath) Child(segment string) FieldPath {
	child := make(FieldPath, len(p), len(p)+1)
	copy(child, p)
	return append(child, segment)
}

// Items extends the path with the shared array-items segment.
func (p FieldPath) Items() FieldPath {
	return p.Child(ItemsSegment)
}

// String renders the path as a dotted key for accumulator lookup.
func (p FieldPath) String() string {
	return strings.Join(p, ".")
}

// FieldAccumulator holds the running inference state for one field path. It is
// created lazily on first observation and owned by the merger for the duration
// of one schema-generation call.
type FieldAccumulator struct {
	Path  FieldPath
	Total int
	Nulls int
	Kinds map[Kind]int

	// String-field business candidates, counted only when inference is on.
	Business  map[string]int
	Unmatched int

	// Object bookkeeping: occurrence count and first-observed child keys.
	Objects    int
	childOrder []string
	childSet   map[string]struct{}

	// Array bookkeeping.
	Arrays   int
	HasItems bool
}

// NewFieldAccumulator creates an empty accumulator for a path.
func NewFieldAccumulator(path FieldPath) *FieldAccumulator {
	return &FieldAccumulator{
		Path:     path,
		Kinds:    make(map[Kind]int),
		Business: make(map[string]int),
		childSet: make(map[string]struct{}),
	}
}

// ObserveScalar records one scalar occurrence. Null values stop before
// business matching; string values are matched against the business rule
// table when useBusiness is set.
func (a *FieldAccumulator) ObserveScalar(value any, useBusiness bool, boolHint bool) {
	a.Total++

	kind := ClassifyPrimitive(value, boolHint)
	if kind == KindNull {
		a.Nulls++
		return
	}
	a.Kinds[kind]++

	if kind != KindString || !useBusiness {
		return
	}
	text := stringValue(value)
	if name, ok := MatchBusinessType(text); ok {
		a.Business[name]++
	} else {
		a.Unmatched++
	}
}

// ObserveAbsent records that the field was missing from a record in which its
// enclosing object was present.
func (a *FieldAccumulator) ObserveAbsent() {
	a.Total++
	a.Nulls++
}

// ObserveObject records one non-null object occurrence at this path.
func (a *FieldAccumulator) ObserveObject() {
	a.Total++
	a.Kinds[KindObject]++
	a.Objects++
}

// ObserveArray records one non-null array occurrence at this path.
func (a *FieldAccumulator) ObserveArray() {
	a.Total++
	a.Kinds[KindArray]++
	a.Arrays++
}

// AddChild registers a child key, keeping first-observed order. Returns true
// the first time the key is seen.
func (a *FieldAccumulator) AddChild(key string) bool {
	if _, seen := a.childSet[key]; seen {
		return false
	}
	a.childSet[key] = struct{}{}
	a.childOrder = append(a.childOrder, key)
	return true
}

// HasChild reports whether the key was observed under this path before.
func (a *FieldAccumulator) HasChild(key string) bool {
	_, seen := a.childSet[key]
	return seen
}

// Children returns the child keys in first-observed order.
func (a *FieldAccumulator) Children() []string {
	return a.childOrder
}

func stringValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return ""
	}
}
