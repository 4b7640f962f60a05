/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: resolver.go
Description: Type resolver for the Lyra Schema engine. Reduces a field
accumulator's counts into one final primitive kind (with widening on mixed
observations), a nullable flag, and an optional business type gated by a
consensus threshold over the sampled string occurrences.
*/

package inference

// ResolvedType is the resolver output for one field path.
type ResolvedType struct {
	Kind         Kind
	Nullable     bool
	BusinessType string

	// Object children in first-observed order.
	ChildOrder []string
	Children   map[string]*ResolvedType

	// Array item type; nil when every observed array was empty.
	Items *ResolvedType
}

// Widening tie-break: when mixed observations have equal counts, the more
// permissive kind wins.
var kindPrecedence = map[Kind]int{
	KindObject:  0,
	KindArray:   1,
	KindString:  2,
	KindFloat:   3,
	KindInteger: 4,
	KindBoolean: 5,
}

// resolveKind reduces the kind counts into one primitive kind.
func resolveKind(a *FieldAccumulator) Kind {
	if len(a.Kinds) == 0 {
		// Observed but never non-null: no data to infer from, fall back to
		// string rather than fail.
		return KindString
	}
	if len(a.Kinds) == 1 {
		for kind := range a.Kinds {
			return kind
		}
	}

	structural := a.Kinds[KindObject] > 0 || a.Kinds[KindArray] > 0
	if !structural {
		onlyNumeric := len(a.Kinds) == 2 && a.Kinds[KindInteger] > 0 && a.Kinds[KindFloat] > 0
		if onlyNumeric {
			return KindFloat
		}
		// Any other scalar mixture widens to string.
		return KindString
	}

	// Structural kinds mixed with scalars or each other: highest count wins,
	// ties resolve toward the more permissive kind.
	var best Kind
	bestCount := -1
	for kind, count := range a.Kinds {
		if count > bestCount || (count == bestCount && kindPrecedence[kind] < kindPrecedence[best]) {
			best = kind
			bestCount = count
		}
	}
	return best
}

// resolveBusiness picks the dominant business candidate for a string field,
// suppressing it unless it covers at least threshold of the sampled string
// occurrences. Ties between candidates resolve by rule priority.
func resolveBusiness(a *FieldAccumulator, threshold float64) string {
	strings := a.Kinds[KindString]
	if strings == 0 || len(a.Business) == 0 {
		return ""
	}

	var best string
	bestCount := 0
	for name, count := range a.Business {
		if count > bestCount || (count == bestCount && businessPriority[name] < businessPriority[best]) {
			best = name
			bestCount = count
		}
	}

	if float64(bestCount) < threshold*float64(strings) {
		return ""
	}
	return best
}

// resolveScalar finalizes one accumulator into a ResolvedType without
// descending into children; the merger attaches those.
func resolveScalar(a *FieldAccumulator, useBusiness bool, threshold float64) *ResolvedType {
	rt := &ResolvedType{
		Kind:     resolveKind(a),
		Nullable: a.Nulls > 0,
	}
	if useBusiness && rt.Kind == KindString {
		rt.BusinessType = resolveBusiness(a, threshold)
	}
	return rt
}
