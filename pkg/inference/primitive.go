/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: primitive.go
Description: Primitive type classifier for the Lyra Schema engine. Classifies one
raw value into a primitive kind (null, boolean, integer, float, string) using an
ordered sequence of reversible parse attempts so classification is deterministic.
*/

package inference

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Kind is a primitive type kind as seen by the resolver.
type Kind string

const (
	KindNull    Kind = "null"
	KindBoolean Kind = "boolean"
	KindInteger Kind = "integer"
	KindFloat   Kind = "number"
	KindString  Kind = "string"
	KindObject  Kind = "object"
	KindArray   Kind = "array"
)

// Boolean literals accepted case-insensitively. "1"/"0" classify as boolean
// only when the source marks the field boolean-typed; otherwise they parse as
// integers further down the chain.
var booleanLiterals = map[string]bool{
	"true": true, "false": true,
	"yes": true, "no": true,
}

// Digit runs that overflow int64 are still integers; no downcast to float.
var integerPattern = regexp.MustCompile(`^[+-]?\d+$`)

// ClassifyPrimitive classifies one raw value. boolHint marks fields the source
// explicitly declares boolean-typed, which extends the literal set with "1"/"0".
func ClassifyPrimitive(value any, boolHint bool) Kind {
	switch v := value.(type) {
	case nil:
		return KindNull
	case bool:
		return KindBoolean
	case int, int32, int64, uint, uint32, uint64:
		return KindInteger
	case float32:
		return classifyFloat(float64(v))
	case float64:
		return classifyFloat(v)
	case json.Number:
		return classifyText(v.String(), boolHint)
	case string:
		return classifyText(v, boolHint)
	case []byte:
		return classifyText(string(v), boolHint)
	default:
		return KindString
	}
}

func classifyFloat(v float64) Kind {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return KindString
	}
	return KindFloat
}

func classifyText(raw string, boolHint bool) Kind {
	value := strings.TrimSpace(raw)
	if value == "" {
		// Empty string is data, not absence; readers that treat empties as
		// missing hand the engine nil instead.
		return KindString
	}

	lower := strings.ToLower(value)
	if booleanLiterals[lower] {
		return KindBoolean
	}
	if boolHint && (value == "1" || value == "0") {
		return KindBoolean
	}

	if _, err := strconv.ParseInt(value, 10, 64); err == nil {
		return KindInteger
	}
	if integerPattern.MatchString(value) {
		return KindInteger
	}

	if f, err := strconv.ParseFloat(value, 64); err == nil {
		if !math.IsNaN(f) && !math.IsInf(f, 0) {
			return KindFloat
		}
	}

	return KindString
}
