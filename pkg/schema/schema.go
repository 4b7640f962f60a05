/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: schema.go
Description: Schema document model for the Lyra Schema engine. Defines the
draft-07-compatible output document with order-preserving properties so repeated
generations over the same sample marshal to byte-identical JSON.
*/

package schema

import (
	"encoding/json"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// DraftURI identifies the schema dialect of generated documents.
const DraftURI = "http://json-schema.org/draft-07/schema#"

// Properties maps field names to their schemas in first-observed order.
type Properties = orderedmap.OrderedMap[string, *Property]

// NewProperties creates an empty ordered property map.
func NewProperties() *Properties {
	return orderedmap.New[string, *Property]()
}

// Property is the schema of one field. Type is a string for plain fields and
// a [kind, "null"] pair for nullable ones.
type Property struct {
	Type         any         `json:"type,omitempty"`
	BusinessType string      `json:"business_type,omitempty"`
	Description  string      `json:"description,omitempty"`
	Properties   *Properties `json:"properties,omitempty"`
	Required     []string    `json:"required,omitempty"`
	Items        *Property   `json:"items,omitempty"`
}

// Metadata describes the sample the schema was inferred from.
type Metadata struct {
	NumRows    int    `json:"num_rows"`
	NumColumns int    `json:"num_columns"`
	SourceKind string `json:"source_kind"`
}

// Document is the rendered schema for one source.
type Document struct {
	Schema     string      `json:"$schema"`
	Type       string      `json:"type"`
	Properties *Properties `json:"properties"`
	Required   []string    `json:"required"`
	Metadata   Metadata    `json:"metadata"`
}

// NewDocument creates an empty object-typed document.
func NewDocument() *Document {
	return &Document{
		Schema:     DraftURI,
		Type:       "object",
		Properties: NewProperties(),
		Required:   []string{},
	}
}

// MarshalIndent renders the document as pretty-printed JSON.
func (d *Document) MarshalIndent() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// NullableType renders a type name as the [kind, "null"] union form.
func NullableType(kind string) []string {
	return []string{kind, "null"}
}
