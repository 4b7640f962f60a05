/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: assemble.go
Description: Schema assembler for the Lyra Schema engine. Depth-first renders the
resolved type tree into a draft-07 document, emitting properties in first-observed
order, computing required lists per object level, and attaching sample metadata.
*/

package inference

import (
	"strings"

	"github.com/kleascm/lyra-schema/pkg/schema"
)

// Assemble renders the resolved root type into a schema document. meta carries
// the consumed sample size and source kind; the column count is filled in here.
func Assemble(root *ResolvedType, meta schema.Metadata) *schema.Document {
	doc := schema.NewDocument()

	if root != nil {
		for _, name := range root.ChildOrder {
			child := root.Children[name]
			doc.Properties.Set(name, assembleProperty(FieldPath{name}, child))
			if !child.Nullable {
				doc.Required = append(doc.Required, name)
			}
		}
	}

	meta.NumColumns = doc.Properties.Len()
	doc.Metadata = meta
	return doc
}

func assembleProperty(path FieldPath, rt *ResolvedType) *schema.Property {
	prop := &schema.Property{
		Type:        propertyType(rt),
		Description: describe(path),
	}
	if rt.BusinessType != "" {
		prop.BusinessType = rt.BusinessType
	}

	switch rt.Kind {
	case KindObject:
		prop.Properties = schema.NewProperties()
		for _, name := range rt.ChildOrder {
			child := rt.Children[name]
			prop.Properties.Set(name, assembleProperty(path.Child(name), child))
			if !child.Nullable {
				prop.Required = append(prop.Required, name)
			}
		}
	case KindArray:
		if rt.Items != nil {
			prop.Items = assembleProperty(path.Items(), rt.Items)
		} else {
			// Every observed array was empty: item type unconstrained.
			prop.Items = &schema.Property{}
		}
	}

	return prop
}

func propertyType(rt *ResolvedType) any {
	if rt.Nullable {
		return schema.NullableType(string(rt.Kind))
	}
	return string(rt.Kind)
}

// describe labels top-level fields as columns and nested ones by their dotted
// path, matching how generated schemas are read by humans diffing them.
func describe(path FieldPath) string {
	if len(path) == 1 {
		return "Column: " + path[0]
	}
	return "Field: " + strings.Join(path, ".")
}
