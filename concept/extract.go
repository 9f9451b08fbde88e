// Package concept enumerates the versionable concepts of a type graph
// and builds the JSON-LD concept URI model over them.
//
// A concept is an object type, an enum type, or a leaf field
// ("Type.field"). Object-valued fields are recorded as structural
// relations for the URI model but are not independently versioned.
package concept

import (
	"sort"
	"strings"

	"github.com/c360studio/schemaver/schema"
)

// FieldSeparator joins a type name and a field name into a leaf-field
// concept name.
const FieldSeparator = "."

// identifierScalar is the schema's identifier scalar; fields of this
// type are cross-references, not concepts.
const identifierScalar = "ID"

// rootOperationTypes are the schema entry points, which are not
// versionable concepts themselves.
var rootOperationTypes = map[string]bool{
	"Query":        true,
	"Mutation":     true,
	"Subscription": true,
}

// Set holds every concept extracted from a schema, grouped by kind.
type Set struct {
	// Fields lists leaf-field concepts ("Type.field").
	Fields []string
	// Enums lists enum type names.
	Enums []string
	// Objects maps each object type name to its leaf-field concepts.
	Objects map[string][]string
	// NestedObjects maps object-valued field paths to the referenced
	// type name.
	NestedObjects map[string]string
}

// Names returns every individually versioned concept name: object
// types, enum types, and leaf fields. The result is sorted.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.Objects)+len(s.Enums)+len(s.Fields))
	for object := range s.Objects {
		names = append(names, object)
	}
	names = append(names, s.Enums...)
	names = append(names, s.Fields...)
	sort.Strings(names)
	return names
}

// Extract walks the schema's named types and enumerates its concepts.
// Root operation types are skipped; introspection types never reach the
// loaded schema.
func Extract(s *schema.Schema) *Set {
	set := &Set{
		Objects:       make(map[string][]string),
		NestedObjects: make(map[string]string),
	}

	for _, name := range s.TypeNames() {
		if rootOperationTypes[name] {
			continue
		}
		def, _ := s.Lookup(name)

		switch def.Kind {
		case schema.KindEnum:
			set.Enums = append(set.Enums, def.Name)
		case schema.KindObject:
			set.Objects[def.Name] = nil
			for _, field := range def.Fields {
				named := field.Type.Named()
				if named.Name == identifierScalar {
					continue
				}
				path := def.Name + FieldSeparator + field.Name
				if named.Kind == schema.KindObject {
					set.NestedObjects[path] = named.Name
					continue
				}
				set.Objects[def.Name] = append(set.Objects[def.Name], path)
				set.Fields = append(set.Fields, path)
			}
		}
	}

	return set
}

// FieldsUsingEnum returns the leaf-field paths whose return type, or
// any argument type, resolves to the named enum. Used for change
// propagation: a change to an enum marks every referencing field as
// changed.
func FieldsUsingEnum(s *schema.Schema, enumName string) []string {
	var paths []string
	for _, name := range s.TypeNames() {
		if rootOperationTypes[name] {
			continue
		}
		def, _ := s.Lookup(name)
		if def.Kind != schema.KindObject {
			continue
		}
		for _, field := range def.Fields {
			if referencesEnum(field, enumName) {
				paths = append(paths, def.Name+FieldSeparator+field.Name)
			}
		}
	}
	return paths
}

func referencesEnum(field schema.FieldDef, enumName string) bool {
	if named := field.Type.Named(); named.Kind == schema.KindEnum && named.Name == enumName {
		return true
	}
	for _, arg := range field.Args {
		if named := arg.Type.Named(); named.Kind == schema.KindEnum && named.Name == enumName {
			return true
		}
	}
	return false
}

// ParentType returns the enclosing type name of a field-path concept,
// or the name itself when it is not a field path.
func ParentType(name string) string {
	if i := strings.Index(name, FieldSeparator); i >= 0 {
		return name[:i]
	}
	return name
}

// IsFieldPath reports whether the concept name is a leaf-field path.
func IsFieldPath(name string) bool {
	return strings.Contains(name, FieldSeparator)
}
