// Package schema loads GraphQL SDL into the type graph consumed by the
// concept-versioning engine.
//
// The package is the engine's schema-loading collaborator: everything
// downstream (concept extraction, variant generation, history updates)
// operates on the resolved Schema value and never touches raw SDL text,
// except through TypeDefinition which extracts source blocks for
// per-revision snapshots.
package schema

import "sort"

// TypeKind is the closed set of type shapes a field reference can
// resolve to. Wrapping kinds (List, NonNull) chain through OfType.
type TypeKind string

const (
	KindScalar  TypeKind = "scalar"
	KindEnum    TypeKind = "enum"
	KindObject  TypeKind = "object"
	KindList    TypeKind = "list"
	KindNonNull TypeKind = "nonNull"
)

// TypeRef is a resolved type reference. Kind is determined once at load
// time so downstream code never inspects runtime type tags.
type TypeRef struct {
	Kind TypeKind
	// Name is set for named kinds (scalar, enum, object).
	Name string
	// OfType is set for wrapping kinds (list, nonNull).
	OfType *TypeRef
}

// Named unwraps list and non-null modifiers and returns the underlying
// named type reference.
func (t TypeRef) Named() TypeRef {
	ref := t
	for ref.OfType != nil {
		ref = *ref.OfType
	}
	return ref
}

// IsObject reports whether the reference resolves to an object type,
// directly or through list/non-null modifiers.
func (t TypeRef) IsObject() bool { return t.Named().Kind == KindObject }

// IsEnum reports whether the reference resolves to an enum type.
func (t TypeRef) IsEnum() bool { return t.Named().Kind == KindEnum }

// ArgDef is a field argument definition.
type ArgDef struct {
	Name string
	Type TypeRef
}

// FieldDef is a field on an object type.
type FieldDef struct {
	Name string
	Type TypeRef
	Args []ArgDef
}

// TypeDef is a named type definition. Only object and enum definitions
// are retained; scalars appear solely as TypeRef leaves.
type TypeDef struct {
	Name   string
	Kind   TypeKind // KindObject or KindEnum
	Fields []FieldDef
	Values []string // enum values, declaration order
}

// Schema is the loaded type graph plus the SDL source it came from.
// Source is kept only for per-revision definition snapshots.
type Schema struct {
	Types  map[string]*TypeDef
	Source string

	names []string
}

// TypeNames returns all retained type names in sorted order, giving
// deterministic enumeration across runs.
func (s *Schema) TypeNames() []string {
	if s.names == nil {
		s.names = make([]string, 0, len(s.Types))
		for name := range s.Types {
			s.names = append(s.names, name)
		}
		sort.Strings(s.names)
	}
	return s.names
}

// Lookup returns the definition for a named type.
func (s *Schema) Lookup(name string) (*TypeDef, bool) {
	def, ok := s.Types[name]
	return def, ok
}

// IsEnum reports whether name refers to an enum type in this schema.
func (s *Schema) IsEnum(name string) bool {
	def, ok := s.Types[name]
	return ok && def.Kind == KindEnum
}
