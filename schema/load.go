package schema

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
)

// LoadPaths loads and merges schema sources from a list of files,
// directories, or glob patterns (doublestar ** supported). Directories
// contribute every .graphql file they contain, recursively.
func LoadPaths(patterns []string) (*Schema, error) {
	files, err := resolveSchemaFiles(patterns)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no schema files matched %v", patterns)
	}

	sources := make([]*ast.Source, 0, len(files))
	var combined strings.Builder
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read schema file: %w", err)
		}
		sources = append(sources, &ast.Source{Name: file, Input: string(data)})
		combined.WriteString(string(data))
		combined.WriteString("\n")
	}

	return load(combined.String(), sources...)
}

// LoadString loads a schema from in-memory SDL.
func LoadString(sdl string) (*Schema, error) {
	return load(sdl, &ast.Source{Name: "schema.graphql", Input: sdl})
}

func load(source string, sources ...*ast.Source) (*Schema, error) {
	parsed, err := gqlparser.LoadSchema(sources...)
	if err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}

	s := &Schema{
		Types:  make(map[string]*TypeDef),
		Source: source,
	}

	for name, def := range parsed.Types {
		// Introspection machinery carries the reserved double prefix.
		if strings.HasPrefix(name, "__") {
			continue
		}
		switch def.Kind {
		case ast.Object:
			s.Types[name] = convertObject(parsed, def)
		case ast.Enum:
			s.Types[name] = convertEnum(def)
		}
	}

	return s, nil
}

func convertObject(parsed *ast.Schema, def *ast.Definition) *TypeDef {
	td := &TypeDef{Name: def.Name, Kind: KindObject}
	for _, field := range def.Fields {
		if strings.HasPrefix(field.Name, "__") {
			continue
		}
		fd := FieldDef{Name: field.Name, Type: resolveType(parsed, field.Type)}
		for _, arg := range field.Arguments {
			fd.Args = append(fd.Args, ArgDef{Name: arg.Name, Type: resolveType(parsed, arg.Type)})
		}
		td.Fields = append(td.Fields, fd)
	}
	return td
}

func convertEnum(def *ast.Definition) *TypeDef {
	td := &TypeDef{Name: def.Name, Kind: KindEnum}
	for _, value := range def.EnumValues {
		td.Values = append(td.Values, value.Name)
	}
	return td
}

// resolveType converts a gqlparser type reference into the closed
// TypeRef form, classifying the named leaf once against the schema's
// definitions.
func resolveType(parsed *ast.Schema, t *ast.Type) TypeRef {
	if t.NonNull {
		inner := *t
		inner.NonNull = false
		ref := resolveType(parsed, &inner)
		return TypeRef{Kind: KindNonNull, OfType: &ref}
	}
	if t.Elem != nil {
		ref := resolveType(parsed, t.Elem)
		return TypeRef{Kind: KindList, OfType: &ref}
	}

	kind := KindScalar
	if def, ok := parsed.Types[t.NamedType]; ok {
		switch def.Kind {
		case ast.Enum:
			kind = KindEnum
		case ast.Object:
			kind = KindObject
		}
	}
	return TypeRef{Kind: kind, Name: t.NamedType}
}

func resolveSchemaFiles(patterns []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)

	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, pattern := range patterns {
		info, err := os.Stat(pattern)
		if err == nil {
			if info.IsDir() {
				matches, err := doublestar.FilepathGlob(filepath.Join(pattern, "**", "*.graphql"))
				if err != nil {
					return nil, fmt.Errorf("scan schema directory %q: %w", pattern, err)
				}
				for _, m := range matches {
					add(m)
				}
				continue
			}
			add(pattern)
			continue
		}

		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("resolve schema pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			add(m)
		}
	}

	sort.Strings(files)
	return files, nil
}
