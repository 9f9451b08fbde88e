package variant

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/schemaver/diff"
	"github.com/c360studio/schemaver/schema"
)

const simpleWindowSchema = `
type Query { window: Window }

type Window {
    id: ID
    position: Int
}
`

const windowWithDescriptionSchema = `
type Query { window: Window }

type Window {
    id: ID
    position: Int
    description: String
}
`

const sharedEnumSchema = `
type Query { window: Window }

type Window {
    id: ID
    position: Int
    state: WindowState
}

type Door {
    id: ID
    state: WindowState
}

enum WindowState {
    OPEN
    CLOSED
}
`

func loadSchema(t *testing.T, sdl string) *schema.Schema {
	t.Helper()
	s, err := schema.LoadString(sdl)
	require.NoError(t, err)
	return s
}

func baselineFile(t *testing.T, sdl, versionTag string) *File {
	t.Helper()
	gen := &Generator{
		Schema:     loadSchema(t, sdl),
		VersionTag: versionTag,
	}
	f, err := gen.Generate()
	require.NoError(t, err)
	return f
}

func TestGenerateFirstRun(t *testing.T) {
	f := baselineFile(t, simpleWindowSchema, "v1.0.0")

	assert.Equal(t, "v1.0.0", f.VersionTag)
	require.Contains(t, f.Concepts, "Window")
	require.Contains(t, f.Concepts, "Window.position")

	assert.Equal(t, "Window/v1.0", f.Concepts["Window"].ID)
	assert.Equal(t, 1, f.Concepts["Window"].VariantCounter)
	assert.Equal(t, "Window.position/v1.0", f.Concepts["Window.position"].ID)
	assert.Equal(t, 1, f.Concepts["Window.position"].VariantCounter)

	// The identifier field is not a concept.
	assert.NotContains(t, f.Concepts, "Window.id")
}

func TestGenerateBreakingFieldChange(t *testing.T) {
	previous := baselineFile(t, simpleWindowSchema, "v1.0.0")

	gen := &Generator{
		Schema:   loadSchema(t, simpleWindowSchema),
		Previous: previous,
		Changes: []diff.Change{{
			Type:        "FIELD_TYPE_CHANGED",
			Action:      diff.ActionUpdate,
			Criticality: diff.CriticalityBreaking,
			Path:        "Window.position",
			ConceptName: "Window.position",
		}},
		VersionTag: "v2.0.0",
	}
	f, err := gen.Generate()
	require.NoError(t, err)

	// The field takes a major bump, and its enclosing type with it.
	assert.Equal(t, "Window.position/v2.0", f.Concepts["Window.position"].ID)
	assert.Equal(t, 2, f.Concepts["Window.position"].VariantCounter)
	assert.Equal(t, "Window/v2.0", f.Concepts["Window"].ID)
	assert.Equal(t, 2, f.Concepts["Window"].VariantCounter)
}

func TestGenerateNonBreakingFieldAddition(t *testing.T) {
	previous := baselineFile(t, simpleWindowSchema, "v1.0.0")

	gen := &Generator{
		Schema:   loadSchema(t, windowWithDescriptionSchema),
		Previous: previous,
		Changes: []diff.Change{{
			Type:        "FIELD_ADDED",
			Action:      diff.ActionInsert,
			Criticality: diff.CriticalityNonBreaking,
			ConceptName: "Window.description",
		}},
		VersionTag: "v1.1.0",
	}
	f, err := gen.Generate()
	require.NoError(t, err)

	// The enclosing type takes a minor bump; the new field starts at
	// its baseline even though a change record names it.
	assert.Equal(t, "Window/v1.1", f.Concepts["Window"].ID)
	assert.Equal(t, 2, f.Concepts["Window"].VariantCounter)
	assert.Equal(t, "Window.description/v1.0", f.Concepts["Window.description"].ID)
	assert.Equal(t, 1, f.Concepts["Window.description"].VariantCounter)

	// Untouched siblings carry forward unchanged.
	assert.Equal(t, "Window.position/v1.0", f.Concepts["Window.position"].ID)
	assert.Equal(t, 1, f.Concepts["Window.position"].VariantCounter)
}

func TestGenerateEnumPropagation(t *testing.T) {
	previous := baselineFile(t, sharedEnumSchema, "v1.0.0")

	gen := &Generator{
		Schema:   loadSchema(t, sharedEnumSchema),
		Previous: previous,
		Changes: []diff.Change{{
			Type:        "ENUM_VALUE_ADDED",
			Action:      diff.ActionInsert,
			Criticality: diff.CriticalityNonBreaking,
			ConceptName: "WindowState",
		}},
		VersionTag: "v1.1.0",
	}
	f, err := gen.Generate()
	require.NoError(t, err)

	// The enum and every field referencing it bump.
	assert.Equal(t, "WindowState/v1.1", f.Concepts["WindowState"].ID)
	assert.Equal(t, "Window.state/v1.1", f.Concepts["Window.state"].ID)
	assert.Equal(t, "Door.state/v1.1", f.Concepts["Door.state"].ID)

	// Propagation stops at the fields: their enclosing types do not
	// cascade.
	assert.Equal(t, "Window/v1.0", f.Concepts["Window"].ID)
	assert.Equal(t, 1, f.Concepts["Window"].VariantCounter)
	assert.Equal(t, "Door/v1.0", f.Concepts["Door"].ID)
}

func TestGenerateDuplicateRecordsFoldOnce(t *testing.T) {
	previous := baselineFile(t, simpleWindowSchema, "v1.0.0")

	change := diff.Change{
		Type:        "FIELD_TYPE_CHANGED",
		Action:      diff.ActionUpdate,
		Criticality: diff.CriticalityBreaking,
		ConceptName: "Window.position",
	}
	gen := &Generator{
		Schema:     loadSchema(t, simpleWindowSchema),
		Previous:   previous,
		Changes:    []diff.Change{change, change},
		VersionTag: "v2.0.0",
	}
	f, err := gen.Generate()
	require.NoError(t, err)

	// Two records for one concept still mean one change.
	assert.Equal(t, "Window.position/v2.0", f.Concepts["Window.position"].ID)
	assert.Equal(t, 2, f.Concepts["Window.position"].VariantCounter)
}

func TestGenerateBreakingWinsOverNonBreaking(t *testing.T) {
	previous := baselineFile(t, simpleWindowSchema, "v1.0.0")

	gen := &Generator{
		Schema:   loadSchema(t, simpleWindowSchema),
		Previous: previous,
		Changes: []diff.Change{
			{
				Type:        "FIELD_DESCRIPTION_CHANGED",
				Action:      diff.ActionUpdate,
				Criticality: diff.CriticalityNonBreaking,
				ConceptName: "Window.position",
			},
			{
				Type:        "FIELD_TYPE_CHANGED",
				Action:      diff.ActionUpdate,
				Criticality: diff.CriticalityDangerous,
				ConceptName: "Window.position",
			},
		},
		VersionTag: "v2.0.0",
	}
	f, err := gen.Generate()
	require.NoError(t, err)

	// A breaking record outranks a non-breaking one for the same
	// concept, and the counter still moves once.
	assert.Equal(t, "Window.position/v2.0", f.Concepts["Window.position"].ID)
	assert.Equal(t, 2, f.Concepts["Window.position"].VariantCounter)
	assert.Equal(t, "Window/v2.0", f.Concepts["Window"].ID)
}

func TestGenerateEmptyDiffIsStable(t *testing.T) {
	previous := baselineFile(t, simpleWindowSchema, "v1.0.0")

	gen := &Generator{
		Schema:     loadSchema(t, simpleWindowSchema),
		Previous:   previous,
		VersionTag: "v1.0.0",
	}
	f, err := gen.Generate()
	require.NoError(t, err)

	a, err := json.Marshal(previous)
	require.NoError(t, err)
	b, err := json.Marshal(f)
	require.NoError(t, err)
	assert.JSONEq(t, string(a), string(b))
}

func TestGenerateRemovalTracking(t *testing.T) {
	previous := baselineFile(t, windowWithDescriptionSchema, "v1.0.0")

	gen := &Generator{
		Schema:     loadSchema(t, simpleWindowSchema),
		Previous:   previous,
		VersionTag: "v1.1.0",
	}
	f, err := gen.Generate()
	require.NoError(t, err)

	// The vanished field keeps its last identity, tagged with the run
	// that first missed it.
	require.Contains(t, f.Concepts, "Window.description")
	assert.Equal(t, "Window.description/v1.0", f.Concepts["Window.description"].ID)
	assert.Equal(t, 1, f.Concepts["Window.description"].VariantCounter)
	assert.Equal(t, "v1.1.0", f.Concepts["Window.description"].RemovedInVersion)

	// A later run must not overwrite the original removal tag.
	gen = &Generator{
		Schema:     loadSchema(t, simpleWindowSchema),
		Previous:   f,
		VersionTag: "v1.2.0",
	}
	f2, err := gen.Generate()
	require.NoError(t, err)
	assert.Equal(t, "v1.1.0", f2.Concepts["Window.description"].RemovedInVersion)
}

func TestGenerateReappearanceShedsRemovalTag(t *testing.T) {
	previous := &File{
		VersionTag: "v1.1.0",
		Concepts: map[string]Entry{
			"Window":             {ID: "Window/v1.1", VariantCounter: 2},
			"Window.position":    {ID: "Window.position/v1.0", VariantCounter: 1},
			"Window.description": {ID: "Window.description/v1.0", VariantCounter: 1, RemovedInVersion: "v1.1.0"},
		},
	}

	gen := &Generator{
		Schema:     loadSchema(t, windowWithDescriptionSchema),
		Previous:   previous,
		VersionTag: "v1.2.0",
	}
	f, err := gen.Generate()
	require.NoError(t, err)

	entry := f.Concepts["Window.description"]
	assert.Empty(t, entry.RemovedInVersion)
	assert.Equal(t, "Window.description/v1.0", entry.ID)
	assert.Equal(t, 1, entry.VariantCounter)
}

func TestGenerateCounterChainAcrossRuns(t *testing.T) {
	f := baselineFile(t, simpleWindowSchema, "v1.0.0")

	change := func(criticality diff.Criticality) []diff.Change {
		return []diff.Change{{
			Type:        "FIELD_TYPE_CHANGED",
			Action:      diff.ActionUpdate,
			Criticality: criticality,
			ConceptName: "Window.position",
		}}
	}

	gen := &Generator{
		Schema:     loadSchema(t, simpleWindowSchema),
		Previous:   f,
		Changes:    change(diff.CriticalityBreaking),
		VersionTag: "v2.0.0",
	}
	f, err := gen.Generate()
	require.NoError(t, err)
	assert.Equal(t, "Window.position/v2.0", f.Concepts["Window.position"].ID)
	assert.Equal(t, 2, f.Concepts["Window.position"].VariantCounter)

	gen = &Generator{
		Schema:     loadSchema(t, simpleWindowSchema),
		Previous:   f,
		Changes:    change(diff.CriticalityNonBreaking),
		VersionTag: "v2.1.0",
	}
	f, err = gen.Generate()
	require.NoError(t, err)
	assert.Equal(t, "Window.position/v2.1", f.Concepts["Window.position"].ID)
	assert.Equal(t, 3, f.Concepts["Window.position"].VariantCounter)
}

func TestGenerateMalformedPreviousIdentifier(t *testing.T) {
	previous := &File{
		VersionTag: "v1.0.0",
		Concepts: map[string]Entry{
			"Window.position": {ID: "Window.position@1.0", VariantCounter: 1},
		},
	}

	gen := &Generator{
		Schema:   loadSchema(t, simpleWindowSchema),
		Previous: previous,
		Changes: []diff.Change{{
			Type:        "FIELD_TYPE_CHANGED",
			Action:      diff.ActionUpdate,
			Criticality: diff.CriticalityBreaking,
			ConceptName: "Window.position",
		}},
		VersionTag: "v2.0.0",
	}
	_, err := gen.Generate()
	assert.True(t, errors.Is(err, ErrIdentifierFormat))
}

func TestGenerateRequiresVersionTag(t *testing.T) {
	gen := &Generator{Schema: loadSchema(t, simpleWindowSchema)}
	_, err := gen.Generate()
	assert.Error(t, err)
}

func TestGenerateSkipsRecordsWithoutConcept(t *testing.T) {
	previous := baselineFile(t, simpleWindowSchema, "v1.0.0")

	gen := &Generator{
		Schema:   loadSchema(t, simpleWindowSchema),
		Previous: previous,
		Changes: []diff.Change{{
			Type:        "DIRECTIVE_CHANGED",
			Action:      diff.ActionUpdate,
			Criticality: diff.CriticalityBreaking,
			Path:        "@deprecated",
		}},
		VersionTag: "v1.1.0",
	}
	f, err := gen.Generate()
	require.NoError(t, err)

	// Nothing versionable was named, so nothing moves.
	assert.Equal(t, "Window/v1.0", f.Concepts["Window"].ID)
	assert.Equal(t, 1, f.Concepts["Window"].VariantCounter)
}
