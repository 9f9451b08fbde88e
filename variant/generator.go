package variant

import (
	"fmt"
	"log/slog"

	"github.com/c360studio/schemaver/concept"
	"github.com/c360studio/schemaver/diff"
	"github.com/c360studio/schemaver/schema"
)

// Generator computes one run's variant-ID snapshot from the current
// schema, the previous run's snapshot, and the externally supplied diff
// changes. It is a pure transform: the same inputs always produce the
// same snapshot.
type Generator struct {
	// Schema is the current type graph. Required.
	Schema *schema.Schema

	// Previous is the prior run's snapshot. Nil on the first run.
	Previous *File

	// Changes are the classified diff records for this run. An empty
	// list means a carry-forward/new-concept-only run.
	Changes []diff.Change

	// VersionTag labels this run. Required.
	VersionTag string

	// Logger defaults to slog.Default when nil.
	Logger *slog.Logger
}

// Generate enumerates the schema's concepts and assigns each its new
// variant entry:
//
//   - concepts touched by a change get the version bump their
//     criticality demands and an incremented counter
//   - unchanged concepts carry their previous entry forward
//   - brand-new concepts start at v1.0 with counter 1
//   - concepts that disappeared keep their last entry, tagged with the
//     version in which they were first missed
func (g *Generator) Generate() (*File, error) {
	if g.VersionTag == "" {
		return nil, fmt.Errorf("version tag is required")
	}
	logger := g.Logger
	if logger == nil {
		logger = slog.Default()
	}

	changed := g.foldChanges(logger)
	set := concept.Extract(g.Schema)

	out := &File{
		VersionTag: g.VersionTag,
		Concepts:   make(map[string]Entry),
	}

	for _, name := range set.Names() {
		prev, existed := g.previousEntry(name)

		breaking, isChanged := changed[name]
		switch {
		case isChanged && existed:
			major, minor, err := prev.Variant()
			if err != nil {
				return nil, err
			}
			if breaking {
				major, minor = major+1, 0
			} else {
				minor++
			}
			out.Concepts[name] = Entry{
				ID:             FormatID(name, major, minor),
				VariantCounter: prev.VariantCounter + 1,
			}
			logger.Debug("concept changed",
				"concept", name,
				"breaking", breaking,
				"id", out.Concepts[name].ID)

		case existed:
			// Unchanged and still present. A concept that reappears
			// after a removal sheds its removal tag.
			entry := prev
			entry.RemovedInVersion = ""
			out.Concepts[name] = entry

		default:
			out.Concepts[name] = Entry{
				ID:             FormatID(name, 1, 0),
				VariantCounter: 1,
			}
			logger.Debug("new concept", "concept", name)
		}
	}

	if g.Previous != nil {
		for name, prev := range g.Previous.Concepts {
			if _, present := out.Concepts[name]; present {
				continue
			}
			entry := prev
			if entry.RemovedInVersion == "" {
				entry.RemovedInVersion = g.VersionTag
				logger.Info("concept removed", "concept", name, "version_tag", g.VersionTag)
			}
			out.Concepts[name] = entry
		}
	}

	return out, nil
}

// foldChanges folds the diff records into a concept-to-breaking
// mapping. The fold ORs breaking flags, so it is commutative and
// idempotent: record order and duplicates cannot change the outcome.
//
// A field-level change also marks the enclosing type, because the
// type's structure changed with it. An enum-level change marks every
// field referencing that enum, single-hop only: those fields' enclosing
// types are not additionally marked.
func (g *Generator) foldChanges(logger *slog.Logger) map[string]bool {
	changed := make(map[string]bool)
	mark := func(name string, breaking bool) {
		changed[name] = changed[name] || breaking
	}

	for _, change := range g.Changes {
		if change.ConceptName == "" {
			logger.Warn("diff change names no concept, skipping",
				"type", change.Type,
				"path", change.Path)
			continue
		}

		breaking := change.Criticality.IsBreaking()
		mark(change.ConceptName, breaking)

		if concept.IsFieldPath(change.ConceptName) {
			mark(concept.ParentType(change.ConceptName), breaking)
		}

		if g.Schema.IsEnum(change.ConceptName) {
			for _, path := range concept.FieldsUsingEnum(g.Schema, change.ConceptName) {
				mark(path, breaking)
			}
		}
	}

	return changed
}

func (g *Generator) previousEntry(name string) (Entry, bool) {
	if g.Previous == nil {
		return Entry{}, false
	}
	entry, ok := g.Previous.Concepts[name]
	return entry, ok
}
