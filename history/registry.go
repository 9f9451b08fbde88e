package history

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/c360studio/schemaver/concept"
	"github.com/c360studio/schemaver/schema"
	"github.com/c360studio/schemaver/variant"
)

// Registry initializes and incrementally updates the spec-history
// ledger and writes the per-revision definition snapshots.
type Registry struct {
	// Namespace and Prefix mirror the concept URI model's JSON-LD
	// context.
	Namespace string
	Prefix    string

	// HistoryDir receives the per-revision .graphql snapshot files.
	HistoryDir string

	// Logger defaults to slog.Default when nil.
	Logger *slog.Logger
}

func (r *Registry) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

// Init seeds a new ledger from the concept graph: every Field and Enum
// node gets its current variant identifier as the first history entry.
// A node whose concept has no variant entry is recorded without history
// and logged; the run continues.
func (r *Registry) Init(uris *concept.Model, variants *variant.File, versionTag string) *Model {
	model := &Model{
		Context: concept.NewContext(r.Namespace, r.Prefix, true),
	}

	for _, uriNode := range uris.Graph {
		node := &Node{URINode: uriNode}
		if node.ShouldHaveHistory() {
			name := node.ConceptName()
			if entry, ok := variants.Concepts[name]; ok {
				node.InitializeHistory(entry.ID, versionTag)
			} else {
				r.logger().Warn("no variant entry for concept, seeding without history",
					"concept", name)
			}
		}
		model.Graph = append(model.Graph, node)
	}

	return model
}

// Update folds a fresh concept graph and variant snapshot into an
// existing ledger. Nodes new to the graph are created (and seeded when
// ledgered); existing ledgered nodes get an entry appended only when
// their identifier changed. Nodes that vanished from the graph are left
// untouched; removal is tracked in the variant-ID file, not here.
//
// Returns the concept names that were newly created and those whose
// history was extended.
func (r *Registry) Update(model *Model, uris *concept.Model, variants *variant.File, versionTag string) (newConcepts, updated []string) {
	existing := model.NodeMap()

	for _, uriNode := range uris.Graph {
		name := uriNode.ConceptName()

		node, present := existing[uriNode.ID]
		if !present {
			node = &Node{URINode: uriNode}
			if node.ShouldHaveHistory() {
				if entry, ok := variants.Concepts[name]; ok {
					node.InitializeHistory(entry.ID, versionTag)
					newConcepts = append(newConcepts, name)
				} else {
					r.logger().Warn("no variant entry for new concept, skipping history",
						"concept", name)
				}
			}
			model.Graph = append(model.Graph, node)
			continue
		}

		if !node.ShouldHaveHistory() {
			continue
		}
		entry, ok := variants.Concepts[name]
		if !ok {
			r.logger().Warn("no variant entry for concept during update, skipping",
				"concept", name)
			continue
		}
		if node.AddEntry(entry.ID, versionTag) {
			updated = append(updated, name)
		}
	}

	return newConcepts, updated
}

// SnapshotFilename converts a variant identifier into its snapshot file
// name, replacing the path separator for filesystem safety.
func SnapshotFilename(id string) string {
	return strings.ReplaceAll(id, "/", "_") + ".graphql"
}

// WriteSnapshots persists the enclosing type definition of each named
// concept to the history directory, addressed by the concept's current
// variant identifier. Concepts without a variant entry or without an
// extractable definition are skipped with a log line.
func (r *Registry) WriteSnapshots(s *schema.Schema, names []string, variants *variant.File) error {
	if len(names) == 0 {
		return nil
	}
	if err := os.MkdirAll(r.HistoryDir, 0755); err != nil {
		return fmt.Errorf("create history directory: %w", err)
	}

	for _, name := range names {
		entry, ok := variants.Concepts[name]
		if !ok {
			r.logger().Warn("no variant entry for concept, skipping snapshot", "concept", name)
			continue
		}

		parent := concept.ParentType(name)
		definition, ok := s.TypeDefinition(parent)
		if !ok {
			r.logger().Debug("no extractable definition", "type", parent, "concept", name)
			continue
		}

		path := filepath.Join(r.HistoryDir, SnapshotFilename(entry.ID))
		if err := os.WriteFile(path, []byte(definition), 0644); err != nil {
			return fmt.Errorf("write snapshot for %s: %w", name, err)
		}
		r.logger().Debug("wrote definition snapshot", "concept", name, "path", path)
	}

	return nil
}
