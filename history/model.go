// Package history maintains the append-only spec-history ledger: the
// variant-identifier lineage of every Field and Enum concept across
// release tags, persisted as JSON-LD, plus per-revision snapshots of
// each concept's enclosing type definition.
package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/c360studio/schemaver/concept"
)

// ErrInputFormat indicates a spec-history file that is not valid JSON
// or fails structural validation.
var ErrInputFormat = errors.New("invalid spec-history file")

// Entry is one recorded variant identity of a concept.
type Entry struct {
	// ID is the variant identifier the concept held.
	ID string `json:"@id"`

	// VersionTag is the run tag under which the identifier was
	// recorded.
	VersionTag string `json:"version_tag"`
}

// Node is a concept graph node extended with its identifier lineage.
// SpecHistory is populated only for Field and Enum nodes; entries are
// only ever appended.
type Node struct {
	concept.URINode

	SpecHistory []Entry `json:"specHistory,omitempty"`
}

// InitializeHistory seeds the node's history with its first identity.
// No-op for node kinds that are not ledgered.
func (n *Node) InitializeHistory(id, versionTag string) {
	if !n.ShouldHaveHistory() {
		return
	}
	n.SpecHistory = []Entry{{ID: id, VersionTag: versionTag}}
}

// AddEntry appends a new identity if it differs from the most recently
// stored one. Returns true when an entry was appended, so re-running
// with unchanged identifiers is a no-op.
func (n *Node) AddEntry(id, versionTag string) bool {
	if !n.ShouldHaveHistory() {
		return false
	}
	if len(n.SpecHistory) > 0 && n.SpecHistory[len(n.SpecHistory)-1].ID == id {
		return false
	}
	n.SpecHistory = append(n.SpecHistory, Entry{ID: id, VersionTag: versionTag})
	return true
}

// Model is the full persisted spec-history ledger.
type Model struct {
	Context map[string]any `json:"@context"`
	Graph   []*Node        `json:"@graph"`
}

// NodeMap returns a URI-to-node lookup over the ledger graph.
func (m *Model) NodeMap() map[string]*Node {
	nodes := make(map[string]*Node, len(m.Graph))
	for _, node := range m.Graph {
		nodes[node.ID] = node
	}
	return nodes
}

// Load reads a persisted ledger. A payload that is not valid JSON-LD of
// the expected shape is fatal.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spec-history file: %w", err)
	}
	var m Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInputFormat, path, err)
	}
	if m.Graph == nil {
		return nil, fmt.Errorf("%w: %s: missing @graph", ErrInputFormat, path)
	}
	return &m, nil
}

// Save writes the full ledger as indented JSON-LD, creating parent
// directories as needed.
func (m *Model) Save(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal spec history: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write spec history: %w", err)
	}
	return nil
}
