package concept

import (
	"sort"
	"strings"

	vocab "github.com/c360studio/schemaver/vocabulary/concept"
)

// URINode is one node in the JSON-LD concept graph.
type URINode struct {
	ID   string     `json:"@id"`
	Type vocab.Kind `json:"@type"`

	// HasField lists the leaf-field concept URIs of an Object node.
	HasField []string `json:"hasField,omitempty"`

	// HasNestedObject points an ObjectField node at the object type it
	// references.
	HasNestedObject string `json:"hasNestedObject,omitempty"`
}

// ConceptName strips the namespace prefix from the node's URI.
func (n URINode) ConceptName() string {
	if i := strings.LastIndex(n.ID, ":"); i >= 0 {
		return n.ID[i+1:]
	}
	return n.ID
}

// ShouldHaveHistory reports whether this node's concept is individually
// ledgered in the spec history.
func (n URINode) ShouldHaveHistory() bool {
	return n.Type.ShouldHaveHistory()
}

// Model is the JSON-LD concept URI graph for one schema snapshot.
type Model struct {
	Context map[string]any `json:"@context"`
	Graph   []URINode      `json:"@graph"`
}

// Node returns the node with the given URI.
func (m *Model) Node(id string) (URINode, bool) {
	for _, node := range m.Graph {
		if node.ID == id {
			return node, true
		}
	}
	return URINode{}, false
}

// NodeMap returns a URI-to-node lookup over the whole graph.
func (m *Model) NodeMap() map[string]URINode {
	nodes := make(map[string]URINode, len(m.Graph))
	for _, node := range m.Graph {
		nodes[node.ID] = node
	}
	return nodes
}

// NewContext builds the JSON-LD @context for concept models. The edge
// terms are @id-typed so consumers resolve them as graph references;
// specHistory is declared as an ordered list when requested.
func NewContext(namespace, prefix string, includeHistory bool) map[string]any {
	ctx := map[string]any{
		prefix: namespace,
		"type": "@type",
		vocab.TermHasField: map[string]any{
			"@id":   namespace + vocab.TermHasField,
			"@type": "@id",
		},
		vocab.TermHasNestedObject: map[string]any{
			"@id":   namespace + vocab.TermHasNestedObject,
			"@type": "@id",
		},
		string(vocab.KindObject):      namespace + string(vocab.KindObject),
		string(vocab.KindEnum):        namespace + string(vocab.KindEnum),
		string(vocab.KindField):       namespace + string(vocab.KindField),
		string(vocab.KindObjectField): namespace + string(vocab.KindObjectField),
	}
	if includeHistory {
		ctx[vocab.TermSpecHistory] = map[string]any{
			"@id":        namespace + vocab.TermSpecHistory,
			"@container": "@list",
		}
	}
	return ctx
}

// BuildModel creates the concept URI model for an extracted concept
// set. Node order is deterministic: objects, fields, enums, then
// object-valued fields, each group sorted by name.
func BuildModel(set *Set, namespace, prefix string) *Model {
	uri := func(name string) string { return prefix + ":" + name }

	model := &Model{Context: NewContext(namespace, prefix, false)}

	objects := make([]string, 0, len(set.Objects))
	for name := range set.Objects {
		objects = append(objects, name)
	}
	sort.Strings(objects)
	for _, name := range objects {
		node := URINode{ID: uri(name), Type: vocab.KindObject}
		for _, field := range set.Objects[name] {
			node.HasField = append(node.HasField, uri(field))
		}
		model.Graph = append(model.Graph, node)
	}

	fields := append([]string(nil), set.Fields...)
	sort.Strings(fields)
	for _, field := range fields {
		model.Graph = append(model.Graph, URINode{ID: uri(field), Type: vocab.KindField})
	}

	enums := append([]string(nil), set.Enums...)
	sort.Strings(enums)
	for _, enum := range enums {
		model.Graph = append(model.Graph, URINode{ID: uri(enum), Type: vocab.KindEnum})
	}

	nested := make([]string, 0, len(set.NestedObjects))
	for field := range set.NestedObjects {
		nested = append(nested, field)
	}
	sort.Strings(nested)
	for _, field := range nested {
		model.Graph = append(model.Graph, URINode{
			ID:              uri(field),
			Type:            vocab.KindObjectField,
			HasNestedObject: uri(set.NestedObjects[field]),
		})
	}

	return model
}
