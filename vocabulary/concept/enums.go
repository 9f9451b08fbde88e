package concept

// Kind classifies a node in the concept URI graph.
type Kind string

const (
	// KindObject is an object type node. Versioned structurally via its
	// own concept entry; not individually history-tracked.
	KindObject Kind = "Object"

	// KindField is a leaf field node (scalar or enum valued). Carries a
	// spec history.
	KindField Kind = "Field"

	// KindEnum is an enum type node. Carries a spec history.
	KindEnum Kind = "Enum"

	// KindObjectField is a field whose value is another object, or a list
	// of objects. Versioned structurally but not individually ledgered.
	KindObjectField Kind = "ObjectField"
)

// ShouldHaveHistory reports whether nodes of this kind carry a spec
// history. Only Field and Enum nodes are individually ledgered.
func (k Kind) ShouldHaveHistory() bool {
	return k == KindField || k == KindEnum
}
