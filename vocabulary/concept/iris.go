package concept

// DefaultNamespace is the base IRI for concept URIs when no namespace
// is configured.
const DefaultNamespace = "https://example.org/vss#"

// DefaultPrefix is the compact-URI prefix bound to the namespace in the
// JSON-LD @context.
const DefaultPrefix = "ns"

// JSON-LD term names declared in the @context of the concept URI model
// and the spec history ledger.
const (
	// TermHasField links an Object node to its leaf-field concept URIs.
	// Declared @id-typed so consumers resolve it as a graph edge.
	TermHasField = "hasField"

	// TermHasNestedObject links an ObjectField node to the object type
	// it references. Declared @id-typed.
	TermHasNestedObject = "hasNestedObject"

	// TermSpecHistory holds the ordered variant-identifier lineage of a
	// Field or Enum node. Declared @list so entry order is preserved.
	TermSpecHistory = "specHistory"
)
