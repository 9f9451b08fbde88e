package concept

// Concept variant predicates describe the variant identity of a concept
// when published to the knowledge graph after a generator run.
const (
	// VariantID is the concept's current variant identifier (Concept/vM.m).
	VariantID = "concept.variant.id"

	// VariantCounter is the concept's monotonic revision counter.
	VariantCounter = "concept.variant.counter"

	// VariantVersionTag is the run tag under which this identity was
	// recorded.
	VariantVersionTag = "concept.variant.version_tag"

	// VariantRemovedIn is the version tag at which the concept first
	// disappeared from the schema. Absent for live concepts.
	VariantRemovedIn = "concept.variant.removed_in"

	// VariantKind is the node kind (Object, Field, Enum, ObjectField).
	VariantKind = "concept.variant.kind"

	// VariantStatus distinguishes new concepts from updated ones in a
	// published run. Values: new, updated.
	VariantStatus = "concept.variant.status"

	// VariantRun is the UUID of the generator run that produced this
	// identity.
	VariantRun = "concept.variant.run"
)
