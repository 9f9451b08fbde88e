// Package concept provides the vocabulary for versionable schema concepts.
//
// A concept is an addressable element of a graph-shaped schema: an object
// type, an enum type, or a leaf field. Concepts are identified by
// namespace-prefixed URIs in the JSON-LD concept graph and by variant
// identifiers (Concept/vM.m) in the variant-ID registry.
//
// The package defines:
//   - Namespace and prefix defaults for concept URIs
//   - JSON-LD term names used in the @context of persisted models
//   - Node kinds (Object, Field, Enum, ObjectField)
//   - Graph predicates for publishing concept entities (concept.variant.*)
package concept
