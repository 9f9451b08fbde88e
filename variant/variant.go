// Package variant computes and persists semantic variant identifiers
// for schema concepts.
//
// A variant identifier has the form "Concept/vM.m": the major component
// increments on breaking changes and resets the minor, the minor
// increments on non-breaking changes. Alongside the identifier each
// concept carries a monotonic variant counter that increments on every
// change, and a removal tag once the concept disappears from the
// schema. One File is the complete snapshot of one generator run.
package variant

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// ErrInputFormat indicates a previous-state file that is not valid JSON
// or fails structural validation.
var ErrInputFormat = errors.New("invalid variant-id file")

// ErrIdentifierFormat indicates a stored variant identifier that does
// not match the Concept/vM.m form.
var ErrIdentifierFormat = errors.New("invalid variant identifier")

// idPattern matches "<concept>/v<major>.<minor>".
var idPattern = regexp.MustCompile(`^(.+)/v(\d+)\.(\d+)$`)

// Entry is one concept's variant identity within a snapshot.
type Entry struct {
	// ID is the variant identifier, always "<concept>/v<major>.<minor>".
	ID string `json:"id"`

	// VariantCounter increments with every change to this concept and
	// never decreases across successive runs.
	VariantCounter int `json:"variant_counter"`

	// RemovedInVersion is the version tag of the run in which the
	// concept first disappeared from the schema. Empty while the
	// concept is live.
	RemovedInVersion string `json:"removed_in_version,omitempty"`
}

// Variant returns the (major, minor) pair encoded in the entry's
// identifier.
func (e Entry) Variant() (major, minor int, err error) {
	_, major, minor, err = ParseID(e.ID)
	return major, minor, err
}

// ParseID splits a variant identifier into its concept name and
// semantic version components.
func ParseID(id string) (conceptName string, major, minor int, err error) {
	m := idPattern.FindStringSubmatch(id)
	if m == nil {
		return "", 0, 0, fmt.Errorf("%w: %q (expected Concept/vM.m)", ErrIdentifierFormat, id)
	}
	fmt.Sscanf(m[2], "%d", &major)
	fmt.Sscanf(m[3], "%d", &minor)
	return m[1], major, minor, nil
}

// FormatID builds a variant identifier from a concept name and version.
func FormatID(conceptName string, major, minor int) string {
	return fmt.Sprintf("%s/v%d.%d", conceptName, major, minor)
}

// File is a complete variant-ID snapshot: one run's identity for every
// concept, current and removed.
type File struct {
	// VersionTag labels the run that produced this snapshot.
	VersionTag string `json:"version_tag"`

	// Concepts maps concept names to their variant entries.
	Concepts map[string]Entry `json:"concepts"`
}

// IDMap returns concept name to variant identifier for every entry.
func (f *File) IDMap() map[string]string {
	ids := make(map[string]string, len(f.Concepts))
	for name, entry := range f.Concepts {
		ids[name] = entry.ID
	}
	return ids
}

// Load reads and validates a variant-ID snapshot. A payload that is not
// valid JSON is ErrInputFormat; a stored identifier that does not parse
// is ErrIdentifierFormat. Both are fatal to the run.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read variant-id file: %w", err)
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInputFormat, path, err)
	}
	for name, entry := range f.Concepts {
		stored, _, _, err := ParseID(entry.ID)
		if err != nil {
			return nil, err
		}
		if stored != name {
			return nil, fmt.Errorf("%w: entry %q carries identifier %q", ErrInputFormat, name, entry.ID)
		}
	}
	return &f, nil
}

// Save writes the snapshot as indented JSON, creating parent
// directories as needed. Map keys serialize sorted, so two identical
// snapshots are byte-identical on disk.
func (f *File) Save(path string) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal variant-id file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write variant-id file: %w", err)
	}
	return nil
}
