// Package diff models externally supplied schema change records.
//
// Changes are produced by a schema-diff collaborator and consumed
// read-only: this package validates the payload shape and classifies
// criticality, nothing more.
package diff

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInputFormat indicates a diff payload that is not a JSON array or
// whose elements fail required-field validation.
var ErrInputFormat = errors.New("invalid diff payload")

// Action is the kind of edit a change describes.
type Action string

const (
	ActionInsert Action = "insert"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Criticality is the external classification of a change's impact.
type Criticality string

const (
	CriticalityBreaking    Criticality = "BREAKING"
	CriticalityDangerous   Criticality = "DANGEROUS"
	CriticalityNonBreaking Criticality = "NON_BREAKING"
)

// IsBreaking reports whether the classification forces a major version
// increment. DANGEROUS counts as breaking; NON_BREAKING is the only
// non-breaking classification.
func (c Criticality) IsBreaking() bool {
	return c == CriticalityBreaking || c == CriticalityDangerous
}

// Change is a single schema change detected by the external diff tool.
type Change struct {
	// Type names the kind of change, e.g. "FIELD_TYPE_CHANGED".
	Type string `json:"type"`

	// Action is insert, update, or delete.
	Action Action `json:"action"`

	// Criticality is BREAKING, DANGEROUS, or NON_BREAKING.
	Criticality Criticality `json:"criticality"`

	// Path is the full path to the changed element.
	Path string `json:"path,omitempty"`

	// ConceptName is the concept whose variant must increment.
	ConceptName string `json:"concept_name,omitempty"`

	// Message describes the change for humans.
	Message string `json:"message,omitempty"`

	// TypeName is the enclosing type, when the diff tool reports one.
	TypeName string `json:"type_name,omitempty"`

	// FieldName is the changed field, when the diff tool reports one.
	FieldName string `json:"field_name,omitempty"`

	// Meta carries tool-specific extra data, passed through untouched.
	Meta map[string]any `json:"meta,omitempty"`
}

// Validate checks the required fields of a single change record.
func (c Change) Validate() error {
	if c.Type == "" {
		return fmt.Errorf("%w: change missing type", ErrInputFormat)
	}
	switch c.Action {
	case ActionInsert, ActionUpdate, ActionDelete:
	default:
		return fmt.Errorf("%w: change %q has unknown action %q", ErrInputFormat, c.Type, c.Action)
	}
	switch c.Criticality {
	case CriticalityBreaking, CriticalityDangerous, CriticalityNonBreaking:
	default:
		return fmt.Errorf("%w: change %q has unknown criticality %q", ErrInputFormat, c.Type, c.Criticality)
	}
	return nil
}

// ParseChanges validates a raw diff payload into change records. The
// payload must be a JSON array; element validation failures are fatal
// and name the offending record.
func ParseChanges(data []byte) ([]Change, error) {
	var probe any
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInputFormat, err)
	}
	if _, ok := probe.([]any); !ok {
		return nil, fmt.Errorf("%w: expected a JSON array", ErrInputFormat)
	}

	var changes []Change
	if err := json.Unmarshal(data, &changes); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInputFormat, err)
	}
	for _, change := range changes {
		if err := change.Validate(); err != nil {
			return nil, err
		}
	}
	return changes, nil
}
