package graph

import (
	"errors"
	"time"
)

// Triple is one semantic assertion about a concept entity.
type Triple struct {
	Subject    string    `json:"subject"`
	Predicate  string    `json:"predicate"`
	Object     any       `json:"object"`
	Source     string    `json:"source,omitempty"`
	Timestamp  time.Time `json:"timestamp,omitempty"`
	Confidence float64   `json:"confidence,omitempty"`
}

// EntityIngestMessage is the message format for graph ingestion.
type EntityIngestMessage struct {
	ID        string    `json:"id"`
	Triples   []Triple  `json:"triples"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate checks the minimal shape required by graph consumers.
func (m *EntityIngestMessage) Validate() error {
	if m.ID == "" {
		return errors.New("entity ID is required")
	}
	if len(m.Triples) == 0 {
		return errors.New("at least one triple is required")
	}
	return nil
}
