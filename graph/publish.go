// Package graph provides utilities for publishing concept entities to the knowledge graph.
package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/c360studio/schemaver/variant"
	vocab "github.com/c360studio/schemaver/vocabulary/concept"
)

// StreamName is the JetStream stream backing concept ingestion.
const StreamName = "CONCEPTS"

// tripleSource identifies this publisher in emitted triples.
const tripleSource = "schemaver.variants"

// Publisher publishes concept variant identities to a graph ingestion
// subject after a generator run. A nil Publisher is safe to use and
// publishes nothing, so callers degrade gracefully when graph
// publishing is disabled.
type Publisher struct {
	conn    *nats.Conn
	js      jetstream.JetStream
	subject string
	logger  *slog.Logger
}

// Connect establishes a NATS connection and ensures the ingestion
// stream exists.
func Connect(ctx context.Context, url, subject string, logger *slog.Logger) (*Publisher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	conn, err := nats.Connect(url, nats.Name("schemaver"))
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("create JetStream context: %w", err)
	}

	if _, err := js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     StreamName,
		Subjects: []string{subject},
		Storage:  jetstream.FileStorage,
	}); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ensure concept stream: %w", err)
	}

	logger.Debug("Connected to NATS for graph publishing", "url", url, "subject", subject)
	return &Publisher{conn: conn, js: js, subject: subject, logger: logger}, nil
}

// Close drains the underlying connection.
func (p *Publisher) Close() {
	if p == nil || p.conn == nil {
		return
	}
	p.conn.Close()
}

// PublishRun publishes one entity per new or updated concept from a
// generator run. Each run gets a UUID so downstream consumers can
// correlate the entities of a single release.
func (p *Publisher) PublishRun(ctx context.Context, versionTag string, variants *variant.File, newConcepts, updated []string) error {
	if p == nil {
		return nil // Publishing disabled
	}

	runID := uuid.New().String()
	now := time.Now()

	publish := func(names []string, status string) error {
		sorted := append([]string(nil), names...)
		sort.Strings(sorted)
		for _, name := range sorted {
			entry, ok := variants.Concepts[name]
			if !ok {
				p.logger.Warn("no variant entry for published concept, skipping",
					"concept", name)
				continue
			}
			if err := p.publishConcept(ctx, name, status, runID, versionTag, entry, now); err != nil {
				return err
			}
		}
		return nil
	}

	if err := publish(newConcepts, "new"); err != nil {
		return err
	}
	if err := publish(updated, "updated"); err != nil {
		return err
	}

	p.logger.Info("Published concept entities",
		"run", runID,
		"version_tag", versionTag,
		"new", len(newConcepts),
		"updated", len(updated))
	return nil
}

func (p *Publisher) publishConcept(ctx context.Context, name, status, runID, versionTag string, entry variant.Entry, now time.Time) error {
	entityID := ConceptEntityID(name)

	triples := []Triple{
		{Subject: entityID, Predicate: vocab.VariantID, Object: entry.ID, Source: tripleSource, Timestamp: now, Confidence: 1.0},
		{Subject: entityID, Predicate: vocab.VariantCounter, Object: entry.VariantCounter, Source: tripleSource, Timestamp: now, Confidence: 1.0},
		{Subject: entityID, Predicate: vocab.VariantVersionTag, Object: versionTag, Source: tripleSource, Timestamp: now, Confidence: 1.0},
		{Subject: entityID, Predicate: vocab.VariantStatus, Object: status, Source: tripleSource, Timestamp: now, Confidence: 1.0},
		{Subject: entityID, Predicate: vocab.VariantRun, Object: runID, Source: tripleSource, Timestamp: now, Confidence: 1.0},
	}
	if entry.RemovedInVersion != "" {
		triples = append(triples, Triple{
			Subject:    entityID,
			Predicate:  vocab.VariantRemovedIn,
			Object:     entry.RemovedInVersion,
			Source:     tripleSource,
			Timestamp:  now,
			Confidence: 1.0,
		})
	}

	msg := EntityIngestMessage{
		ID:        entityID,
		Triples:   triples,
		UpdatedAt: now,
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal concept entity: %w", err)
	}

	if _, err := p.js.Publish(ctx, p.subject, data); err != nil {
		return fmt.Errorf("publish concept entity %s: %w", name, err)
	}
	return nil
}

// ConceptEntityID generates a consistent entity ID for a concept.
// Format: schemaver.registry.concept.concept.<name>
func ConceptEntityID(name string) string {
	return fmt.Sprintf("schemaver.registry.concept.concept.%s", name)
}
