// Package config provides configuration loading and management for schemaver.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	vocab "github.com/c360studio/schemaver/vocabulary/concept"
)

// Config represents the complete schemaver configuration
type Config struct {
	Concepts ConceptsConfig `yaml:"concepts"`
	Schema   SchemaConfig   `yaml:"schema"`
	History  HistoryConfig  `yaml:"history"`
	Graph    GraphConfig    `yaml:"graph"`
}

// ConceptsConfig configures concept URI generation
type ConceptsConfig struct {
	// Namespace is the base IRI for concept URIs
	Namespace string `yaml:"namespace"`
	// Prefix is the compact-URI prefix bound to the namespace
	Prefix string `yaml:"prefix"`
}

// SchemaConfig configures schema source resolution
type SchemaConfig struct {
	// Paths lists schema files, directories, or glob patterns (** supported)
	Paths []string `yaml:"paths"`
}

// HistoryConfig configures the spec-history registry
type HistoryConfig struct {
	// Dir receives per-revision type-definition snapshot files
	Dir string `yaml:"dir"`
}

// GraphConfig configures optional knowledge-graph publishing
type GraphConfig struct {
	// Enabled turns on publishing of concept entities after a run
	Enabled bool `yaml:"enabled"`
	// URL is the NATS server URL
	URL string `yaml:"url"`
	// Subject is the graph ingestion subject
	Subject string `yaml:"subject"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Concepts: ConceptsConfig{
			Namespace: vocab.DefaultNamespace,
			Prefix:    vocab.DefaultPrefix,
		},
		Schema: SchemaConfig{
			Paths: nil, // Supplied per invocation
		},
		History: HistoryConfig{
			Dir: "./history",
		},
		Graph: GraphConfig{
			Enabled: false,
			URL:     "nats://localhost:4222",
			Subject: "graph.ingest.concept",
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Concepts.Namespace == "" {
		return fmt.Errorf("concepts.namespace is required")
	}
	if c.Concepts.Prefix == "" {
		return fmt.Errorf("concepts.prefix is required")
	}
	if c.History.Dir == "" {
		return fmt.Errorf("history.dir is required")
	}
	if c.Graph.Enabled {
		if c.Graph.URL == "" {
			return fmt.Errorf("graph.url is required when graph publishing is enabled")
		}
		if c.Graph.Subject == "" {
			return fmt.Errorf("graph.subject is required when graph publishing is enabled")
		}
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Concepts
	if other.Concepts.Namespace != "" {
		c.Concepts.Namespace = other.Concepts.Namespace
	}
	if other.Concepts.Prefix != "" {
		c.Concepts.Prefix = other.Concepts.Prefix
	}

	// Schema
	if len(other.Schema.Paths) > 0 {
		c.Schema.Paths = other.Schema.Paths
	}

	// History
	if other.History.Dir != "" {
		c.History.Dir = other.History.Dir
	}

	// Graph
	if other.Graph.Enabled {
		c.Graph.Enabled = true
	}
	if other.Graph.URL != "" {
		c.Graph.URL = other.Graph.URL
	}
	if other.Graph.Subject != "" {
		c.Graph.Subject = other.Graph.Subject
	}
}
