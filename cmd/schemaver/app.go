package main

import (
	"fmt"
	"log/slog"

	"github.com/c360studio/schemaver/config"
	"github.com/c360studio/schemaver/schema"
)

// loadConfig resolves the effective configuration: explicit file when
// given, otherwise the layered loader (defaults, user, project).
func loadConfig(configPath string) (*config.Config, error) {
	if configPath != "" {
		cfg, err := config.LoadFromFile(configPath)
		if err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
		return cfg, nil
	}
	return config.NewLoader(slog.Default()).Load()
}

// loadSchema resolves schema sources from the command line, falling
// back to the configured paths when none were given.
func loadSchema(cfg *config.Config, paths []string) (*schema.Schema, error) {
	if len(paths) == 0 {
		paths = cfg.Schema.Paths
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no schema paths given (use --schema or set schema.paths in %s)", config.ProjectConfigFile)
	}
	s, err := schema.LoadPaths(paths)
	if err != nil {
		return nil, fmt.Errorf("load schema: %w", err)
	}
	return s, nil
}
