// Package main provides the schemaver binary entry point.
// Schemaver assigns stable, semantically versioned identifiers to the
// concepts of a graph-shaped schema and keeps an auditable history of
// those identifiers across releases.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "schemaver"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Concept versioning for graph schemas",
		Long: `Schemaver treats a graph-shaped schema as an evolving artifact.

It extracts the schema's versionable concepts (object types, enum types,
and leaf fields), assigns each a semantic variant identifier driven by an
externally computed diff, and maintains an append-only spec-history
ledger of every identifier a concept has held.

Typical release flow:

  schemaver concepts  --schema spec/ -o concept_uris.jsonld
  schemaver variants  --schema spec/ --previous ids.json --diff diff.json \
                      --version-tag v1.2.0 -o ids.json
  schemaver history update --schema spec/ --variants ids.json \
                      --ledger spec_history.json --version-tag v1.2.0`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configureLogging(logLevel)
		},
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(conceptsCmd())
	cmd.AddCommand(variantsCmd())
	cmd.AddCommand(historyCmd())
	cmd.AddCommand(watchCmd())

	// Version command
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd
}

func configureLogging(logLevel string) {
	level := slog.LevelInfo
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}
