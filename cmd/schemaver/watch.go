package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/c360studio/schemaver/config"
	"github.com/c360studio/schemaver/variant"
)

func watchCmd() *cobra.Command {
	var (
		configPath  string
		schemaPaths []string
		versionTag  string
		output      string
		debounce    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-generate variant IDs whenever schema files change",
		Long: `Watches the schema source directories and re-runs variant
generation after each change batch, chaining the output file as the
next run's previous state. Intended for authoring sessions; release
runs should use the variants command with an explicit diff.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			paths := schemaPaths
			if len(paths) == 0 {
				paths = cfg.Schema.Paths
			}
			if len(paths) == 0 {
				return fmt.Errorf("no schema paths given")
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			return watchSchemas(ctx, cfg, paths, versionTag, output, debounce)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")
	cmd.Flags().StringSliceVar(&schemaPaths, "schema", nil, "Schema files, directories, or glob patterns")
	cmd.Flags().StringVar(&versionTag, "version-tag", "dev", "Version tag applied to watch runs")
	cmd.Flags().StringVarP(&output, "output", "o", "variant_ids.json", "Variant-ID snapshot, chained between runs")
	cmd.Flags().DurationVar(&debounce, "debounce", 500*time.Millisecond, "Delay before processing a change batch")

	return cmd
}

func watchSchemas(ctx context.Context, cfg *config.Config, paths []string, versionTag, output string, debounce time.Duration) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	dirs := watchDirs(paths)
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	slog.Info("Watching schema sources", "dirs", dirs, "debounce", debounce)

	// First run immediately so the output exists before any change.
	if err := regenerate(cfg, paths, versionTag, output); err != nil {
		slog.Error("Initial generation failed", "error", err)
	}

	var timer *time.Timer
	pending := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Watch stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !strings.HasSuffix(event.Name, ".graphql") {
				continue
			}
			slog.Debug("Schema change", "path", event.Name, "op", event.Op.String())
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", "error", err)

		case <-pending:
			if err := regenerate(cfg, paths, versionTag, output); err != nil {
				slog.Error("Regeneration failed", "error", err)
			}
		}
	}
}

// regenerate runs one carry-forward variant generation, chaining the
// previous output when present.
func regenerate(cfg *config.Config, paths []string, versionTag, output string) error {
	s, err := loadSchema(cfg, paths)
	if err != nil {
		return err
	}

	gen := &variant.Generator{
		Schema:     s,
		VersionTag: versionTag,
		Logger:     slog.Default(),
	}
	if _, err := os.Stat(output); err == nil {
		prev, err := variant.Load(output)
		if err != nil {
			return err
		}
		gen.Previous = prev
	}

	result, err := gen.Generate()
	if err != nil {
		return err
	}
	if err := result.Save(output); err != nil {
		return err
	}
	slog.Info("Regenerated variant IDs", "path", output, "concepts", len(result.Concepts))
	return nil
}

// watchDirs maps schema path patterns to the directories to watch.
// Glob patterns watch their non-glob root; files watch their parent.
func watchDirs(paths []string) []string {
	seen := make(map[string]bool)
	var dirs []string

	add := func(dir string) {
		if dir == "" {
			dir = "."
		}
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}

	for _, path := range paths {
		if info, err := os.Stat(path); err == nil {
			if info.IsDir() {
				add(path)
			} else {
				add(filepath.Dir(path))
			}
			continue
		}
		// Glob pattern: watch the deepest literal directory.
		root := path
		for strings.ContainsAny(root, "*?[{") {
			root = filepath.Dir(root)
		}
		add(root)
	}

	return dirs
}
