package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/c360studio/schemaver/concept"
	"github.com/c360studio/schemaver/graph"
	"github.com/c360studio/schemaver/history"
	"github.com/c360studio/schemaver/variant"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Initialize or update the spec-history ledger",
	}
	cmd.AddCommand(historyInitCmd())
	cmd.AddCommand(historyUpdateCmd())
	return cmd
}

func historyInitCmd() *cobra.Command {
	var (
		configPath   string
		schemaPaths  []string
		variantsPath string
		versionTag   string
		ledgerPath   string
		historyDir   string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a new spec-history ledger",
		Long: `Seeds the ledger from the current schema: every Field and Enum
concept gets its variant identifier as the first history entry, and
every concept's enclosing type definition is snapshotted into the
history directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if historyDir != "" {
				cfg.History.Dir = historyDir
			}

			s, err := loadSchema(cfg, schemaPaths)
			if err != nil {
				return err
			}
			variants, err := variant.Load(variantsPath)
			if err != nil {
				return err
			}
			if versionTag == "" {
				versionTag = variants.VersionTag
			}

			set := concept.Extract(s)
			uris := concept.BuildModel(set, cfg.Concepts.Namespace, cfg.Concepts.Prefix)

			registry := &history.Registry{
				Namespace:  cfg.Concepts.Namespace,
				Prefix:     cfg.Concepts.Prefix,
				HistoryDir: cfg.History.Dir,
				Logger:     slog.Default(),
			}

			model := registry.Init(uris, variants, versionTag)
			if err := model.Save(ledgerPath); err != nil {
				return err
			}
			slog.Info("Initialized spec history", "path", ledgerPath, "nodes", len(model.Graph))

			// First run snapshots every ledgered concept.
			var seeded []string
			for name := range variants.Concepts {
				seeded = append(seeded, name)
			}
			if err := registry.WriteSnapshots(s, seeded, variants); err != nil {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")
	cmd.Flags().StringSliceVar(&schemaPaths, "schema", nil, "Schema files, directories, or glob patterns")
	cmd.Flags().StringVar(&variantsPath, "variants", "", "Variant-ID snapshot for this run (required)")
	cmd.Flags().StringVar(&versionTag, "version-tag", "", "Version tag (defaults to the snapshot's tag)")
	cmd.Flags().StringVar(&ledgerPath, "ledger", "spec_history.json", "Ledger output file")
	cmd.Flags().StringVar(&historyDir, "history-dir", "", "Directory for definition snapshots")
	_ = cmd.MarkFlagRequired("variants")

	return cmd
}

func historyUpdateCmd() *cobra.Command {
	var (
		configPath   string
		schemaPaths  []string
		variantsPath string
		versionTag   string
		ledgerPath   string
		historyDir   string
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Fold a new release into an existing ledger",
		Long: `Loads the existing ledger, adds nodes for concepts new to the
schema, and appends a history entry wherever a concept's variant
identifier changed. Re-running with unchanged identifiers is a no-op.
Definition snapshots are written for every new or updated concept.

When graph publishing is enabled in the configuration, each new or
updated concept is also published to the graph ingestion subject.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if historyDir != "" {
				cfg.History.Dir = historyDir
			}

			s, err := loadSchema(cfg, schemaPaths)
			if err != nil {
				return err
			}
			variants, err := variant.Load(variantsPath)
			if err != nil {
				return err
			}
			if versionTag == "" {
				versionTag = variants.VersionTag
			}

			model, err := history.Load(ledgerPath)
			if err != nil {
				return err
			}

			set := concept.Extract(s)
			uris := concept.BuildModel(set, cfg.Concepts.Namespace, cfg.Concepts.Prefix)

			registry := &history.Registry{
				Namespace:  cfg.Concepts.Namespace,
				Prefix:     cfg.Concepts.Prefix,
				HistoryDir: cfg.History.Dir,
				Logger:     slog.Default(),
			}

			newConcepts, updated := registry.Update(model, uris, variants, versionTag)
			slog.Info("Updated spec history",
				"new", len(newConcepts),
				"updated", len(updated))

			if err := model.Save(ledgerPath); err != nil {
				return err
			}

			changed := append(append([]string(nil), newConcepts...), updated...)
			if err := registry.WriteSnapshots(s, changed, variants); err != nil {
				return err
			}

			if cfg.Graph.Enabled && len(changed) > 0 {
				ctx := cmd.Context()
				publisher, err := graph.Connect(ctx, cfg.Graph.URL, cfg.Graph.Subject, slog.Default())
				if err != nil {
					return err
				}
				defer publisher.Close()
				if err := publisher.PublishRun(ctx, versionTag, variants, newConcepts, updated); err != nil {
					return err
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")
	cmd.Flags().StringSliceVar(&schemaPaths, "schema", nil, "Schema files, directories, or glob patterns")
	cmd.Flags().StringVar(&variantsPath, "variants", "", "Variant-ID snapshot for this run (required)")
	cmd.Flags().StringVar(&versionTag, "version-tag", "", "Version tag (defaults to the snapshot's tag)")
	cmd.Flags().StringVar(&ledgerPath, "ledger", "spec_history.json", "Existing ledger file, updated in place")
	cmd.Flags().StringVar(&historyDir, "history-dir", "", "Directory for definition snapshots")
	_ = cmd.MarkFlagRequired("variants")

	return cmd
}
