package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/c360studio/schemaver/diff"
	"github.com/c360studio/schemaver/variant"
)

func variantsCmd() *cobra.Command {
	var (
		configPath   string
		schemaPaths  []string
		previousPath string
		diffPath     string
		versionTag   string
		output       string
	)

	cmd := &cobra.Command{
		Use:   "variants",
		Short: "Generate the variant-ID snapshot for one release",
		Long: `Computes each concept's semantic variant identifier and revision
counter from the current schema, the previous run's snapshot, and the
diff produced by an external schema-diff tool.

Without --previous every concept starts at v1.0. Without --diff the run
only carries identifiers forward and registers new concepts.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			s, err := loadSchema(cfg, schemaPaths)
			if err != nil {
				return err
			}

			gen := &variant.Generator{
				Schema:     s,
				VersionTag: versionTag,
				Logger:     slog.Default(),
			}

			if previousPath != "" {
				prev, err := variant.Load(previousPath)
				if err != nil {
					return err
				}
				gen.Previous = prev
			}

			if diffPath != "" {
				data, err := os.ReadFile(diffPath)
				if err != nil {
					return fmt.Errorf("read diff file: %w", err)
				}
				changes, err := diff.ParseChanges(data)
				if err != nil {
					return fmt.Errorf("%s: %w", diffPath, err)
				}
				gen.Changes = changes
			}

			result, err := gen.Generate()
			if err != nil {
				return err
			}
			slog.Info("Generated variant IDs",
				"version_tag", versionTag,
				"concepts", len(result.Concepts),
				"changes", len(gen.Changes))

			if output == "" {
				data, err := json.MarshalIndent(result, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal variant-id file: %w", err)
				}
				fmt.Println(string(data))
				return nil
			}

			if err := result.Save(output); err != nil {
				return err
			}
			slog.Info("Wrote variant-ID snapshot", "path", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")
	cmd.Flags().StringSliceVar(&schemaPaths, "schema", nil, "Schema files, directories, or glob patterns")
	cmd.Flags().StringVar(&previousPath, "previous", "", "Previous run's variant-ID file")
	cmd.Flags().StringVar(&diffPath, "diff", "", "JSON array of diff-change records")
	cmd.Flags().StringVar(&versionTag, "version-tag", "", "Version tag for this run (required)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file for the variant-ID snapshot")
	_ = cmd.MarkFlagRequired("version-tag")

	return cmd
}
