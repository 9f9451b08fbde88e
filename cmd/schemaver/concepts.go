package main

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/c360studio/schemaver/concept"
)

func conceptsCmd() *cobra.Command {
	var (
		configPath  string
		schemaPaths []string
		output      string
		namespace   string
		prefix      string
	)

	cmd := &cobra.Command{
		Use:   "concepts",
		Short: "Export the concept URI model as JSON-LD",
		Long: `Extracts every versionable concept from the schema (object types,
enum types, leaf fields, and object-valued field relations) and builds
the JSON-LD concept graph over them. Without -o the model is printed to
stdout.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if namespace != "" {
				cfg.Concepts.Namespace = namespace
			}
			if prefix != "" {
				cfg.Concepts.Prefix = prefix
			}

			s, err := loadSchema(cfg, schemaPaths)
			if err != nil {
				return err
			}

			set := concept.Extract(s)
			model := concept.BuildModel(set, cfg.Concepts.Namespace, cfg.Concepts.Prefix)
			slog.Info("Extracted concepts",
				"objects", len(set.Objects),
				"fields", len(set.Fields),
				"enums", len(set.Enums),
				"nested", len(set.NestedObjects))

			if output == "" {
				data, err := json.MarshalIndent(model, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal concept model: %w", err)
				}
				fmt.Println(string(data))
				return nil
			}

			if err := model.Save(output); err != nil {
				return err
			}
			slog.Info("Wrote concept URI model", "path", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")
	cmd.Flags().StringSliceVar(&schemaPaths, "schema", nil, "Schema files, directories, or glob patterns")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file for the JSON-LD model")
	cmd.Flags().StringVar(&namespace, "namespace", "", "Namespace IRI for concept URIs")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Compact-URI prefix for concept URIs")

	return cmd
}
