// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/zoning-engine/internal/auditstore"
	"github.com/pdiddy/zoning-engine/internal/importer"
	"github.com/pdiddy/zoning-engine/internal/xlsio"
	"github.com/pdiddy/zoning-engine/pkg/types"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Run the full survey-to-zones import pipeline",
	Long: `Import reads the survey spreadsheet, clusters rooms, forms usage-based
zones, aggregates envelope elements, and derives thermal network
parameters. Diagnostics are collected per run and printed as a batch;
with --strict any diagnostic that leaves physical parameters undefined
fails the run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := configFromFlags(cmd)

		result, err := importer.Run(cfg, logger)
		if err != nil && !errors.Is(err, importer.ErrStrictViolations) {
			return err
		}
		runErr := err

		printSummary(result, cfg)

		if out, _ := cmd.Flags().GetString("out"); out != "" {
			if err := writeGraph(out, result.Building); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "zone graph written to %s\n", out)
		}
		if export, _ := cmd.Flags().GetString("export"); export != "" {
			if err := xlsio.WriteZoned(export, result.Records); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "zoned table written to %s\n", export)
		}
		if cfg.Audit.DBPath != "" {
			store, err := auditstore.Open(cfg.Audit.DBPath)
			if err != nil {
				return err
			}
			defer store.Close()
			if err := store.SaveRun(context.Background(), result.RunID, result.Building, result.Diagnostics); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "run %s recorded in %s\n", result.RunID, cfg.Audit.DBPath)
		}

		return runErr
	},
}

// configFromFlags merges flag values over the viper configuration.
func configFromFlags(cmd *cobra.Command) types.Config {
	var cfg types.Config
	cfg.Catalogs.ConstructionsPath = viper.GetString("catalogs.constructions_path")
	cfg.Catalogs.UseConditionsPath = viper.GetString("catalogs.use_conditions_path")
	cfg.Thermal.TBt = viper.GetFloat64("thermal.t_bt")
	cfg.Audit.DBPath = viper.GetString("audit.db_path")

	if v, _ := cmd.Flags().GetString("constructions"); v != "" {
		cfg.Catalogs.ConstructionsPath = v
	}
	if v, _ := cmd.Flags().GetString("use-conditions"); v != "" {
		cfg.Catalogs.UseConditionsPath = v
	}
	if v, _ := cmd.Flags().GetString("audit-db"); v != "" {
		cfg.Audit.DBPath = v
	}

	cfg.Import.File, _ = cmd.Flags().GetString("file")
	cfg.Import.Sheets, _ = cmd.Flags().GetStringSlice("sheets")
	cfg.Import.BuildingName, _ = cmd.Flags().GetString("name")
	cfg.Import.YearOfConstruction, _ = cmd.Flags().GetInt("year")
	cfg.Import.RetrofitYear, _ = cmd.Flags().GetInt("retrofit")
	cfg.Import.Strict, _ = cmd.Flags().GetBool("strict")
	return cfg
}

func printSummary(result *importer.Result, cfg types.Config) {
	b := result.Building
	fmt.Printf("building %q (year %d): %d zones, %.1f m², %.1f m³\n",
		b.Name, b.YearOfConstruction, len(b.Zones), b.TotalArea(), b.TotalVolume())
	for _, z := range b.Zones {
		fmt.Printf("  zone %-55s %8.1f m²  %8.1f m³  %d elements\n",
			z.Name, z.Area, z.Volume, len(z.Elements))
	}
	warnings := result.Diagnostics.Count(types.SeverityWarning)
	errs := result.Diagnostics.Count(types.SeverityError)
	fmt.Printf("diagnostics: %d total (%d warnings, %d errors)\n",
		len(result.Diagnostics), warnings, errs)
}

func writeGraph(path string, b *types.Building) error {
	data, err := yaml.Marshal(b)
	if err != nil {
		return fmt.Errorf("marshaling zone graph: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing zone graph: %w", err)
	}
	return nil
}

func init() {
	importCmd.Flags().String("file", "", "survey spreadsheet to import (required)")
	importCmd.Flags().StringSlice("sheets", nil, "sheet names to concatenate (default: first sheet)")
	importCmd.Flags().String("name", "Building", "building name")
	importCmd.Flags().Int("year", 0, "year of construction for catalog lookups (required)")
	importCmd.Flags().Int("retrofit", 0, "retrofit year; applies the year-banded insulation rule")
	importCmd.Flags().Bool("strict", false, "fail the run on any error diagnostic")
	importCmd.Flags().String("out", "", "write the zone/element graph as YAML")
	importCmd.Flags().String("export", "", "write the annotated zoned table as xlsx")
	importCmd.Flags().String("constructions", "", "construction-type catalog path (overrides config)")
	importCmd.Flags().String("use-conditions", "", "usage-condition catalog path (overrides config)")
	importCmd.Flags().String("audit-db", "", "SQLite audit database recording the run")
	importCmd.MarkFlagRequired("file")
	importCmd.MarkFlagRequired("year")

	rootCmd.AddCommand(importCmd)
}
