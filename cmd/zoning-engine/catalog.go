// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/zoning-engine/internal/catalog"
	"github.com/pdiddy/zoning-engine/internal/cluster"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the external lookup catalogs",
}

var catalogConstructionsCmd = &cobra.Command{
	Use:   "constructions",
	Short: "List construction-type catalog entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		cons, err := catalog.LoadConstructions(viper.GetString("catalogs.constructions_path"))
		if err != nil {
			return err
		}
		year, _ := cmd.Flags().GetInt("year")
		for _, e := range cons.Entries {
			if year > 0 && !(year >= e.AgeGroup[0] && year <= e.AgeGroup[1]) {
				continue
			}
			fmt.Printf("%-30s  [%d, %d]  %d layers\n",
				e.Name, e.AgeGroup[0], e.AgeGroup[1], len(e.Layers))
		}
		return nil
	},
}

var catalogUsagesCmd = &cobra.Command{
	Use:   "usages",
	Short: "List usage-condition catalog entries and the usage mapping",
	RunE: func(cmd *cobra.Command, args []string) error {
		ucs, err := catalog.LoadUseConditions(viper.GetString("catalogs.use_conditions_path"))
		if err != nil {
			return err
		}
		fmt.Println("usage-condition catalog:")
		for _, e := range ucs.Entries {
			fmt.Printf("  %s\n", e.Usage)
		}
		fmt.Println("\nusage mapping (survey label -> canonical category):")
		for label, canonical := range cluster.UsageToCanonical {
			fmt.Printf("  %-26s -> %s\n", label, canonical)
		}
		if err := ucs.Covers(cluster.CanonicalCategories()); err != nil {
			fmt.Printf("\nWARNING: %v\n", err)
		}
		return nil
	},
}

func init() {
	catalogConstructionsCmd.Flags().Int("year", 0, "only entries whose age band covers this year")

	catalogCmd.AddCommand(catalogConstructionsCmd)
	catalogCmd.AddCommand(catalogUsagesCmd)
	rootCmd.AddCommand(catalogCmd)
}
