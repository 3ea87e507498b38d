// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/zoning-engine/internal/thermal"
	"github.com/pdiddy/zoning-engine/pkg/types"
)

var retrofitCmd = &cobra.Command{
	Use:   "retrofit",
	Short: "Solve the year-banded retrofit rule for a layer stack",
	Long: `Retrofit reads a layer stack as YAML from stdin, prints the target
U-value for the given year, and the insulation thickness that brings the
stack's U-value to the target. An engineering check tool for the same
solve the import pipeline applies with --retrofit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		year, _ := cmd.Flags().GetInt("year")

		target, err := thermal.TargetUValue(year)
		if err != nil {
			return err
		}

		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading layer stack from stdin: %w", err)
		}
		var stack struct {
			Layers []types.Layer `yaml:"layers"`
		}
		if err := yaml.Unmarshal(data, &stack); err != nil {
			return fmt.Errorf("parsing layer stack: %w", err)
		}
		if len(stack.Layers) == 0 {
			return fmt.Errorf("layer stack is empty")
		}

		mat := thermal.DefaultInsulation
		if name, _ := cmd.Flags().GetString("material"); name != "" {
			cond, _ := cmd.Flags().GetFloat64("conductivity")
			if cond <= 0 {
				return fmt.Errorf("--material requires a positive --conductivity")
			}
			mat = types.Material{Name: name, ThermalConduc: cond}
		}

		// Reuse the element-level solve on a synthetic element.
		el := types.BuildingElement{
			Name:     "stack",
			Resolved: true,
			Layers:   stack.Layers,
		}
		before := thermal.RetrofitUValue(el.Layers)
		layer, err := thermal.Retrofit(&el, year, &mat)
		if err != nil {
			return err
		}

		fmt.Printf("year %d: target U = %.3f W/(m²K)\n", year, target)
		fmt.Printf("stack U before: %.3f W/(m²K)\n", before)
		fmt.Printf("insulation: %.1f mm of %s (λ = %.3f W/(mK))\n",
			layer.Thickness*1000, mat.Name, mat.ThermalConduc)
		fmt.Printf("stack U after: %.3f W/(m²K)\n", thermal.RetrofitUValue(el.Layers))
		return nil
	},
}

func init() {
	retrofitCmd.Flags().Int("year", 0, "retrofit year (1977 or later, required)")
	retrofitCmd.Flags().String("material", "", "insulation material name (default: MineralWool035)")
	retrofitCmd.Flags().Float64("conductivity", 0, "insulation conductivity in W/(mK), required with --material")
	retrofitCmd.MarkFlagRequired("year")

	rootCmd.AddCommand(retrofitCmd)
}
