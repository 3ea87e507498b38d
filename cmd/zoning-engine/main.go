// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the zoning-engine CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is shared by all subcommands; built in the persistent pre-run
// so the --verbose flag is already bound.
var logger *zap.Logger

// rootCmd is the base command for the zoning-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "zoning-engine",
	Short: "Convert room-level building surveys into simulation-ready thermal zones",
	Long: `zoning-engine imports a room-level survey spreadsheet, clusters its rows
into rooms and usage-based thermal zones, aggregates the building envelope
per orientation and construction, and derives lumped thermal network
parameters per element from the construction-type catalog.

Each operation is a subcommand: import runs the full pipeline, retrofit
checks the year-banded insulation rule for a layer stack, catalog lists
the loaded lookup tables, and runs queries the audit store.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		var err error
		if verbose {
			logger, err = zap.NewDevelopment()
		} else {
			cfg := zap.NewProductionConfig()
			cfg.DisableStacktrace = true
			logger, err = cfg.Build()
		}
		if err != nil {
			return fmt.Errorf("building logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			logger.Sync()
		}
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./zoning-engine.yaml or ~/.config/zoning-engine/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose console logging")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("zoning-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "zoning-engine"))
		}
	}

	viper.SetDefault("catalogs.constructions_path", "catalogs/constructions.yaml")
	viper.SetDefault("catalogs.use_conditions_path", "catalogs/use_conditions.yaml")
	viper.SetDefault("thermal.t_bt", 7.0)

	viper.SetEnvPrefix("ZONING_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
