// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/zoning-engine/internal/auditstore"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded import runs from the audit store",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, _ := cmd.Flags().GetString("db")
		if dbPath == "" {
			dbPath = viper.GetString("audit.db_path")
		}
		if dbPath == "" {
			return fmt.Errorf("no audit database configured; pass --db or set audit.db_path")
		}

		store, err := auditstore.Open(dbPath)
		if err != nil {
			return err
		}
		defer store.Close()

		runs, err := store.ListRuns(context.Background())
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println("No runs recorded.")
			return nil
		}

		fmt.Printf("%-36s  %-20s  %-5s  %-20s  %5s  %8s  %5s  %s\n",
			"Run", "Building", "Year", "Created", "Zones", "Elements", "Diags", "Errors")
		for _, r := range runs {
			fmt.Printf("%-36s  %-20s  %-5d  %-20s  %5d  %8d  %5d  %d\n",
				r.ID, r.Building, r.Year, r.CreatedAt, r.Zones, r.Elements, r.Diagnostics, r.Errors)
		}
		return nil
	},
}

func init() {
	runsCmd.Flags().String("db", "", "SQLite audit database path")

	rootCmd.AddCommand(runsCmd)
}
