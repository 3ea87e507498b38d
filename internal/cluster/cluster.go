// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cluster groups survey records into rooms, resolves one
// authoritative usage per room, and assigns rooms to zones by canonical
// usage category.
package cluster

import (
	"github.com/pdiddy/zoning-engine/pkg/types"
)

// Apply runs the full clustering pass over normalized records:
// adjacent-wall reclassification, cluster key assignment, usage
// resolution, and zone formation. It returns the annotated records and
// the diagnostics collected along the way.
func Apply(records []types.Record) ([]types.Record, types.DiagnosticList) {
	var diags types.DiagnosticList

	out := make([]types.Record, len(records))
	copy(out, records)

	reclassifyAdjacentWalls(out)
	assignClusters(out)
	resolveUsage(out, &diags)
	checkZeroAreaUsage(out, &diags)
	mapUsage(out, &diags)

	return out, diags
}

// reclassifyAdjacentWalls accounts outer walls that face another
// conditioned zone as inner-wall area: the outer-wall and window areas
// are added to the inner-wall area and their fields blanked. The wall
// construction of the absorbed area is not kept; the record's regular
// inner-wall construction applies. Must run before any grouping.
func reclassifyAdjacentWalls(records []types.Record) {
	for i := range records {
		rec := &records[i]
		if rec.WallAdjacentTo == "" {
			continue
		}

		sum := rec.InnerWallArea.Or(0) + rec.OuterWall.Area.Or(0) + rec.Window.Area.Or(0)
		present := rec.InnerWallArea.Present || rec.OuterWall.Area.Present || rec.Window.Area.Present
		rec.InnerWallArea = types.Value{Num: sum, Present: present, Valid: present}

		rec.OuterWall = types.Surface{}
		rec.Window = types.Surface{}
	}
}

// assignClusters keys every record to its physical room: the
// back-reference identifier when present, else the record's own room
// identifier.
func assignClusters(records []types.Record) {
	for i := range records {
		if records[i].BelongsTo != "" {
			records[i].Cluster = records[i].BelongsTo
		} else {
			records[i].Cluster = records[i].RoomID
		}
	}
}

// clusterOrder returns the cluster keys in order of first appearance,
// so diagnostics and downstream naming stay deterministic under any
// input ordering of a cluster's member rows.
func clusterOrder(records []types.Record) []string {
	seen := make(map[string]bool)
	var order []string
	for _, rec := range records {
		if rec.Cluster == "" || seen[rec.Cluster] {
			continue
		}
		seen[rec.Cluster] = true
		order = append(order, rec.Cluster)
	}
	return order
}

// resolveUsage finds the authoritative usage of every cluster: the
// record with no back-reference and a non-missing usage label. A count
// other than one is reported once per cluster; processing continues
// with the first match found, if any.
func resolveUsage(records []types.Record, diags *types.DiagnosticList) {
	for _, key := range clusterOrder(records) {
		var usage string
		var rows []int
		count := 0
		for i := range records {
			if records[i].Cluster != key {
				continue
			}
			rows = append(rows, records[i].Row)
			if records[i].BelongsTo == "" && records[i].UsageType != "" {
				if count == 0 {
					usage = records[i].UsageType
				}
				count++
			}
		}

		if count != 1 {
			diags.Addf(types.SeverityWarning, types.PhaseCluster, rows,
				map[string]string{"cluster": key},
				"room cluster %q has %d authoritative usage rows, want exactly 1; "+
					"check that wall rows leave NetArea at 0 and UsageType empty, and that "+
					"BelongsToIdentifier matches the RoomIdentifier of the declaring row", key, count)
		}

		if usage == "" {
			continue
		}
		for i := range records {
			if records[i].Cluster == key {
				records[i].ClusterUsage = usage
			}
		}
	}
}

// checkZeroAreaUsage flags rows whose net area is zero or missing yet
// carry a usage label. Such a row was probably meant as a pure
// orientation row and the stray usage should be removed in the file.
func checkZeroAreaUsage(records []types.Record, diags *types.DiagnosticList) {
	for i := range records {
		rec := &records[i]
		area, ok := rec.NetArea.Float()
		if (area == 0 || !ok) && rec.UsageType != "" {
			diags.Addf(types.SeverityWarning, types.PhaseCluster, []int{rec.Row},
				map[string]string{"cluster": rec.Cluster, "usage": rec.UsageType},
				"row %d has zero or missing net area but states usage %q; "+
					"a pure wall/window row must leave UsageType empty", rec.Row, rec.UsageType)
		}
	}
}

// mapUsage resolves every cluster's raw usage label to its canonical
// usage category and names the record's zone after it. An unmapped
// label excludes the room from zoning; the run continues.
func mapUsage(records []types.Record, diags *types.DiagnosticList) {
	reported := make(map[string]bool)
	for i := range records {
		rec := &records[i]
		if rec.ClusterUsage == "" {
			continue
		}
		canonical, err := Canonical(rec.ClusterUsage)
		if err != nil {
			if !reported[rec.Cluster] {
				reported[rec.Cluster] = true
				diags.Addf(types.SeverityError, types.PhaseZoning, []int{rec.Row},
					map[string]string{"cluster": rec.Cluster, "usage": rec.ClusterUsage},
					"usage label %q of room cluster %q has no canonical category; "+
						"the room cannot be assigned to any zone", rec.ClusterUsage, rec.Cluster)
			}
			continue
		}
		rec.CanonicalUsage = canonical
		rec.Zone = canonical
	}
}
