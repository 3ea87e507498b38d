// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package aggregate

import "github.com/pdiddy/zoning-engine/pkg/types"

// AHUFlows is the static supply-flow table: canonical usage category →
// (min, max) flow in m³/(h·m²). Like the usage mapping it encodes
// domain policy and lives in the engine, not in a catalog file.
var AHUFlows = map[string]types.AHUFlow{
	"Bed room":                           {Min: 15.778, Max: 15.778},
	"Corridors in the general care area": {Min: 5.2941, Max: 5.2941},
	"Examination- or treatment room":     {Min: 15.743, Max: 15.743},
	"Meeting, Conference, seminar":       {Min: 16.036, Max: 16.036},
	"Stock, technical equipment, archives": {Min: 20.484, Max: 20.484},
	"WC and sanitary rooms in non-residential buildings": {Min: 27.692, Max: 27.692},
}

// lookupAHU returns the zone's supply flow, defaulting to (0, 0) with
// a diagnostic when the usage category is not in the table.
func lookupAHU(zoneName string, diags *types.DiagnosticList) types.AHUFlow {
	if flow, ok := AHUFlows[zoneName]; ok {
		return flow
	}
	diags.Addf(types.SeverityWarning, types.PhaseAggregate, nil,
		map[string]string{"zone": zoneName},
		"zone %q has no entry in the AHU flow table; no AHU flow is defined and the "+
			"default (min 0, max 0) applies", zoneName)
	return types.AHUFlow{}
}
