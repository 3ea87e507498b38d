// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package aggregate turns clustered records into the zone/element
// object graph: per-zone totals, orientation- and construction-grouped
// envelope elements with apportioned areas, catalog resolution, and
// AHU flow assignment.
package aggregate

import (
	"fmt"
	"strconv"

	"github.com/pdiddy/zoning-engine/internal/catalog"
	"github.com/pdiddy/zoning-engine/pkg/types"
)

// Fixed tilts per element kind, degrees against horizontal.
const (
	tiltVertical   = 90.0
	tiltHorizontal = 0.0
)

// surfaceDefaults are the kind-dependent combined heat transfer
// coefficients in W/(m²K). Outer coefficients are zero for kinds facing
// another conditioned space or the ground.
var surfaceDefaults = map[types.ElementKind]struct {
	innerConv, innerRad, outerConv, outerRad float64
}{
	types.KindOuterWall:   {2.7, 5.0, 20.0, 5.0},
	types.KindWindow:      {1.7, 5.0, 20.0, 5.0},
	types.KindRooftop:     {1.7, 5.0, 20.0, 5.0},
	types.KindGroundFloor: {1.7, 5.0, 0, 0},
	types.KindFloor:       {1.7, 5.0, 0, 0},
	types.KindCeiling:     {1.7, 5.0, 0, 0},
	types.KindInnerWall:   {1.7, 5.0, 0, 0},
}

// BuildZones aggregates the clustered records of one import run into a
// Building. Records whose zone is unset (rooms excluded during usage
// mapping) contribute nothing. Elements are resolved against the
// construction-type catalog using the building construction year; a
// lookup miss keeps the element with undefined network parameters.
func BuildZones(records []types.Record, cons *catalog.Constructions, ucs *catalog.UseConditionsCatalog, name string, year int) (*types.Building, types.DiagnosticList) {
	var diags types.DiagnosticList

	b := &types.Building{
		Name:               name,
		YearOfConstruction: year,
	}

	for zi, zoneName := range zoneOrder(records) {
		var members []types.Record
		for _, rec := range records {
			if rec.Zone == zoneName {
				members = append(members, rec)
			}
		}

		zone := types.Zone{
			ID:   fmt.Sprintf("z%d", zi+1),
			Name: zoneName,
		}

		// Room-wise totals. Every row contributes its own area×height
		// term, so a room spread over several orientation rows sums
		// per-row volumes.
		for _, rec := range members {
			area := rec.NetArea.Or(0)
			zone.Area += area
			zone.Volume += area * rec.Height.Or(0)
		}
		checkHeightConsistency(members, zoneName, &diags)

		if uc, ok := ucs.Lookup(zoneName); ok {
			zone.Usage = uc
		}
		zone.AHU = lookupAHU(zoneName, &diags)

		builder := elementBuilder{
			zone:  &zone,
			cons:  cons,
			year:  year,
			diags: &diags,
		}
		builder.outerWallsAndWindows(members)
		builder.floors(members)
		builder.rooftops(members)
		builder.innerWalls(members)

		b.Zones = append(b.Zones, zone)
	}

	return b, diags
}

// zoneOrder returns zone names in order of first appearance.
func zoneOrder(records []types.Record) []string {
	seen := make(map[string]bool)
	var order []string
	for _, rec := range records {
		if rec.Zone == "" || seen[rec.Zone] {
			continue
		}
		seen[rec.Zone] = true
		order = append(order, rec.Zone)
	}
	return order
}

// checkHeightConsistency reports rooms whose rows state differing
// heated heights. The volume total keeps summing per-row terms either
// way; the report surfaces the latent double-count risk.
func checkHeightConsistency(members []types.Record, zoneName string, diags *types.DiagnosticList) {
	type stat struct {
		first float64
		rows  []int
		mixed bool
	}
	perRoom := make(map[string]*stat)
	var order []string
	for _, rec := range members {
		h, ok := rec.Height.Float()
		if !ok {
			continue
		}
		s := perRoom[rec.Cluster]
		if s == nil {
			s = &stat{first: h}
			perRoom[rec.Cluster] = s
			order = append(order, rec.Cluster)
		}
		s.rows = append(s.rows, rec.Row)
		if h != s.first {
			s.mixed = true
		}
	}
	for _, room := range order {
		s := perRoom[room]
		if s.mixed {
			diags.Addf(types.SeverityInfo, types.PhaseAggregate, s.rows,
				map[string]string{"zone": zoneName, "cluster": room},
				"room %q states differing heated heights across its rows; "+
					"zone volume sums each row's area×height term as entered", room)
		}
	}
}

// elementBuilder accumulates the envelope elements of one zone.
type elementBuilder struct {
	zone  *types.Zone
	cons  *catalog.Constructions
	year  int
	diags *types.DiagnosticList
}

// group is one (key, construction) bucket of records.
type group struct {
	orientation types.Value // for orientation-keyed kinds
	flag        types.Value // for flag-keyed kinds
	construction string
	area         float64
	rows         []int
}

// groupKey canonicalizes the non-construction part of a grouping key.
// Valid numerics group by value so "90" and "90.0" fall together;
// invalid ones group by raw text so the diagnostic names them once.
func groupKey(v types.Value, construction string) string {
	if f, ok := v.Float(); ok {
		return strconv.FormatFloat(f, 'g', -1, 64) + "|" + construction
	}
	return "!" + v.Raw + "|" + construction
}

// collect buckets records by (keyOf, constructionOf), skipping records
// where either part is missing, and sums areaOf per bucket. Buckets
// keep first-appearance order.
func collect(members []types.Record,
	keyOf func(types.Record) types.Value,
	constructionOf func(types.Record) string,
	areaOf func(types.Record) types.Value,
) []group {
	index := make(map[string]int)
	var groups []group
	for _, rec := range members {
		key := keyOf(rec)
		construction := constructionOf(rec)
		if !key.Present || construction == "" {
			continue
		}
		k := groupKey(key, construction)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, group{orientation: key, flag: key, construction: construction})
		}
		groups[i].area += areaOf(rec).Or(0)
		groups[i].rows = append(groups[i].rows, rec.Row)
	}
	return groups
}

// newElement creates an element with its kind defaults, applying the
// resolved construction's surface coefficient overrides when set.
func (b *elementBuilder) newElement(kind types.ElementKind, name string, area, tilt, orientation float64, construction string, rows []int) types.BuildingElement {
	def := surfaceDefaults[kind]
	el := types.BuildingElement{
		ZoneID:          b.zone.ID,
		Kind:            kind,
		Name:            name,
		Area:            area,
		Tilt:            tilt,
		Orientation:     orientation,
		Construction:    construction,
		InnerConvection: def.innerConv,
		InnerRadiation:  def.innerRad,
		OuterConvection: def.outerConv,
		OuterRadiation:  def.outerRad,
		Rows:            rows,
	}

	if entry, ok := b.cons.Resolve(construction, b.year); ok {
		el.Layers = entry.Layers
		el.Resolved = true
		if entry.InnerConvection > 0 {
			el.InnerConvection = entry.InnerConvection
		}
		if entry.InnerRadiation > 0 {
			el.InnerRadiation = entry.InnerRadiation
		}
		if entry.OuterConvection > 0 {
			el.OuterConvection = entry.OuterConvection
		}
		if entry.OuterRadiation > 0 {
			el.OuterRadiation = entry.OuterRadiation
		}
	} else {
		b.diags.Addf(types.SeverityError, types.PhaseAggregate, rows,
			map[string]string{
				"zone":         b.zone.Name,
				"kind":         string(kind),
				"construction": construction,
			},
			"in zone %q the %s construction %q was not found in the construction-type "+
				"catalog for year %d; the element is kept but its network parameters stay "+
				"undefined and downstream model loading will fail; check spelling and the "+
				"age band coverage, offending rows %v", b.zone.Name, kind, construction, b.year, rows)
	}
	return el
}

// outerWallsAndWindows builds the orientation-keyed kinds: one element
// per (orientation, construction) group with a positive summed area.
// Non-numeric orientations are rejected here, at the boundary, instead
// of deep in the aggregation.
func (b *elementBuilder) outerWallsAndWindows(members []types.Record) {
	type surfaceKind struct {
		kind      types.ElementKind
		surfaceOf func(types.Record) types.Surface
	}
	for _, sk := range []surfaceKind{
		{types.KindOuterWall, func(r types.Record) types.Surface { return r.OuterWall }},
		{types.KindWindow, func(r types.Record) types.Surface { return r.Window }},
	} {
		groups := collect(members,
			func(r types.Record) types.Value { return sk.surfaceOf(r).Orientation },
			func(r types.Record) string { return sk.surfaceOf(r).Construction },
			func(r types.Record) types.Value { return sk.surfaceOf(r).Area },
		)
		for _, g := range groups {
			orientation, ok := g.orientation.Float()
			if !ok {
				b.diags.Addf(types.SeverityWarning, types.PhaseAggregate, g.rows,
					map[string]string{
						"zone":         b.zone.Name,
						"kind":         string(sk.kind),
						"orientation":  g.orientation.Raw,
						"construction": g.construction,
					},
					"in zone %q the %s orientation %q is not numeric; the element is not created, "+
						"offending rows %v", b.zone.Name, sk.kind, g.orientation.Raw, g.rows)
				continue
			}
			if g.area <= 0 {
				continue
			}
			name := fmt.Sprintf("%s_%d_%s", sk.kind, int(orientation), g.construction)
			el := b.newElement(sk.kind, name, g.area, tiltVertical, orientation, g.construction, g.rows)
			b.zone.Elements = append(b.zone.Elements, el)
		}
	}
}

// floors builds ground floors and floors from the (IsGroundFloor,
// FloorConstruction) groups over the member net areas. Flag 1 keeps
// the full area (ground contact), flag 0 halves it (shared with the
// zone below).
func (b *elementBuilder) floors(members []types.Record) {
	groups := collect(members,
		func(r types.Record) types.Value { return r.IsGroundFloor },
		func(r types.Record) string { return r.FloorConstruction },
		func(r types.Record) types.Value { return r.NetArea },
	)
	for _, g := range groups {
		b.flatElement(g, flatSpec{
			flagName:  types.ColIsGroundFloor,
			fullKind:  types.KindGroundFloor,
			halfKind:  types.KindFloor,
			sentinel:  types.OrientationFloorLike,
			noneLabel: "floor nor ground floor",
		})
	}
}

// rooftops builds rooftops and ceilings from the (IsRooftop,
// CeilingConstruction) groups, symmetric to floors: flag 1 keeps the
// full area (nothing above), flag 0 halves it (shared with the zone
// above).
func (b *elementBuilder) rooftops(members []types.Record) {
	groups := collect(members,
		func(r types.Record) types.Value { return r.IsRooftop },
		func(r types.Record) string { return r.CeilingConstruction },
		func(r types.Record) types.Value { return r.NetArea },
	)
	for _, g := range groups {
		b.flatElement(g, flatSpec{
			flagName:  types.ColIsRooftop,
			fullKind:  types.KindRooftop,
			halfKind:  types.KindCeiling,
			sentinel:  types.OrientationCeilingLike,
			noneLabel: "ceiling nor rooftop",
		})
	}
}

// flatSpec parametrizes the two symmetric horizontal kinds.
type flatSpec struct {
	flagName  string
	fullKind  types.ElementKind
	halfKind  types.ElementKind
	sentinel  float64
	noneLabel string
}

func (b *elementBuilder) flatElement(g group, spec flatSpec) {
	if g.area == 0 {
		b.diags.Addf(types.SeverityWarning, types.PhaseAggregate, g.rows,
			map[string]string{
				"zone":         b.zone.Name,
				"flag":         g.flag.Raw,
				"construction": g.construction,
			},
			"zone %q with %s %q and construction %q has no %s, since the area equals 0",
			b.zone.Name, spec.flagName, g.flag.Raw, g.construction, spec.noneLabel)
		return
	}

	flag, ok := g.flag.Float()
	if !ok || (flag != 0 && flag != 1) {
		b.diags.Addf(types.SeverityWarning, types.PhaseAggregate, g.rows,
			map[string]string{
				"zone":         b.zone.Name,
				"flag":         g.flag.Raw,
				"construction": g.construction,
			},
			"values for %s have to be either 0 or 1, for no or yes respectively; got %q, "+
				"element not created", spec.flagName, g.flag.Raw)
		return
	}

	kind := spec.halfKind
	area := g.area / 2 // shared with the adjacent story
	if flag == 1 {
		kind = spec.fullKind
		area = g.area
	}
	name := fmt.Sprintf("%s_%s", kind, g.construction)
	el := b.newElement(kind, name, area, tiltHorizontal, spec.sentinel, g.construction, g.rows)
	b.zone.Elements = append(b.zone.Elements, el)
}

// innerWalls builds one element per inner-wall construction; only half
// the summed area belongs to this zone, the other half to the adjacent
// room.
func (b *elementBuilder) innerWalls(members []types.Record) {
	index := make(map[string]int)
	var groups []group
	for _, rec := range members {
		if rec.InnerWallConstruction == "" {
			continue
		}
		i, ok := index[rec.InnerWallConstruction]
		if !ok {
			i = len(groups)
			index[rec.InnerWallConstruction] = i
			groups = append(groups, group{construction: rec.InnerWallConstruction})
		}
		groups[i].area += rec.InnerWallArea.Or(0)
		groups[i].rows = append(groups[i].rows, rec.Row)
	}

	for _, g := range groups {
		if g.area == 0 {
			b.diags.Addf(types.SeverityWarning, types.PhaseAggregate, g.rows,
				map[string]string{"zone": b.zone.Name, "construction": g.construction},
				"zone %q with inner wall construction %q has no inner walls, since area = 0",
				b.zone.Name, g.construction)
			continue
		}
		name := fmt.Sprintf("%s_%s", types.KindInnerWall, g.construction)
		el := b.newElement(types.KindInnerWall, name, g.area/2, tiltVertical, 0, g.construction, g.rows)
		b.zone.Elements = append(b.zone.Elements, el)
	}
}
