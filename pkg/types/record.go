// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Column headers of the survey spreadsheet. Header matching is exact,
// including the unit suffixes.
const (
	ColRoomIdentifier        = "RoomIdentifier"
	ColBelongsToIdentifier   = "BelongsToIdentifier"
	ColUsageType             = "UsageType"
	ColNetArea               = "NetArea[m²]"
	ColHeatedRoomHeight      = "HeatedRoomHeight[m]"
	ColWallAdjacentTo        = "WallAdjacentTo"
	ColOuterWallOrientation  = "OuterWallOrientation[°]"
	ColOuterWallArea         = "OuterWallArea[m²]"
	ColOuterWallConstruction = "OuterWallConstruction"
	ColWindowOrientation     = "WindowOrientation[°]"
	ColWindowArea            = "WindowArea[m²]"
	ColWindowConstruction    = "WindowConstruction"
	ColIsGroundFloor         = "IsGroundFloor"
	ColFloorConstruction     = "FloorConstruction"
	ColIsRooftop             = "IsRooftop"
	ColCeilingConstruction   = "CeilingConstruction"
	ColInnerWallArea         = "InnerWallArea[m²]"
	ColInnerWallConstruction = "InnerWallConstruction"
)

// RawTable is the untyped spreadsheet content: one header row plus data
// rows from one or several concatenated sheets. Row indices are already
// synchronized to the spreadsheet's own numbering.
type RawTable struct {
	Columns []string
	Rows    []RawRow
}

// RawRow is one data row. Index is the row number as shown in the
// spreadsheet application, so diagnostics point at the cell the author
// sees. Cells are aligned with RawTable.Columns.
type RawRow struct {
	Sheet string
	Index int
	Cells []string
}

// Value is an optional numeric cell. Present reports whether the source
// cell held anything after missing-token canonicalization; Valid whether
// the content parsed as a number. A present-but-invalid value is kept so
// later phases can report the offending raw text.
type Value struct {
	Raw     string  `json:"raw,omitempty" yaml:"raw,omitempty"`
	Num     float64 `json:"num" yaml:"num"`
	Present bool    `json:"present" yaml:"present"`
	Valid   bool    `json:"valid" yaml:"valid"`
}

// Missing reports whether the cell was empty or a recognized n/a token.
func (v Value) Missing() bool { return !v.Present }

// Float returns the numeric value and whether it is usable.
func (v Value) Float() (float64, bool) {
	if !v.Present || !v.Valid {
		return 0, false
	}
	return v.Num, true
}

// Or returns the numeric value, or fallback when the cell is missing or
// non-numeric.
func (v Value) Or(fallback float64) float64 {
	if f, ok := v.Float(); ok {
		return f
	}
	return fallback
}

// Surface holds one element-kind triple of a record: orientation in
// degrees clockwise from north, area, and construction name.
type Surface struct {
	Orientation  Value  `json:"orientation" yaml:"orientation"`
	Area         Value  `json:"area" yaml:"area"`
	Construction string `json:"construction,omitempty" yaml:"construction,omitempty"`
}

// Record is one normalized input row. A record either declares a new
// room or, when BelongsTo is set, contributes an additional wall/window
// orientation to an already-declared room. Back-reference rows must
// leave UsageType and NetArea unset.
//
// The Cluster, ClusterUsage, CanonicalUsage and Zone fields are empty
// after normalization and filled in by the clustering phase; everything
// else is immutable once normalized.
type Record struct {
	Sheet string `json:"sheet,omitempty" yaml:"sheet,omitempty"`
	Row   int    `json:"row" yaml:"row"`

	RoomID    string `json:"room_id" yaml:"room_id"`
	BelongsTo string `json:"belongs_to,omitempty" yaml:"belongs_to,omitempty"`
	UsageType string `json:"usage_type,omitempty" yaml:"usage_type,omitempty"`

	NetArea Value `json:"net_area" yaml:"net_area"`
	Height  Value `json:"height" yaml:"height"`

	// WallAdjacentTo marks an "outer wall" that faces another
	// conditioned zone instead of the ambient. The clustering phase
	// reclassifies such walls as inner-wall area.
	WallAdjacentTo string `json:"wall_adjacent_to,omitempty" yaml:"wall_adjacent_to,omitempty"`

	OuterWall Surface `json:"outer_wall" yaml:"outer_wall"`
	Window    Surface `json:"window" yaml:"window"`

	IsGroundFloor     Value  `json:"is_ground_floor" yaml:"is_ground_floor"`
	FloorConstruction string `json:"floor_construction,omitempty" yaml:"floor_construction,omitempty"`

	IsRooftop           Value  `json:"is_rooftop" yaml:"is_rooftop"`
	CeilingConstruction string `json:"ceiling_construction,omitempty" yaml:"ceiling_construction,omitempty"`

	InnerWallArea         Value  `json:"inner_wall_area" yaml:"inner_wall_area"`
	InnerWallConstruction string `json:"inner_wall_construction,omitempty" yaml:"inner_wall_construction,omitempty"`

	// Derived by the clustering phase.
	Cluster        string `json:"cluster,omitempty" yaml:"cluster,omitempty"`
	ClusterUsage   string `json:"cluster_usage,omitempty" yaml:"cluster_usage,omitempty"`
	CanonicalUsage string `json:"canonical_usage,omitempty" yaml:"canonical_usage,omitempty"`
	Zone           string `json:"zone,omitempty" yaml:"zone,omitempty"`
}
