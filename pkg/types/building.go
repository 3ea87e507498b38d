// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ElementKind identifies the physical role of an envelope element.
type ElementKind string

const (
	KindOuterWall   ElementKind = "outer_wall"
	KindWindow      ElementKind = "window"
	KindGroundFloor ElementKind = "ground_floor"
	KindFloor       ElementKind = "floor"
	KindRooftop     ElementKind = "rooftop"
	KindCeiling     ElementKind = "ceiling"
	KindInnerWall   ElementKind = "inner_wall"
)

// Orientation sentinels for horizontal elements that carry no azimuth.
const (
	OrientationFloorLike   = -2.0 // ground floor, floor
	OrientationCeilingLike = -1.0 // rooftop, ceiling
)

// ThermalNetworkParameters are the lumped resistances and capacitances
// of the 3R/2C analogous model (VDI 6007 style). Resistances in K/W,
// capacitances in J/K.
type ThermalNetworkParameters struct {
	R1     float64 `json:"r1" yaml:"r1"`
	R2     float64 `json:"r2" yaml:"r2"`
	R3     float64 `json:"r3" yaml:"r3"`
	C1     float64 `json:"c1" yaml:"c1"`
	C2     float64 `json:"c2" yaml:"c2"`
	C1Korr float64 `json:"c1_korr" yaml:"c1_korr"`
}

// BuildingElement is one aggregated envelope construct of a Zone.
// Elements reference their zone by id; there are no back-pointers.
type BuildingElement struct {
	ZoneID string      `json:"zone_id" yaml:"zone_id"`
	Kind   ElementKind `json:"kind" yaml:"kind"`
	Name   string      `json:"name" yaml:"name"`

	Area        float64 `json:"area" yaml:"area"`
	Tilt        float64 `json:"tilt" yaml:"tilt"`
	Orientation float64 `json:"orientation" yaml:"orientation"`

	Construction string `json:"construction" yaml:"construction"`

	// Combined heat transfer coefficients in W/(m²K). Outer values are
	// zero for interior-facing kinds (inner wall, floor, ceiling,
	// ground floor).
	InnerConvection float64 `json:"inner_convection" yaml:"inner_convection"`
	InnerRadiation  float64 `json:"inner_radiation" yaml:"inner_radiation"`
	OuterConvection float64 `json:"outer_convection" yaml:"outer_convection"`
	OuterRadiation  float64 `json:"outer_radiation" yaml:"outer_radiation"`

	// Layers is the resolved material stack, inner surface first.
	// Nil when the construction lookup missed; such elements keep
	// Params nil and fail any downstream consumer.
	Layers   []Layer `json:"layers,omitempty" yaml:"layers,omitempty"`
	Resolved bool    `json:"resolved" yaml:"resolved"`

	// Rows lists the spreadsheet rows that contributed to this element,
	// for diagnostics and audit.
	Rows []int `json:"rows,omitempty" yaml:"rows,omitempty"`

	Params *ThermalNetworkParameters `json:"params,omitempty" yaml:"params,omitempty"`

	// UValue is the areal transmittance in W/(m²K); UAValue = Area·U.
	UValue  float64 `json:"u_value" yaml:"u_value"`
	UAValue float64 `json:"ua_value" yaml:"ua_value"`
}

// AHUFlow is the supply air flow assigned to a zone, in m³/(h·m²).
type AHUFlow struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// Zone aggregates all rooms whose resolved usage maps to the same
// canonical usage category. It owns its elements exclusively.
type Zone struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"` // the canonical usage category

	Area   float64 `json:"area" yaml:"area"`     // m², sum of member net areas
	Volume float64 `json:"volume" yaml:"volume"` // m³, sum of per-row area×height

	Usage UseConditions `json:"usage" yaml:"usage"`
	AHU   AHUFlow       `json:"ahu" yaml:"ahu"`

	Elements []BuildingElement `json:"elements" yaml:"elements"`
}

// Building is the object graph one import run produces. It is built
// once per run and never mutated afterward, except by the optional
// retrofit step that replaces element layer stacks before derivation.
type Building struct {
	Name               string `json:"name" yaml:"name"`
	YearOfConstruction int    `json:"year_of_construction" yaml:"year_of_construction"`
	YearOfRetrofit     int    `json:"year_of_retrofit,omitempty" yaml:"year_of_retrofit,omitempty"`

	Zones []Zone `json:"zones" yaml:"zones"`
}

// TotalArea sums the zone areas.
func (b *Building) TotalArea() float64 {
	var sum float64
	for _, z := range b.Zones {
		sum += z.Area
	}
	return sum
}

// TotalVolume sums the zone volumes.
func (b *Building) TotalVolume() float64 {
	var sum float64
	for _, z := range b.Zones {
		sum += z.Volume
	}
	return sum
}
