// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package thermal

import (
	"errors"
	"fmt"

	"github.com/pdiddy/zoning-engine/pkg/types"
)

// ErrInvalidYear rejects retrofit years before the first insulation
// ordinance band.
var ErrInvalidYear = errors.New("retrofit year must be 1977 or later")

// ErrTargetMet reports that the element already conforms to the year
// band's target U-value, so no insulation layer was added.
var ErrTargetMet = errors.New("element already meets the target U-value")

// Fixed areal surface resistances used by the retrofit solve, m²K/W.
// These are the standard film values of the refurbishment ordinances,
// independent of the element's own surface coefficients.
const (
	retrofitRSi = 0.13
	retrofitRSe = 0.04
)

// DefaultInsulation is the material used when the caller does not name
// a replacement insulation.
var DefaultInsulation = types.Material{
	Name:          "MineralWool035",
	ThermalConduc: 0.035,
	Density:       80,
	HeatCapac:     0.84,
}

// retrofitBand is one year band of the refurbishment ordinances with
// its required U-value in W/(m²K).
type retrofitBand struct {
	from, to int
	target   float64
}

// retrofitBands follow the WSVO and EnEV requirement steps. The last
// band is open-ended.
var retrofitBands = []retrofitBand{
	{1977, 1981, 0.8},
	{1982, 1994, 0.7},
	{1995, 2001, 0.5},
	{2002, 2008, 0.4},
	{2009, 2013, 0.3},
	{2014, 0, 0.3},
}

// TargetUValue returns the required U-value for a retrofit year.
func TargetUValue(year int) (float64, error) {
	if year < retrofitBands[0].from {
		return 0, fmt.Errorf("year %d: %w", year, ErrInvalidYear)
	}
	for _, b := range retrofitBands {
		if year >= b.from && (b.to == 0 || year <= b.to) {
			return b.target, nil
		}
	}
	return 0, fmt.Errorf("year %d: %w", year, ErrInvalidYear)
}

// Retrofit appends an insulation layer at the outermost position of
// the element's stack, sized so the overall U-value (with the fixed
// retrofit surface resistances) hits the year band's target. The
// element's derived parameters are invalidated; Derive must be re-run.
//
// A nil material selects DefaultInsulation. Elements that already meet
// the target are left unchanged and ErrTargetMet is returned.
func Retrofit(el *types.BuildingElement, year int, material *types.Material) (types.Layer, error) {
	target, err := TargetUValue(year)
	if err != nil {
		return types.Layer{}, err
	}
	if !el.Resolved {
		return types.Layer{}, fmt.Errorf("element %s: %w", el.Name, ErrUnresolvedConstruction)
	}

	mat := DefaultInsulation
	if material != nil {
		mat = *material
	}
	if mat.ThermalConduc <= 0 {
		return types.Layer{}, fmt.Errorf("insulation material %q has non-positive conductivity", mat.Name)
	}

	existing := retrofitRSi + arealConductiveResistance(el.Layers) + retrofitRSe
	required := 1/target - existing
	if required <= 0 {
		return types.Layer{}, fmt.Errorf("element %s: U-value %.3f already at or below target %.3f: %w",
			el.Name, 1/existing, target, ErrTargetMet)
	}

	layer := types.Layer{
		Thickness: mat.ThermalConduc * required,
		Material:  mat,
	}
	el.Layers = append(el.Layers, layer)
	el.Params = nil
	el.UValue = 0
	el.UAValue = 0
	return layer, nil
}

// RetrofitUValue computes an element stack's U-value with the fixed
// retrofit surface resistances, the quantity the retrofit solve
// targets.
func RetrofitUValue(layers []types.Layer) float64 {
	r := retrofitRSi + arealConductiveResistance(layers) + retrofitRSe
	return 1 / r
}

// Retrofittable reports whether the element kind takes an exterior
// insulation layer.
func Retrofittable(kind types.ElementKind) bool {
	switch kind {
	case types.KindOuterWall, types.KindRooftop, types.KindGroundFloor:
		return true
	}
	return false
}
