// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package thermal

import (
	"errors"
	"math"
	"testing"

	"github.com/pdiddy/zoning-engine/pkg/types"
)

var (
	brick = types.Material{Name: "Brick", ThermalConduc: 0.8, Density: 1800, HeatCapac: 0.92}
	insul = types.Material{Name: "Insulation", ThermalConduc: 0.04, Density: 50, HeatCapac: 0.84}
)

// wallElement is a resolved outer wall with a plaster-free two-layer
// stack, inner surface first.
func wallElement() *types.BuildingElement {
	return &types.BuildingElement{
		ZoneID: "z1", Kind: types.KindOuterWall, Name: "outer_wall_90_heavy_wall",
		Area:            24,
		InnerConvection: 2.7, InnerRadiation: 5,
		OuterConvection: 20, OuterRadiation: 5,
		Resolved: true,
		Layers: []types.Layer{
			{Thickness: 0.3, Material: brick},
			{Thickness: 0.1, Material: insul},
		},
	}
}

// --- derivation ---

func TestDeriveClosesResistanceSum(t *testing.T) {
	el := wallElement()
	if err := Derive(el, DefaultTBt); err != nil {
		t.Fatal(err)
	}
	p := el.Params
	if p == nil {
		t.Fatal("Params not set")
	}

	rCond := (0.3/0.8 + 0.1/0.04) / 24.0
	rInner := 1 / ((2.7 + 5) * 24.0)
	rOuter := 1 / ((20 + 5) * 24.0)
	rTotal := rInner + rCond + rOuter

	sum := p.R1 + p.R2 + p.R3
	if math.Abs(sum-rTotal) > 1e-12 {
		t.Errorf("r1+r2+r3 = %g, want total resistance %g", sum, rTotal)
	}
}

func TestDeriveParametersInRange(t *testing.T) {
	el := wallElement()
	if err := Derive(el, DefaultTBt); err != nil {
		t.Fatal(err)
	}
	p := el.Params

	for name, v := range map[string]float64{
		"r1": p.R1, "r2": p.R2, "r3": p.R3,
		"c1": p.C1, "c2": p.C2, "c1_korr": p.C1Korr,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			t.Errorf("%s = %g, want finite and non-negative", name, v)
		}
	}
	if p.C1 <= 0 || p.C2 <= 0 {
		t.Errorf("massive wall must store heat on both sides: c1=%g c2=%g", p.C1, p.C2)
	}
	if p.C1Korr > p.C1 {
		t.Errorf("c1_korr = %g exceeds c1 = %g", p.C1Korr, p.C1)
	}
}

func TestDeriveUValue(t *testing.T) {
	el := wallElement()
	if err := Derive(el, DefaultTBt); err != nil {
		t.Fatal(err)
	}

	want := 1 / (1/(2.7+5) + 0.3/0.8 + 0.1/0.04 + 1/(20.0+5))
	if math.Abs(el.UValue-want) > 1e-12 {
		t.Errorf("UValue = %g, want %g", el.UValue, want)
	}
	if math.Abs(el.UAValue-el.UValue*24) > 1e-12 {
		t.Errorf("UAValue = %g, want area-scaled %g", el.UAValue, el.UValue*24)
	}
}

func TestDeriveInteriorElementOmitsOuterFilm(t *testing.T) {
	el := wallElement()
	el.Kind = types.KindInnerWall
	el.OuterConvection = 0
	el.OuterRadiation = 0

	if err := Derive(el, DefaultTBt); err != nil {
		t.Fatal(err)
	}

	rCond := (0.3/0.8 + 0.1/0.04) / 24.0
	rInner := 1 / ((2.7 + 5) * 24.0)
	sum := el.Params.R1 + el.Params.R2 + el.Params.R3
	if math.Abs(sum-(rInner+rCond)) > 1e-12 {
		t.Errorf("resistance sum = %g, want %g without outer film", sum, rInner+rCond)
	}
}

func TestDeriveMasslessStack(t *testing.T) {
	el := wallElement()
	el.Layers = []types.Layer{
		{Thickness: 0.024, Material: types.Material{Name: "Air", ThermalConduc: 0.13, Density: 0, HeatCapac: 0}},
	}
	if err := Derive(el, DefaultTBt); err != nil {
		t.Fatal(err)
	}
	p := el.Params
	if p.C1 != 0 || p.C2 != 0 || p.R1 != 0 || p.R2 != 0 {
		t.Errorf("massless stack must not store heat: %+v", p)
	}
	rTotal := 1/((2.7+5)*24.0) + 0.024/(0.13*24.0) + 1/((20.0+5)*24.0)
	if math.Abs(p.R3-rTotal) > 1e-12 {
		t.Errorf("r3 = %g, want full resistance %g", p.R3, rTotal)
	}
}

func TestDeriveZeroPeriodFallsBackToDefault(t *testing.T) {
	el := wallElement()
	if err := Derive(el, 0); err != nil {
		t.Fatal(err)
	}
	withDefault := wallElement()
	if err := Derive(withDefault, DefaultTBt); err != nil {
		t.Fatal(err)
	}
	if el.Params.R1 != withDefault.Params.R1 {
		t.Errorf("r1 = %g, want %g (default period)", el.Params.R1, withDefault.Params.R1)
	}
}

func TestDerivePeriodChangesSplit(t *testing.T) {
	// A different excitation period must move the R split but never the
	// total.
	slow := wallElement()
	if err := Derive(slow, 30); err != nil {
		t.Fatal(err)
	}
	fast := wallElement()
	if err := Derive(fast, 1); err != nil {
		t.Fatal(err)
	}
	if slow.Params.R1 == fast.Params.R1 {
		t.Error("r1 identical across periods, expected a different fit")
	}
	sumSlow := slow.Params.R1 + slow.Params.R2 + slow.Params.R3
	sumFast := fast.Params.R1 + fast.Params.R2 + fast.Params.R3
	if math.Abs(sumSlow-sumFast) > 1e-12 {
		t.Errorf("resistance totals differ across periods: %g vs %g", sumSlow, sumFast)
	}
}

// --- input validation ---

func TestDeriveRejectsBadElements(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*types.BuildingElement)
		errIs  error
	}{
		{"unresolved", func(el *types.BuildingElement) { el.Resolved = false }, ErrUnresolvedConstruction},
		{"empty stack", func(el *types.BuildingElement) { el.Layers = nil }, nil},
		{"zero area", func(el *types.BuildingElement) { el.Area = 0 }, nil},
		{"negative thickness", func(el *types.BuildingElement) { el.Layers[0].Thickness = -0.1 }, nil},
		{"zero conductivity", func(el *types.BuildingElement) { el.Layers[0].Material.ThermalConduc = 0 }, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el := wallElement()
			tt.mutate(el)
			err := Derive(el, DefaultTBt)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.errIs != nil && !errors.Is(err, tt.errIs) {
				t.Errorf("error = %v, want %v", err, tt.errIs)
			}
			if el.Params != nil {
				t.Error("Params set despite error")
			}
		})
	}
}
