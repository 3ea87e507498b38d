// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package thermal derives the lumped 3R/2C network parameters of
// building elements from their material layer stacks (VDI 6007 style)
// and applies the year-banded retrofit rule.
package thermal

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/pdiddy/zoning-engine/pkg/types"
)

// ErrUnresolvedConstruction marks an element whose construction lookup
// missed; its parameters must stay undefined and any consumer has to
// treat that as a hard error.
var ErrUnresolvedConstruction = errors.New("construction not resolved, network parameters undefined")

// DefaultTBt is the model period in days used for the lumped fit when
// the configuration does not override it.
const DefaultTBt = 7.0

// secondsPerDay for the excitation period.
const secondsPerDay = 86400.0

// Derive computes the element's lumped network parameters from its
// resolved layer stack and surface coefficients, and its U/UA values.
//
// The layer stack is modeled as a chain of thermal two-ports under
// periodic excitation with period TBt days. The chain matrix's
// T-network decomposition yields a series RC branch per surface:
// (r1, c1) toward the zone and (r2, c2) toward the ambient or adjacent
// zone. r3 closes the sum so that r1+r2+r3 equals the element's total
// resistance including the combined surface films. c1_korr attenuates
// c1 for asymmetric excitation acting through r1.
func Derive(el *types.BuildingElement, tbt float64) error {
	if !el.Resolved {
		return fmt.Errorf("element %s: %w", el.Name, ErrUnresolvedConstruction)
	}
	if len(el.Layers) == 0 {
		return fmt.Errorf("element %s: empty layer stack", el.Name)
	}
	if el.Area <= 0 {
		return fmt.Errorf("element %s: non-positive area %g", el.Name, el.Area)
	}
	for i, layer := range el.Layers {
		if layer.Thickness <= 0 {
			return fmt.Errorf("element %s: layer %d has non-positive thickness %g", el.Name, i, layer.Thickness)
		}
		if layer.Material.ThermalConduc <= 0 {
			return fmt.Errorf("element %s: layer %d material %q has non-positive conductivity", el.Name, i, layer.Material.Name)
		}
	}
	if tbt <= 0 {
		tbt = DefaultTBt
	}

	omega := 2 * math.Pi / (secondsPerDay * tbt)

	// Absolute conductive resistance and chain matrix, inner layer
	// first.
	var rCond float64
	a11 := complex(1, 0)
	a12 := complex(0, 0)
	a21 := complex(0, 0)
	a22 := complex(1, 0)
	for _, layer := range el.Layers {
		r := layer.Thickness / (layer.Material.ThermalConduc * el.Area)
		c := layer.Material.Density * layer.Material.HeatCapac * 1000 * layer.Thickness * el.Area
		rCond += r

		l11, l12, l21, l22 := layerMatrix(omega, r, c)
		a11, a12, a21, a22 =
			a11*l11+a12*l21,
			a11*l12+a12*l22,
			a21*l11+a22*l21,
			a21*l12+a22*l22
	}

	rInner := surfaceResistance(el.InnerConvection, el.InnerRadiation, el.Area)
	rOuter := surfaceResistance(el.OuterConvection, el.OuterRadiation, el.Area)
	rTotal := rInner + rCond + rOuter

	params := &types.ThermalNetworkParameters{}
	if a21 == 0 {
		// Massless stack: no storage, the full resistance sits in r3.
		params.R3 = rTotal
	} else {
		r1, c1 := seriesRC(omega, (a11-1)/a21)
		r2, c2 := seriesRC(omega, (a22-1)/a21)
		params.R1 = r1
		params.C1 = c1
		params.R2 = r2
		params.C2 = c2
		params.R3 = rTotal - r1 - r2
		params.C1Korr = c1 / math.Sqrt(1+math.Pow(omega*r1*c1, 2))
	}

	for _, v := range []float64{params.R1, params.R2, params.R3, params.C1, params.C2, params.C1Korr} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("element %s: derived parameter out of range (%+v)", el.Name, *params)
		}
	}

	el.Params = params
	el.UValue = uValue(el)
	el.UAValue = el.UValue * el.Area
	return nil
}

// layerMatrix returns the thermal two-port chain matrix of one slab
// with absolute resistance r and capacity c at angular frequency
// omega. A massless slab degenerates to a pure resistance.
func layerMatrix(omega, r, c float64) (a11, a12, a21, a22 complex128) {
	xi := math.Sqrt(omega * r * c / 2)
	if xi == 0 {
		return 1, complex(r, 0), 0, 1
	}
	gd := complex(xi, xi)
	sinh := cmplx.Sinh(gd)
	a11 = cmplx.Cosh(gd)
	a12 = complex(r, 0) * sinh / gd
	a21 = gd * sinh / complex(r, 0)
	a22 = a11
	return a11, a12, a21, a22
}

// seriesRC interprets a complex branch impedance as a series
// resistor-capacitor pair. A non-capacitive imaginary part maps to
// zero capacity.
func seriesRC(omega float64, z complex128) (r, c float64) {
	r = real(z)
	if r < 0 {
		r = 0
	}
	if im := imag(z); im < 0 {
		c = -1 / (omega * im)
	}
	return r, c
}

// surfaceResistance converts combined convective and radiative
// coefficients into an absolute film resistance. Zero coefficients
// (interior-facing constructs) mean no film.
func surfaceResistance(conv, rad, area float64) float64 {
	h := conv + rad
	if h <= 0 {
		return 0
	}
	return 1 / (h * area)
}

// uValue computes the areal transmittance of the element from its
// layer stack and surface coefficients, in W/(m²K).
func uValue(el *types.BuildingElement) float64 {
	r := arealConductiveResistance(el.Layers)
	if h := el.InnerConvection + el.InnerRadiation; h > 0 {
		r += 1 / h
	}
	if h := el.OuterConvection + el.OuterRadiation; h > 0 {
		r += 1 / h
	}
	if r <= 0 {
		return 0
	}
	return 1 / r
}

// arealConductiveResistance sums the layer resistances per m².
func arealConductiveResistance(layers []types.Layer) float64 {
	var r float64
	for _, layer := range layers {
		r += layer.Thickness / layer.Material.ThermalConduc
	}
	return r
}
