// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Material holds the thermophysical properties of one layer material.
type Material struct {
	Name string `json:"name" yaml:"name"`

	// ThermalConduc is the conductivity in W/(mK).
	ThermalConduc float64 `json:"thermal_conduc" yaml:"thermal_conduc"`

	// Density in kg/m³.
	Density float64 `json:"density" yaml:"density"`

	// HeatCapac is the specific heat capacity in kJ/(kgK).
	HeatCapac float64 `json:"heat_capac" yaml:"heat_capac"`
}

// Layer is one slab of a construction's material stack.
type Layer struct {
	// Thickness in m.
	Thickness float64  `json:"thickness" yaml:"thickness"`
	Material  Material `json:"material" yaml:"material"`
}

// Construction is one entry of the construction-type catalog: an
// ordered layer stack (inner surface first) valid for a building age
// band, plus optional surface coefficient overrides.
type Construction struct {
	Name string `json:"name" yaml:"name"`

	// AgeGroup is the inclusive [begin, end] construction-year band
	// this entry applies to.
	AgeGroup [2]int `json:"building_age_group" yaml:"building_age_group"`

	// Surface coefficient overrides in W/(m²K). Zero means "use the
	// element kind's default".
	InnerConvection float64 `json:"inner_convection,omitempty" yaml:"inner_convection,omitempty"`
	InnerRadiation  float64 `json:"inner_radiation,omitempty" yaml:"inner_radiation,omitempty"`
	OuterConvection float64 `json:"outer_convection,omitempty" yaml:"outer_convection,omitempty"`
	OuterRadiation  float64 `json:"outer_radiation,omitempty" yaml:"outer_radiation,omitempty"`

	Layers []Layer `json:"layers" yaml:"layers"`
}

// Matches reports whether this entry covers the given construction year.
func (c Construction) Matches(name string, year int) bool {
	return c.Name == name && year >= c.AgeGroup[0] && year <= c.AgeGroup[1]
}

// UseConditions is the operational profile of a canonical usage
// category from the usage-condition catalog.
type UseConditions struct {
	Usage string `json:"usage" yaml:"usage"`

	// PersonsDensity in persons/m².
	PersonsDensity float64 `json:"persons_density" yaml:"persons_density"`

	// MachinesPower and LightingPower in W/m².
	MachinesPower float64 `json:"machines_power" yaml:"machines_power"`
	LightingPower float64 `json:"lighting_power" yaml:"lighting_power"`

	// Infiltration air change rate in 1/h.
	InfiltrationRate float64 `json:"infiltration_rate" yaml:"infiltration_rate"`

	// Setpoints in °C.
	HeatingSetpoint float64 `json:"heating_setpoint" yaml:"heating_setpoint"`
	CoolingSetpoint float64 `json:"cooling_setpoint" yaml:"cooling_setpoint"`
}
