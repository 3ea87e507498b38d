// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// CatalogConfig holds the paths of the external lookup catalogs.
type CatalogConfig struct {
	// ConstructionsPath is the YAML construction-type catalog
	// (keyed by construction name and building age band).
	ConstructionsPath string `json:"constructions_path" yaml:"constructions_path"`

	// UseConditionsPath is the YAML usage-condition catalog
	// (keyed by canonical usage category).
	UseConditionsPath string `json:"use_conditions_path" yaml:"use_conditions_path"`
}

// ImportConfig holds settings for one import run.
type ImportConfig struct {
	// File is the survey spreadsheet to import.
	File string `json:"file" yaml:"file"`

	// Sheets lists the sheet names to concatenate. Empty means the
	// first sheet only.
	Sheets []string `json:"sheets" yaml:"sheets"`

	// BuildingName names the resulting building.
	BuildingName string `json:"building_name" yaml:"building_name"`

	// YearOfConstruction keys the construction-type catalog lookups.
	YearOfConstruction int `json:"year_of_construction" yaml:"year_of_construction"`

	// RetrofitYear, when non-zero, applies the year-banded retrofit
	// rule to all insulation-capable elements before derivation.
	RetrofitYear int `json:"retrofit_year,omitempty" yaml:"retrofit_year,omitempty"`

	// Strict escalates to a run-level failure when any diagnostic
	// leaves a zone's or element's physical parameters undefined.
	Strict bool `json:"strict" yaml:"strict"`
}

// ThermalConfig holds settings for the network derivation.
type ThermalConfig struct {
	// TBt is the model period in days for the lumped parameter fit
	// (default 7).
	TBt float64 `json:"t_bt" yaml:"t_bt"`
}

// AuditConfig holds settings for the run audit store.
type AuditConfig struct {
	// DBPath is the SQLite database file recording import runs.
	// Empty disables audit persistence.
	DBPath string `json:"db_path" yaml:"db_path"`
}

// Config groups all settings of the zoning engine.
type Config struct {
	Catalogs CatalogConfig `json:"catalogs" yaml:"catalogs"`
	Import   ImportConfig  `json:"import" yaml:"import"`
	Thermal  ThermalConfig `json:"thermal" yaml:"thermal"`
	Audit    AuditConfig   `json:"audit" yaml:"audit"`
}
