// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeCatalog(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const constructionsYAML = `constructions:
  - name: heavy_wall
    building_age_group: [1950, 1983]
    layers:
      - thickness: 0.02
        material: {name: Plaster, thermal_conduc: 0.6, density: 1200, heat_capac: 1.0}
      - thickness: 0.3
        material: {name: Brick, thermal_conduc: 0.8, density: 1800, heat_capac: 0.92}
  - name: heavy_wall
    building_age_group: [1984, 2020]
    layers:
      - thickness: 0.3
        material: {name: Brick, thermal_conduc: 0.7, density: 1700, heat_capac: 0.92}
      - thickness: 0.1
        material: {name: Insulation, thermal_conduc: 0.04, density: 50, heat_capac: 0.84}
  - name: double_glazing
    building_age_group: [1950, 2020]
    outer_convection: 15
    layers:
      - thickness: 0.024
        material: {name: Glass, thermal_conduc: 0.76, density: 2500, heat_capac: 0.84}
`

// --- construction catalog ---

func TestLoadConstructionsResolvesByAgeBand(t *testing.T) {
	path := writeCatalog(t, "constructions.yaml", constructionsYAML)
	cons, err := LoadConstructions(path)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		year      int
		wantHit   bool
		wantFirst string // material of the first layer on hit
	}{
		{"heavy_wall", 1960, true, "Plaster"},
		{"heavy_wall", 1983, true, "Plaster"},
		{"heavy_wall", 1984, true, "Brick"},
		{"heavy_wall", 2020, true, "Brick"},
		{"heavy_wall", 1949, false, ""},
		{"heavy_wall", 2021, false, ""},
		{"unknown_wall", 1990, false, ""},
	}

	for _, tt := range tests {
		entry, ok := cons.Resolve(tt.name, tt.year)
		if ok != tt.wantHit {
			t.Errorf("Resolve(%q, %d) hit = %v, want %v", tt.name, tt.year, ok, tt.wantHit)
			continue
		}
		if ok && entry.Layers[0].Material.Name != tt.wantFirst {
			t.Errorf("Resolve(%q, %d) first layer = %q, want %q",
				tt.name, tt.year, entry.Layers[0].Material.Name, tt.wantFirst)
		}
	}
}

func TestLoadConstructionsSurfaceOverrides(t *testing.T) {
	path := writeCatalog(t, "constructions.yaml", constructionsYAML)
	cons, err := LoadConstructions(path)
	if err != nil {
		t.Fatal(err)
	}
	entry, ok := cons.Resolve("double_glazing", 2000)
	if !ok {
		t.Fatal("double_glazing not resolved")
	}
	if entry.OuterConvection != 15 {
		t.Errorf("OuterConvection = %g, want 15", entry.OuterConvection)
	}
	if entry.InnerConvection != 0 {
		t.Errorf("InnerConvection = %g, want 0 (kind default applies)", entry.InnerConvection)
	}
}

func TestLoadConstructionsRejectsBadEntries(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{
			"missing name",
			"constructions:\n  - building_age_group: [1950, 2020]\n    layers: []\n",
			"has no name",
		},
		{
			"inverted age band",
			"constructions:\n  - name: w\n    building_age_group: [2020, 1950]\n    layers: []\n",
			"inverted age band",
		},
		{
			"invalid yaml",
			"constructions: [",
			"parsing construction catalog",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeCatalog(t, "constructions.yaml", tt.content)
			_, err := LoadConstructions(path)
			if err == nil || !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("error = %v, want containing %q", err, tt.errMsg)
			}
		})
	}
}

func TestLoadConstructionsMissingFile(t *testing.T) {
	_, err := LoadConstructions(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Error("expected error for missing file")
	}
}

// --- use-conditions catalog ---

const useConditionsYAML = `use_conditions:
  - usage: Bed room
    persons_density: 0.05
    machines_power: 2
    lighting_power: 7
    infiltration_rate: 0.5
    heating_setpoint: 22
    cooling_setpoint: 26
  - usage: Meeting, Conference, seminar
    persons_density: 0.2
    machines_power: 10
    lighting_power: 12
    infiltration_rate: 0.3
    heating_setpoint: 21
    cooling_setpoint: 25
`

func TestLoadUseConditionsLookup(t *testing.T) {
	path := writeCatalog(t, "use_conditions.yaml", useConditionsYAML)
	ucs, err := LoadUseConditions(path)
	if err != nil {
		t.Fatal(err)
	}

	uc, ok := ucs.Lookup("Bed room")
	if !ok {
		t.Fatal("Bed room not found")
	}
	if uc.PersonsDensity != 0.05 || uc.HeatingSetpoint != 22 {
		t.Errorf("unexpected profile %+v", uc)
	}

	if _, ok := ucs.Lookup("Sauna"); ok {
		t.Error("Lookup(Sauna) hit, want miss")
	}
}

func TestCovers(t *testing.T) {
	path := writeCatalog(t, "use_conditions.yaml", useConditionsYAML)
	ucs, err := LoadUseConditions(path)
	if err != nil {
		t.Fatal(err)
	}

	if err := ucs.Covers([]string{"Bed room", "Meeting, Conference, seminar"}); err != nil {
		t.Errorf("Covers = %v, want nil", err)
	}
	err = ucs.Covers([]string{"Bed room", "Operating theatre"})
	if err == nil || !strings.Contains(err.Error(), "Operating theatre") {
		t.Errorf("Covers = %v, want missing-category error", err)
	}
}
