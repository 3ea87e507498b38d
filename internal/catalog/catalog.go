// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog loads the external lookup tables the importer
// resolves against: the construction-type catalog (layer stacks keyed
// by construction name and building age band) and the usage-condition
// catalog (operational profiles keyed by canonical usage category).
package catalog

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/zoning-engine/pkg/types"
)

// Constructions is the loaded construction-type catalog.
type Constructions struct {
	Entries []types.Construction `yaml:"constructions"`
}

// LoadConstructions reads the YAML construction-type catalog.
func LoadConstructions(path string) (*Constructions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading construction catalog: %w", err)
	}
	var c Constructions
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing construction catalog %s: %w", path, err)
	}
	for i, e := range c.Entries {
		if e.Name == "" {
			return nil, fmt.Errorf("construction catalog %s: entry %d has no name", path, i)
		}
		if e.AgeGroup[0] > e.AgeGroup[1] {
			return nil, fmt.Errorf("construction catalog %s: entry %q has inverted age band %v", path, e.Name, e.AgeGroup)
		}
	}
	return &c, nil
}

// Resolve looks up the layer stack for a construction name and a
// building construction year. The first entry whose age band covers
// the year wins. The boolean reports whether the lookup hit.
func (c *Constructions) Resolve(name string, year int) (types.Construction, bool) {
	for _, e := range c.Entries {
		if e.Matches(name, year) {
			return e, true
		}
	}
	return types.Construction{}, false
}

// UseConditionsCatalog is the loaded usage-condition catalog.
type UseConditionsCatalog struct {
	Entries []types.UseConditions `yaml:"use_conditions"`
}

// LoadUseConditions reads the YAML usage-condition catalog.
func LoadUseConditions(path string) (*UseConditionsCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading use-conditions catalog: %w", err)
	}
	var c UseConditionsCatalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing use-conditions catalog %s: %w", path, err)
	}
	return &c, nil
}

// Lookup returns the operational profile of a canonical usage category.
func (c *UseConditionsCatalog) Lookup(usage string) (types.UseConditions, bool) {
	for _, e := range c.Entries {
		if e.Usage == usage {
			return e, true
		}
	}
	return types.UseConditions{}, false
}

// Covers verifies the catalog provides every category in categories.
// The importer calls this before zoning: the usage-condition catalog
// must be a superset of the usage mapping's value set, and a gap is a
// configuration error rather than a data diagnostic.
func (c *UseConditionsCatalog) Covers(categories []string) error {
	for _, cat := range categories {
		if _, ok := c.Lookup(cat); !ok {
			return fmt.Errorf("use-conditions catalog is missing canonical usage category %q", cat)
		}
	}
	return nil
}
