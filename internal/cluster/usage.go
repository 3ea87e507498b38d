// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cluster

import (
	"errors"
	"fmt"
)

// ErrUnknownUsage marks a survey usage label with no canonical
// category.
var ErrUnknownUsage = errors.New("usage label has no canonical category")

// UsageToCanonical maps raw survey usage labels to the canonical usage
// categories of the usage-condition catalog. The map encodes domain
// policy of the zoning rules and is owned by the engine, not loaded
// from a file; the usage-condition catalog must cover its value set.
var UsageToCanonical = map[string]string{
	"IsolationRoom":            "Bed room",
	"PatientRoom":              "Bed room",
	"Aisle":                    "Corridors in the general care area",
	"Technical room":           "Stock, technical equipment, archives",
	"Washing":                  "WC and sanitary rooms in non-residential buildings",
	"Stairway":                 "Corridors in the general care area",
	"WC":                       "WC and sanitary rooms in non-residential buildings",
	"Storage":                  "Stock, technical equipment, archives",
	"Lounge":                   "Meeting, Conference, seminar",
	"Office":                   "Meeting, Conference, seminar",
	"Treatment room":           "Examination- or treatment room",
	"StorageChemical":          "Stock, technical equipment, archives",
	"EquipmentServiceAndRinse": "WC and sanitary rooms in non-residential buildings",
}

// Canonical resolves a raw survey usage label to its canonical
// category.
func Canonical(label string) (string, error) {
	c, ok := UsageToCanonical[label]
	if !ok {
		return "", fmt.Errorf("label %q: %w", label, ErrUnknownUsage)
	}
	return c, nil
}

// CanonicalCategories returns the deduplicated value set of the usage
// mapping, the categories the usage-condition catalog must provide.
func CanonicalCategories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, c := range UsageToCanonical {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}
