// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package importer orchestrates one import run: spreadsheet ingestion,
// normalization, room clustering, zone formation, envelope aggregation,
// optional retrofit, and thermal network derivation. A run either
// completes with its accumulated diagnostics or aborts on a hard error.
package importer

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pdiddy/zoning-engine/internal/aggregate"
	"github.com/pdiddy/zoning-engine/internal/catalog"
	"github.com/pdiddy/zoning-engine/internal/cluster"
	"github.com/pdiddy/zoning-engine/internal/normalize"
	"github.com/pdiddy/zoning-engine/internal/thermal"
	"github.com/pdiddy/zoning-engine/internal/xlsio"
	"github.com/pdiddy/zoning-engine/pkg/types"
)

// ErrStrictViolations is returned in strict mode when a run leaves any
// zone's or element's physical parameters undefined.
var ErrStrictViolations = errors.New("run produced error diagnostics in strict mode")

// Result is the object graph and audit trail of one completed run.
type Result struct {
	RunID       string
	Building    *types.Building
	Records     []types.Record
	Diagnostics types.DiagnosticList
}

// Run executes the full pipeline for the given configuration. The
// returned Result is valid even when err is ErrStrictViolations, so
// callers can still export the annotated table for inspection.
func Run(cfg types.Config, logger *zap.Logger) (*Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Import.File == "" {
		return nil, fmt.Errorf("no input file configured")
	}
	if cfg.Import.YearOfConstruction <= 0 {
		return nil, fmt.Errorf("year of construction must be set")
	}

	cons, err := catalog.LoadConstructions(cfg.Catalogs.ConstructionsPath)
	if err != nil {
		return nil, err
	}
	ucs, err := catalog.LoadUseConditions(cfg.Catalogs.UseConditionsPath)
	if err != nil {
		return nil, err
	}
	// The usage-condition catalog must cover every canonical category
	// the usage mapping can produce; a gap is a configuration error.
	if err := ucs.Covers(cluster.CanonicalCategories()); err != nil {
		return nil, err
	}

	table, err := xlsio.ReadTable(cfg.Import.File, cfg.Import.Sheets)
	if err != nil {
		return nil, err
	}
	logger.Info("table imported",
		zap.String("file", cfg.Import.File),
		zap.Strings("sheets", cfg.Import.Sheets),
		zap.Int("rows", len(table.Rows)))

	records := normalize.Normalize(table)

	records, diags := cluster.Apply(records)
	logger.Info("records clustered",
		zap.Int("records", len(records)),
		zap.Int("diagnostics", len(diags)))

	building, aggDiags := aggregate.BuildZones(records, cons, ucs,
		cfg.Import.BuildingName, cfg.Import.YearOfConstruction)
	diags.Merge(aggDiags)
	logger.Info("zones aggregated", zap.Int("zones", len(building.Zones)))

	if cfg.Import.RetrofitYear != 0 {
		if err := applyRetrofit(building, cfg.Import.RetrofitYear, &diags, logger); err != nil {
			return nil, err
		}
	}

	deriveAll(building, cfg.Thermal.TBt, &diags, logger)

	for _, d := range diags {
		logDiagnostic(logger, d)
	}

	result := &Result{
		RunID:       uuid.NewString(),
		Building:    building,
		Records:     records,
		Diagnostics: diags,
	}

	if cfg.Import.Strict && diags.HasErrors() {
		return result, fmt.Errorf("%d error diagnostics: %w",
			diags.Count(types.SeverityError), ErrStrictViolations)
	}
	return result, nil
}

// applyRetrofit runs the year-banded retrofit rule over every
// insulation-capable element. An invalid year aborts the run; an
// element already meeting the target only produces an info diagnostic.
func applyRetrofit(b *types.Building, year int, diags *types.DiagnosticList, logger *zap.Logger) error {
	b.YearOfRetrofit = year
	for zi := range b.Zones {
		zone := &b.Zones[zi]
		for ei := range zone.Elements {
			el := &zone.Elements[ei]
			if !thermal.Retrofittable(el.Kind) || !el.Resolved {
				continue
			}
			layer, err := thermal.Retrofit(el, year, nil)
			switch {
			case errors.Is(err, thermal.ErrInvalidYear):
				return err
			case errors.Is(err, thermal.ErrTargetMet):
				diags.Addf(types.SeverityInfo, types.PhaseRetrofit, el.Rows,
					map[string]string{"zone": zone.Name, "element": el.Name},
					"element %q already meets the retrofit target for year %d; no layer added",
					el.Name, year)
			case err != nil:
				diags.Addf(types.SeverityError, types.PhaseRetrofit, el.Rows,
					map[string]string{"zone": zone.Name, "element": el.Name},
					"retrofit of element %q failed: %v", el.Name, err)
			default:
				logger.Debug("element retrofitted",
					zap.String("element", el.Name),
					zap.Float64("insulation_thickness", layer.Thickness))
			}
		}
	}
	return nil
}

// deriveAll computes network parameters for every resolved element.
// Unresolved elements were already reported during aggregation and are
// skipped; their parameters stay undefined.
func deriveAll(b *types.Building, tbt float64, diags *types.DiagnosticList, logger *zap.Logger) {
	derived := 0
	for zi := range b.Zones {
		zone := &b.Zones[zi]
		for ei := range zone.Elements {
			el := &zone.Elements[ei]
			if !el.Resolved {
				continue
			}
			if err := thermal.Derive(el, tbt); err != nil {
				diags.Addf(types.SeverityError, types.PhaseDerive, el.Rows,
					map[string]string{"zone": zone.Name, "element": el.Name},
					"network derivation of element %q failed: %v", el.Name, err)
				continue
			}
			derived++
		}
	}
	logger.Info("network parameters derived", zap.Int("elements", derived))
}

func logDiagnostic(logger *zap.Logger, d types.Diagnostic) {
	fields := []zap.Field{
		zap.String("phase", string(d.Phase)),
		zap.Ints("rows", d.Rows),
	}
	switch d.Severity {
	case types.SeverityError:
		logger.Error(d.Message, fields...)
	case types.SeverityWarning:
		logger.Warn(d.Message, fields...)
	default:
		logger.Info(d.Message, fields...)
	}
}
