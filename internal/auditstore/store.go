// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package auditstore persists import runs — zones, elements with their
// derived parameters, and diagnostics — in a SQLite database for audit
// queries across runs.
package auditstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/zoning-engine/pkg/types"
)

// Store manages the audit SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the audit database at path and ensures the
// schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening audit database: %w", err)
	}
	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			building TEXT NOT NULL,
			year INTEGER NOT NULL,
			retrofit_year INTEGER,
			created_at TEXT NOT NULL,
			zones INTEGER NOT NULL,
			elements INTEGER NOT NULL,
			diagnostics INTEGER NOT NULL,
			errors INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS zones (
			run_id TEXT NOT NULL REFERENCES runs(id),
			zone_id TEXT NOT NULL,
			name TEXT NOT NULL,
			area REAL NOT NULL,
			volume REAL NOT NULL,
			ahu_min REAL NOT NULL,
			ahu_max REAL NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS elements (
			run_id TEXT NOT NULL REFERENCES runs(id),
			zone_id TEXT NOT NULL,
			name TEXT NOT NULL,
			kind TEXT NOT NULL,
			area REAL NOT NULL,
			tilt REAL NOT NULL,
			orientation REAL NOT NULL,
			construction TEXT NOT NULL,
			resolved INTEGER NOT NULL,
			r1 REAL, r2 REAL, r3 REAL,
			c1 REAL, c2 REAL, c1_korr REAL,
			u_value REAL,
			ua_value REAL,
			rows TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS diagnostics (
			run_id TEXT NOT NULL REFERENCES runs(id),
			severity TEXT NOT NULL,
			phase TEXT NOT NULL,
			message TEXT NOT NULL,
			rows TEXT,
			keys TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_zones_run ON zones(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_elements_run ON elements(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_diagnostics_run ON diagnostics(run_id)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// SaveRun records one import run with its full object graph and
// diagnostics in a single transaction.
func (s *Store) SaveRun(ctx context.Context, runID string, b *types.Building, diags types.DiagnosticList) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	elementCount := 0
	for _, z := range b.Zones {
		elementCount += len(z.Elements)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, building, year, retrofit_year, created_at, zones, elements, diagnostics, errors)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, b.Name, b.YearOfConstruction, b.YearOfRetrofit,
		time.Now().UTC().Format(time.RFC3339), len(b.Zones), elementCount,
		len(diags), diags.Count(types.SeverityError),
	)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}

	zoneStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO zones (run_id, zone_id, name, area, volume, ahu_min, ahu_max)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing zone insert: %w", err)
	}
	defer zoneStmt.Close()

	elStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO elements (run_id, zone_id, name, kind, area, tilt, orientation, construction,
			resolved, r1, r2, r3, c1, c2, c1_korr, u_value, ua_value, rows)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing element insert: %w", err)
	}
	defer elStmt.Close()

	for _, z := range b.Zones {
		if _, err := zoneStmt.ExecContext(ctx,
			runID, z.ID, z.Name, z.Area, z.Volume, z.AHU.Min, z.AHU.Max,
		); err != nil {
			return fmt.Errorf("inserting zone %s: %w", z.Name, err)
		}
		for _, el := range z.Elements {
			rowsJSON, _ := json.Marshal(el.Rows)
			var r1, r2, r3, c1, c2, c1k any
			if el.Params != nil {
				r1, r2, r3 = el.Params.R1, el.Params.R2, el.Params.R3
				c1, c2, c1k = el.Params.C1, el.Params.C2, el.Params.C1Korr
			}
			if _, err := elStmt.ExecContext(ctx,
				runID, el.ZoneID, el.Name, string(el.Kind), el.Area, el.Tilt,
				el.Orientation, el.Construction, el.Resolved,
				r1, r2, r3, c1, c2, c1k, el.UValue, el.UAValue, string(rowsJSON),
			); err != nil {
				return fmt.Errorf("inserting element %s: %w", el.Name, err)
			}
		}
	}

	diagStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO diagnostics (run_id, severity, phase, message, rows, keys)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing diagnostic insert: %w", err)
	}
	defer diagStmt.Close()

	for _, d := range diags {
		rowsJSON, _ := json.Marshal(d.Rows)
		keysJSON, _ := json.Marshal(d.Keys)
		if _, err := diagStmt.ExecContext(ctx,
			runID, string(d.Severity), string(d.Phase), d.Message,
			string(rowsJSON), string(keysJSON),
		); err != nil {
			return fmt.Errorf("inserting diagnostic: %w", err)
		}
	}

	return tx.Commit()
}

// RunSummary is one row of the runs listing.
type RunSummary struct {
	ID          string
	Building    string
	Year        int
	CreatedAt   string
	Zones       int
	Elements    int
	Diagnostics int
	Errors      int
}

// ListRuns returns all recorded runs, newest first.
func (s *Store) ListRuns(ctx context.Context) ([]RunSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, building, year, created_at, zones, elements, diagnostics, errors
		 FROM runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var r RunSummary
		if err := rows.Scan(&r.ID, &r.Building, &r.Year, &r.CreatedAt,
			&r.Zones, &r.Elements, &r.Diagnostics, &r.Errors); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Diagnostics returns the diagnostics recorded for one run.
func (s *Store) Diagnostics(ctx context.Context, runID string) (types.DiagnosticList, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT severity, phase, message, rows, keys FROM diagnostics WHERE run_id = ?`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying diagnostics: %w", err)
	}
	defer rows.Close()

	var out types.DiagnosticList
	for rows.Next() {
		var d types.Diagnostic
		var rowsJSON, keysJSON string
		if err := rows.Scan(&d.Severity, &d.Phase, &d.Message, &rowsJSON, &keysJSON); err != nil {
			return nil, fmt.Errorf("scanning diagnostic: %w", err)
		}
		json.Unmarshal([]byte(rowsJSON), &d.Rows)
		json.Unmarshal([]byte(keysJSON), &d.Keys)
		out = append(out, d)
	}
	return out, rows.Err()
}
