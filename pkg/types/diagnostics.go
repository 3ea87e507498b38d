// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"strings"
)

// Severity classifies a diagnostic.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Phase identifies the pipeline pass that emitted a diagnostic.
type Phase string

const (
	PhaseNormalize Phase = "normalize"
	PhaseCluster   Phase = "cluster"
	PhaseZoning    Phase = "zoning"
	PhaseAggregate Phase = "aggregate"
	PhaseDerive    Phase = "derive"
	PhaseRetrofit  Phase = "retrofit"
)

// Diagnostic is a structured report about one data inconsistency or
// lookup failure. Diagnostics are collected per run and surfaced to the
// caller as a batch; they are never silently dropped.
type Diagnostic struct {
	Severity Severity `json:"severity" yaml:"severity"`
	Phase    Phase    `json:"phase" yaml:"phase"`

	// Rows lists the offending spreadsheet rows, if any.
	Rows []int `json:"rows,omitempty" yaml:"rows,omitempty"`

	// Keys carries the identifying context: cluster id, zone name,
	// element kind, construction name, offending raw value.
	Keys map[string]string `json:"keys,omitempty" yaml:"keys,omitempty"`

	Message string `json:"message" yaml:"message"`
}

// String renders the diagnostic on one line for logs.
func (d Diagnostic) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s: %s", d.Severity, d.Phase, d.Message)
	if len(d.Rows) > 0 {
		fmt.Fprintf(&b, " (rows %v)", d.Rows)
	}
	return b.String()
}

// DiagnosticList accumulates diagnostics across pipeline phases.
type DiagnosticList []Diagnostic

// Add appends a diagnostic.
func (l *DiagnosticList) Add(d Diagnostic) {
	*l = append(*l, d)
}

// Addf appends a diagnostic with a formatted message.
func (l *DiagnosticList) Addf(sev Severity, phase Phase, rows []int, keys map[string]string, format string, args ...any) {
	*l = append(*l, Diagnostic{
		Severity: sev,
		Phase:    phase,
		Rows:     rows,
		Keys:     keys,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Merge appends all diagnostics of other.
func (l *DiagnosticList) Merge(other DiagnosticList) {
	*l = append(*l, other...)
}

// HasErrors reports whether any diagnostic has error severity.
func (l DiagnosticList) HasErrors() bool {
	for _, d := range l {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Count returns the number of diagnostics with the given severity.
func (l DiagnosticList) Count(sev Severity) int {
	n := 0
	for _, d := range l {
		if d.Severity == sev {
			n++
		}
	}
	return n
}
