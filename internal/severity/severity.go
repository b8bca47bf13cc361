// Package severity provides severity level constants and utilities for
// findings reported by the reconciler and drift packages.
//
// The severity of a drift check run is caller-supplied: a CI gate typically
// reports findings as errors while an advisory run reports them as warnings.
// The levels are ordered from least to most severe:
// Info < Warning < Error < Critical
package severity

// Severity indicates the severity level assigned to findings produced
// during a drift check.
type Severity int

const (
	// SeverityError indicates drift that should fail the run, such as a
	// documented parameter with no implementation.
	SeverityError Severity = iota

	// SeverityWarning indicates drift reported in advisory mode, where the
	// run succeeds but the findings should still be addressed.
	SeverityWarning

	// SeverityInfo indicates informational notices about processing choices.
	// These are non-actionable and may be useful for debugging.
	SeverityInfo

	// SeverityCritical indicates conditions that prevented part of the check
	// from running at all.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// Parse maps a severity name to its Severity value. Unrecognized names map
// to SeverityError so a mistyped flag fails closed rather than silently
// downgrading findings.
func Parse(name string) Severity {
	switch name {
	case "warning", "warn":
		return SeverityWarning
	case "info":
		return SeverityInfo
	case "critical":
		return SeverityCritical
	default:
		return SeverityError
	}
}
