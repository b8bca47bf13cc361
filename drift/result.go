package drift

import (
	"time"

	"github.com/erraggy/oasdrift/contract"
	"github.com/erraggy/oasdrift/reconciler"
)

// CheckResult holds the outcome of one drift check
type CheckResult struct {
	// Drifted is true if any finding was produced
	Drifted bool
	// Findings contains all parameter drift found, in handler order
	Findings []reconciler.Finding
	// MissingCount is the number of missing-parameter findings
	MissingCount int
	// UndefinedCount is the number of undefined-parameter findings
	UndefinedCount int
	// MismatchCount is the number of type-mismatch findings
	MismatchCount int
	// OperationCount is the number of operations the contract documents
	OperationCount int
	// HandlerCount is the number of handlers the scan discovered
	HandlerCount int
	// PairCount is the number of operations that were actually compared
	PairCount int
	// OrphanOperations lists documented operations no handler implements,
	// as "method path", sorted
	OrphanOperations []string
	// UnmatchedHandlers lists handlers whose operation the contract does not
	// document
	UnmatchedHandlers []string
	// Warnings aggregates contract structure warnings and scan warnings
	Warnings []string
	// Version is the OAS version the contract declares
	Version string
	// SpecPath is the contract file the check read, when one was given
	SpecPath string
	// SourceFormat is the format of the contract source (JSON or YAML)
	SourceFormat contract.SourceFormat
	// SourceSize is the size of the contract source in bytes
	SourceSize int64
	// LoadTime is the time taken to load the contract
	LoadTime time.Duration
	// ScannedFiles is the number of Go files the scan inspected
	ScannedFiles int
}

// countFindings fills the per-kind counters and the Drifted flag.
func (r *CheckResult) countFindings() {
	r.MissingCount, r.UndefinedCount, r.MismatchCount = 0, 0, 0
	for _, f := range r.Findings {
		switch f.Kind {
		case reconciler.MissingParameter:
			r.MissingCount++
		case reconciler.UndefinedParameter:
			r.UndefinedCount++
		case reconciler.TypeMismatchParameter:
			r.MismatchCount++
		}
	}
	r.Drifted = len(r.Findings) > 0
}
