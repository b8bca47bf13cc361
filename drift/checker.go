package drift

import (
	"fmt"
	"log/slog"

	"github.com/erraggy/oasdrift/contract"
	"github.com/erraggy/oasdrift/internal/httputil"
	"github.com/erraggy/oasdrift/internal/maputil"
	"github.com/erraggy/oasdrift/internal/pathutil"
	"github.com/erraggy/oasdrift/internal/severity"
	"github.com/erraggy/oasdrift/reconciler"
	"github.com/erraggy/oasdrift/scanner"
)

// Checker pairs documented operations with scanned handlers and reconciles
// each pair's parameters
type Checker struct {
	// Severity is assigned to every finding
	Severity severity.Severity
	// IncludeMissing controls whether missing-parameter findings are kept
	IncludeMissing bool
	// IncludeUndefined controls whether undefined-parameter findings are kept
	IncludeUndefined bool
	// StrictPathMatch pairs on exact normalized paths, so /pets/{petId} and
	// /pets/{id} stop being the same operation. By default paths pair on
	// template shape with segment names ignored.
	StrictPathMatch bool
}

// New creates a Checker with default settings
func New() *Checker {
	return &Checker{
		Severity:         severity.SeverityError,
		IncludeMissing:   true,
		IncludeUndefined: true,
	}
}

// specOperation is one documented operation awaiting a handler.
type specOperation struct {
	method string
	path   string
	item   *contract.PathItem
	op     *contract.Operation
	paired bool
}

// Check reconciles already-loaded inputs: every handler that pairs with a
// documented operation contributes that operation's findings in handler
// order. Source metadata fields on the result are left for the caller.
func (c *Checker) Check(doc *contract.Document, handlers []*scanner.Handler) *CheckResult {
	res := &CheckResult{HandlerCount: len(handlers), Version: doc.Version()}

	index := make(map[string]*specOperation)
	var operations []*specOperation
	for _, path := range maputil.SortedKeys(doc.Paths) {
		item := doc.Paths[path]
		if item == nil {
			continue
		}
		ops := contract.GetOperations(item)
		for _, method := range httputil.Methods() {
			op := ops[method]
			if op == nil {
				continue
			}
			res.OperationCount++
			so := &specOperation{method: method, path: path, item: item, op: op}
			operations = append(operations, so)
			key := c.pairKey(method, path)
			if prev, exists := index[key]; exists {
				res.Warnings = append(res.Warnings, fmt.Sprintf(
					"drift: %s %s and %s %s share a path template shape; handlers pair with the first",
					prev.method, prev.path, method, path))
				continue
			}
			index[key] = so
		}
	}

	components := contract.ReconcilerComponents(doc)
	for _, h := range handlers {
		so, ok := index[c.pairKey(h.Method, h.Path)]
		if !ok {
			res.UnmatchedHandlers = append(res.UnmatchedHandlers, h.String())
			continue
		}
		so.paired = true
		r := reconciler.New(so.method, so.path)
		r.Severity = c.Severity
		r.FallbackLocation = h.Location
		specParams := contract.SpecParams(contract.OperationParameters(so.item, so.op))
		res.Findings = append(res.Findings, c.filter(r.Reconcile(h.Params, specParams, components))...)
	}

	for _, so := range operations {
		if so.paired {
			res.PairCount++
		} else {
			res.OrphanOperations = append(res.OrphanOperations, so.method+" "+so.path)
		}
	}
	res.countFindings()
	slog.Debug("drift check complete",
		"operations", res.OperationCount,
		"handlers", res.HandlerCount,
		"pairs", res.PairCount,
		"findings", len(res.Findings))
	return res
}

// pairKey builds the lookup key a handler and an operation must share.
func (c *Checker) pairKey(method, path string) string {
	if c.StrictPathMatch {
		return method + " " + pathutil.Normalize(path)
	}
	return method + " " + pathutil.TemplateKey(path)
}

// filter drops finding kinds the checker is configured to ignore. Type
// mismatches are always kept.
func (c *Checker) filter(findings []reconciler.Finding) []reconciler.Finding {
	if c.IncludeMissing && c.IncludeUndefined {
		return findings
	}
	var kept []reconciler.Finding
	for _, f := range findings {
		switch f.Kind {
		case reconciler.MissingParameter:
			if !c.IncludeMissing {
				continue
			}
		case reconciler.UndefinedParameter:
			if !c.IncludeUndefined {
				continue
			}
		}
		kept = append(kept, f)
	}
	return kept
}

// CheckWithOptions runs a drift check using functional options, loading the
// contract and scanning the implementation as configured.
//
// Example:
//
//	result, err := drift.CheckWithOptions(
//	    drift.WithSpecPath("openapi.yaml"),
//	    drift.WithSourceDir("./internal/api"),
//	)
func CheckWithOptions(opts ...Option) (*CheckResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("drift: invalid options: %w", err)
	}

	load := cfg.specParsed
	if load == nil {
		load, err = contract.Load(*cfg.specPath)
		if err != nil {
			return nil, err
		}
	}

	scan := &scanner.ScanResult{Handlers: cfg.handlers}
	if !cfg.handlersSet {
		scanOpts := []scanner.Option{scanner.WithContext(cfg.ctx)}
		switch {
		case cfg.sourceDir != nil:
			scanOpts = append(scanOpts, scanner.WithDir(*cfg.sourceDir))
		case len(cfg.packages) > 0:
			scanOpts = append(scanOpts, scanner.WithPatterns(cfg.packages...))
		default:
			scanOpts = append(scanOpts, scanner.WithSource(cfg.goSource.filename, cfg.goSource.data))
		}
		scan, err = scanner.ScanWithOptions(scanOpts...)
		if err != nil {
			return nil, err
		}
	}

	checker := &Checker{
		Severity:         cfg.severity,
		IncludeMissing:   cfg.includeMissing,
		IncludeUndefined: cfg.includeUndefined,
		StrictPathMatch:  cfg.strictPathMatch,
	}
	res := checker.Check(load.Document, scan.Handlers)
	res.SpecPath = load.SourcePath
	res.SourceFormat = load.SourceFormat
	res.SourceSize = load.SourceSize
	res.LoadTime = load.LoadTime
	res.ScannedFiles = scan.ScannedFiles

	warnings := make([]string, 0, len(load.Warnings)+len(scan.Warnings)+len(res.Warnings))
	warnings = append(warnings, load.Warnings...)
	warnings = append(warnings, scan.Warnings...)
	warnings = append(warnings, res.Warnings...)
	res.Warnings = warnings
	return res, nil
}
