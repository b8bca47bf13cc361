package mcpserver

import (
	"context"
	"fmt"

	"github.com/erraggy/oasdrift/drift"
	"github.com/erraggy/oasdrift/internal/severity"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type checkInput struct {
	Spec        specInput   `json:"spec"                   jsonschema:"The OpenAPI contract to check against"`
	Source      sourceInput `json:"source"                 jsonschema:"The Go source implementing the contract"`
	StrictPaths bool        `json:"strict_paths,omitempty" jsonschema:"Require exact path parameter names when pairing operations with handlers"`
	NoMissing   bool        `json:"no_missing,omitempty"   jsonschema:"Suppress missing-parameter findings (documented but unimplemented)"`
	NoUndefined bool        `json:"no_undefined,omitempty" jsonschema:"Suppress undefined-parameter findings (implemented but undocumented)"`
	Severity    string      `json:"severity,omitempty"     jsonschema:"Severity assigned to findings: error, warning, info, or critical (default from OASDRIFT_CHECK_SEVERITY)"`
	Offset      int         `json:"offset,omitempty"       jsonschema:"Skip the first N findings (for pagination)"`
	Limit       int         `json:"limit,omitempty"        jsonschema:"Maximum number of findings to return (default 100)"`
}

type checkFinding struct {
	Kind      string `json:"kind"`
	Severity  string `json:"severity"`
	Parameter string `json:"parameter"`
	Expected  string `json:"expected,omitempty"`
	Actual    string `json:"actual,omitempty"`
	Method    string `json:"method"`
	Path      string `json:"path"`
	Location  string `json:"location,omitempty"`
	Message   string `json:"message"`
}

type checkOutput struct {
	Drifted           bool           `json:"drifted"`
	Version           string         `json:"version"`
	OperationCount    int            `json:"operation_count"`
	HandlerCount      int            `json:"handler_count"`
	PairCount         int            `json:"pair_count"`
	MissingCount      int            `json:"missing_count"`
	UndefinedCount    int            `json:"undefined_count"`
	MismatchCount     int            `json:"mismatch_count"`
	Returned          int            `json:"returned"`
	Findings          []checkFinding `json:"findings,omitempty"`
	OrphanOperations  []string       `json:"orphan_operations,omitempty"`
	UnmatchedHandlers []string       `json:"unmatched_handlers,omitempty"`
	Warnings          []string       `json:"warnings,omitempty"`
}

func handleCheck(ctx context.Context, _ *mcp.CallToolRequest, input checkInput) (*mcp.CallToolResult, checkOutput, error) {
	// Apply the config default when the severity field is omitted.
	sev := cfg.CheckSeverity
	if input.Severity != "" {
		if !validSeverities[input.Severity] {
			return errResult(fmt.Errorf("invalid severity %q; valid values: error, warning, info, critical", input.Severity)), checkOutput{}, nil
		}
		sev = input.Severity
	}

	loaded, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), checkOutput{}, nil
	}
	if err := input.Source.validate(); err != nil {
		return errResult(err), checkOutput{}, nil
	}

	opts := []drift.Option{
		drift.WithSpecParsed(loaded),
		drift.WithContext(ctx),
		drift.WithSeverity(severity.Parse(sev)),
		drift.WithIncludeMissing(!input.NoMissing),
		drift.WithIncludeUndefined(!input.NoUndefined),
		drift.WithStrictPathMatch(input.StrictPaths),
	}
	if input.Source.Dir != "" {
		opts = append(opts, drift.WithSourceDir(input.Source.Dir))
	} else {
		opts = append(opts, drift.WithGoSource(input.Source.fileName(), []byte(input.Source.Content)))
	}

	result, err := drift.CheckWithOptions(opts...)
	if err != nil {
		return errResult(err), checkOutput{}, nil
	}

	output := checkOutput{
		Drifted:           result.Drifted,
		Version:           result.Version,
		OperationCount:    result.OperationCount,
		HandlerCount:      result.HandlerCount,
		PairCount:         result.PairCount,
		MissingCount:      result.MissingCount,
		UndefinedCount:    result.UndefinedCount,
		MismatchCount:     result.MismatchCount,
		OrphanOperations:  result.OrphanOperations,
		UnmatchedHandlers: result.UnmatchedHandlers,
		Warnings:          result.Warnings,
	}

	output.Findings = makeSlice[checkFinding](len(result.Findings))
	for _, f := range result.Findings {
		output.Findings = append(output.Findings, checkFinding{
			Kind:      f.Kind.String(),
			Severity:  f.Severity.String(),
			Parameter: f.Parameter,
			Expected:  f.Expected,
			Actual:    f.Actual,
			Method:    f.Method,
			Path:      f.Path,
			Location:  f.Location.String(),
			Message:   f.Message(),
		})
	}

	output.Findings = paginate(output.Findings, input.Offset, input.Limit)
	output.Returned = len(output.Findings)

	return nil, output, nil
}
