package mcpserver

import (
	"context"

	"github.com/erraggy/oasdrift/scanner"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type scanInput struct {
	Source sourceInput `json:"source"           jsonschema:"The Go source to scan for annotated handlers"`
	Tests  bool        `json:"tests,omitempty"  jsonschema:"Include _test.go files when scanning a directory"`
	Offset int         `json:"offset,omitempty" jsonschema:"Skip the first N handlers (for pagination)"`
	Limit  int         `json:"limit,omitempty"  jsonschema:"Maximum number of handlers to return (default 100)"`
}

type scanParam struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Kind     string `json:"kind"`
	Location string `json:"location,omitempty"`
}

type scanHandler struct {
	Method   string      `json:"method"`
	Path     string      `json:"path"`
	Function string      `json:"function"`
	Location string      `json:"location,omitempty"`
	Params   []scanParam `json:"params,omitempty"`
}

type scanOutput struct {
	HandlerCount int           `json:"handler_count"`
	Returned     int           `json:"returned"`
	ScannedFiles int           `json:"scanned_files"`
	Handlers     []scanHandler `json:"handlers,omitempty"`
	Warnings     []string      `json:"warnings,omitempty"`
}

func handleScan(ctx context.Context, _ *mcp.CallToolRequest, input scanInput) (*mcp.CallToolResult, scanOutput, error) {
	if err := input.Source.validate(); err != nil {
		return errResult(err), scanOutput{}, nil
	}

	opts := []scanner.Option{scanner.WithContext(ctx)}
	if input.Source.Dir != "" {
		opts = append(opts, scanner.WithDir(input.Source.Dir))
		if input.Tests {
			opts = append(opts, scanner.WithTests(true))
		}
	} else {
		opts = append(opts, scanner.WithSource(input.Source.fileName(), []byte(input.Source.Content)))
	}

	result, err := scanner.ScanWithOptions(opts...)
	if err != nil {
		return errResult(err), scanOutput{}, nil
	}

	output := scanOutput{
		HandlerCount: len(result.Handlers),
		ScannedFiles: result.ScannedFiles,
		Warnings:     result.Warnings,
	}

	output.Handlers = makeSlice[scanHandler](len(result.Handlers))
	for _, h := range result.Handlers {
		sh := scanHandler{
			Method:   h.Method,
			Path:     h.Path,
			Function: h.FuncName,
			Location: h.Location.String(),
			Params:   makeSlice[scanParam](len(h.Params)),
		}
		for _, p := range h.Params {
			sh.Params = append(sh.Params, scanParam{
				Name:     p.Name,
				Type:     p.DeclaredType,
				Kind:     p.Kind.String(),
				Location: p.Location.String(),
			})
		}
		output.Handlers = append(output.Handlers, sh)
	}

	output.Handlers = paginate(output.Handlers, input.Offset, input.Limit)
	output.Returned = len(output.Handlers)

	return nil, output, nil
}
