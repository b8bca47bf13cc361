// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes oasdrift capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	oasdrift "github.com/erraggy/oasdrift"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `oasdrift MCP server — checks Go handler implementations against the parameters an OpenAPI contract documents.

Configuration: All defaults are configurable via OASDRIFT_* environment variables set in your MCP client config. The Go MCP SDK does not support initializationOptions; use env vars instead.

Key settings:
- OASDRIFT_CHECK_SEVERITY (default: error) — severity assigned to findings
- OASDRIFT_FINDINGS_LIMIT (default: 100) — default result limit for check findings and scan handlers
- OASDRIFT_MAX_LIMIT (default: 1000) — hard cap on any requested limit
- OASDRIFT_MAX_INLINE_SIZE (default: 10MiB) — maximum inline contract/source size
- OASDRIFT_CACHE_ENABLED (default: true) — disable contract caching entirely
- OASDRIFT_CACHE_FILE_TTL (default: 15m) — cache TTL for contracts read from disk
- OASDRIFT_CACHE_CONTENT_TTL (default: 15m) — cache TTL for inline contracts

Caching: Loaded contracts are cached per session. File entries use path+mtime as key (auto-invalidated on change). Inline content is keyed by hash. A background sweeper removes expired entries every 60s.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		contractCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "oasdrift", Version: oasdrift.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "check",
		Description: "Check Go handler implementations against the parameters an OpenAPI contract documents. Pairs documented operations with annotated handlers by method and path template, then reports missing-parameter (documented but unimplemented), undefined-parameter (implemented but undocumented), and type-mismatch findings. Provide the contract via spec (file or content) and the implementation via source (dir or content). Use no_missing/no_undefined to narrow the finding kinds, strict_paths to require exact path parameter names when pairing, and offset/limit to paginate findings. The default severity is configurable via OASDRIFT_CHECK_SEVERITY.",
	}, handleCheck)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "scan",
		Description: "List the annotated HTTP handlers found in Go source, with the parameters each implements. Handlers are functions whose doc comment carries an oasdrift:handler directive naming the operation (METHOD /path). Provide the implementation via source (dir or content). Returns each handler's method, path, function name, source location, and parameters (name, declared type, kind). Use offset/limit to paginate handlers.",
	}, handleScan)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.FindingsLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.FindingsLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
