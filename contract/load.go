package contract

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasdrift/internal/maputil"
)

// SourceFormat represents the format of the source OpenAPI document
type SourceFormat string

const (
	// SourceFormatYAML indicates the source was in YAML format
	SourceFormatYAML SourceFormat = "yaml"
	// SourceFormatJSON indicates the source was in JSON format
	SourceFormatJSON SourceFormat = "json"
	// SourceFormatUnknown indicates the source format could not be determined
	SourceFormatUnknown SourceFormat = "unknown"
)

// LoadResult is a loaded document together with where it came from and the
// non-fatal oddities found while reading it.
type LoadResult struct {
	// Document is the decoded parameter surface.
	Document *Document
	// SourcePath is the file the document was read from, empty for Parse.
	SourcePath string
	// SourceFormat is the format of the source data (JSON or YAML)
	SourceFormat SourceFormat
	// SourceSize is the size of the source data in bytes
	SourceSize int64
	// LoadTime is the time taken to read and decode the source
	LoadTime time.Duration
	// Warnings lists structural oddities that do not stop a drift check,
	// such as parameters with neither a name nor a $ref.
	Warnings []string
}

// Load reads and decodes an OpenAPI document from a file.
func Load(path string) (*LoadResult, error) {
	start := time.Now()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("contract: failed to read file: %w", err)
	}
	res, err := parse(data, detectFormatFromPath(path))
	if err != nil {
		return nil, err
	}
	res.SourcePath = path
	res.LoadTime = time.Since(start)
	return res, nil
}

// Parse decodes an OpenAPI document from raw bytes. YAML being a superset of
// JSON, both formats decode through the same path; the reported format comes
// from content sniffing.
func Parse(data []byte) (*LoadResult, error) {
	start := time.Now()
	res, err := parse(data, SourceFormatUnknown)
	if err != nil {
		return nil, err
	}
	res.LoadTime = time.Since(start)
	return res, nil
}

// ParseReader decodes an OpenAPI document from a reader, typically stdin.
func ParseReader(r io.Reader) (*LoadResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("contract: failed to read data: %w", err)
	}
	return Parse(data)
}

func parse(data []byte, format SourceFormat) (*LoadResult, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("contract: failed to parse YAML/JSON: %w", err)
	}
	if doc.OpenAPI == "" && doc.Swagger == "" {
		return nil, fmt.Errorf("contract: unable to detect OpenAPI version: document must declare either 'openapi' or 'swagger' at the root level")
	}
	if format == SourceFormatUnknown {
		format = detectFormatFromContent(data)
	}
	res := &LoadResult{
		Document:     &doc,
		SourceFormat: format,
		SourceSize:   int64(len(data)),
		Warnings:     structureWarnings(&doc),
	}
	slog.Debug("loaded contract",
		"version", doc.Version(),
		"paths", len(doc.Paths),
		"warnings", len(res.Warnings))
	return res, nil
}

func detectFormatFromPath(path string) SourceFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return SourceFormatYAML
	case ".json":
		return SourceFormatJSON
	default:
		return SourceFormatUnknown
	}
}

func detectFormatFromContent(data []byte) SourceFormat {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return SourceFormatJSON
	}
	return SourceFormatYAML
}

// structureWarnings scans the parameter surface for shapes that a drift
// check silently skips over, so the user can tell an intentionally exempt
// parameter from a broken one.
func structureWarnings(doc *Document) []string {
	var warnings []string
	components := doc.ParameterComponents()
	for _, path := range maputil.SortedKeys(doc.Paths) {
		item := doc.Paths[path]
		if item == nil {
			continue
		}
		warnings = append(warnings, parameterWarnings(fmt.Sprintf("path %s", path), item.Parameters, components)...)
		ops := GetOperations(item)
		for _, method := range maputil.SortedKeys(ops) {
			if op := ops[method]; op != nil {
				where := fmt.Sprintf("%s %s", method, path)
				warnings = append(warnings, parameterWarnings(where, op.Parameters, components)...)
			}
		}
	}
	return warnings
}

func parameterWarnings(where string, params []*Parameter, components map[string]*Parameter) []string {
	var warnings []string
	for i, p := range params {
		switch {
		case p == nil:
			warnings = append(warnings, fmt.Sprintf("%s: parameter %d is empty", where, i))
		case p.Ref != "":
			if _, ok := resolveIn(components, p.Ref); !ok {
				warnings = append(warnings, fmt.Sprintf("%s: parameter %d references %s which does not resolve", where, i, p.Ref))
			}
		case p.Name == "":
			warnings = append(warnings, fmt.Sprintf("%s: parameter %d has neither a name nor a $ref", where, i))
		case !knownIn(p.In):
			warnings = append(warnings, fmt.Sprintf("%s: parameter %q has unknown location %q", where, p.Name, p.In))
		case p.Schema != nil && p.Schema.Type == "array" && p.Schema.Items == nil:
			warnings = append(warnings, fmt.Sprintf("%s: parameter %q is an array with no items schema", where, p.Name))
		}
	}
	return warnings
}

func knownIn(in string) bool {
	switch in {
	case "query", "header", "path", "cookie", "formData", "body":
		return true
	default:
		return false
	}
}
