package scanner

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"log/slog"
	"sort"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/erraggy/oasdrift/internal/pathutil"
)

// ScanResult holds the handlers a scan discovered and the non-fatal
// problems it ran into on the way.
type ScanResult struct {
	// Handlers in deterministic order: by file, then declaration position.
	Handlers []*Handler
	// Warnings cover malformed directives, signatures that do not follow the
	// convention, package load errors, and duplicate handler declarations.
	Warnings []string
	// ScannedFiles is the number of source files inspected.
	ScannedFiles int
}

// Scan loads packages by pattern and extracts their handlers.
func Scan(patterns ...string) (*ScanResult, error) {
	return ScanWithOptions(WithPatterns(patterns...))
}

// ScanDir scans one directory tree, the way "./..." from that directory
// would.
func ScanDir(dir string) (*ScanResult, error) {
	return ScanWithOptions(WithDir(dir))
}

// ScanSource extracts handlers from a single in-memory source buffer without
// touching the filesystem.
func ScanSource(filename string, src []byte) (*ScanResult, error) {
	return ScanWithOptions(WithSource(filename, src))
}

// ScanWithOptions runs a scan configured by functional options.
func ScanWithOptions(opts ...Option) (*ScanResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, err
	}
	if cfg.source != nil {
		return scanSource(cfg.source)
	}
	return scanPackages(cfg)
}

func scanSource(src *sourceInput) (*ScanResult, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, src.filename, src.data, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("scanner: failed to parse source: %w", err)
	}
	handlers, warnings := ExtractFile(fset, file)
	res := &ScanResult{Handlers: handlers, Warnings: warnings, ScannedFiles: 1}
	finish(res)
	return res, nil
}

func scanPackages(cfg *scanConfig) (*ScanResult, error) {
	loadCfg := &packages.Config{
		Mode:       packages.NeedName | packages.NeedFiles | packages.NeedCompiledGoFiles | packages.NeedSyntax,
		Context:    cfg.ctx,
		Dir:        cfg.dir,
		BuildFlags: cfg.buildFlags,
		Tests:      cfg.includeTests,
	}
	patterns := cfg.patterns
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}
	pkgs, err := packages.Load(loadCfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("scanner: failed to load packages: %w", err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("scanner: no packages matched %v", patterns)
	}

	res := &ScanResult{}
	seen := make(map[string]bool)
	for _, pkg := range pkgs {
		for _, pkgErr := range pkg.Errors {
			res.Warnings = append(res.Warnings, fmt.Sprintf("scanner: %v", pkgErr))
		}
		structs := packageStructs(pkg.Syntax)
		for _, file := range pkg.Syntax {
			filename := pkg.Fset.Position(file.Pos()).Filename
			if filename == "" || seen[filename] {
				continue
			}
			seen[filename] = true
			res.ScannedFiles++
			handlers, warnings := extract(pkg.Fset, file, structs)
			res.Handlers = append(res.Handlers, handlers...)
			res.Warnings = append(res.Warnings, warnings...)
		}
	}
	finish(res)
	slog.Debug("scan complete",
		"packages", len(pkgs),
		"files", res.ScannedFiles,
		"handlers", len(res.Handlers),
		"warnings", len(res.Warnings))
	return res, nil
}

// packageStructs merges the struct indexes of every file in a package, so a
// handler may keep its params struct in a sibling file.
func packageStructs(files []*ast.File) map[string]*ast.StructType {
	structs := make(map[string]*ast.StructType)
	for _, file := range files {
		for name, st := range fileStructs(file) {
			structs[name] = st
		}
	}
	return structs
}

// finish orders the handlers deterministically and flags operations that two
// different functions both claim to implement.
func finish(res *ScanResult) {
	sort.SliceStable(res.Handlers, func(i, j int) bool {
		a, b := res.Handlers[i].Location, res.Handlers[j].Location
		if a.File != b.File {
			return a.File < b.File
		}
		return a.Line < b.Line
	})

	byOp := make(map[string][]*Handler)
	var ops []string
	for _, h := range res.Handlers {
		key := h.Method + " " + pathutil.TemplateKey(h.Path)
		if len(byOp[key]) == 1 {
			ops = append(ops, key)
		}
		byOp[key] = append(byOp[key], h)
	}
	for _, key := range ops {
		dups := byOp[key]
		names := make([]string, len(dups))
		for i, h := range dups {
			names[i] = fmt.Sprintf("%s (%s)", h.FuncName, h.Location)
		}
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("scanner: duplicate handlers for %s: %s", key, strings.Join(names, ", ")))
	}
}
