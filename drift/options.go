package drift

import (
	"context"

	"github.com/erraggy/oasdrift/contract"
	"github.com/erraggy/oasdrift/internal/options"
	"github.com/erraggy/oasdrift/internal/severity"
	"github.com/erraggy/oasdrift/scanner"
)

// Option is a function that configures a drift check
type Option func(*checkConfig) error

// checkConfig holds configuration for a drift check
type checkConfig struct {
	// Contract source (exactly one must be set)
	specPath   *string
	specParsed *contract.LoadResult

	// Implementation source (exactly one must be set)
	sourceDir   *string
	packages    []string
	goSource    *goSourceInput
	handlers    []*scanner.Handler
	handlersSet bool

	// Configuration options
	ctx              context.Context
	severity         severity.Severity
	includeMissing   bool
	includeUndefined bool
	strictPathMatch  bool
}

type goSourceInput struct {
	filename string
	data     []byte
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*checkConfig, error) {
	cfg := &checkConfig{
		ctx:              context.Background(),
		severity:         severity.SeverityError,
		includeMissing:   true,
		includeUndefined: true,
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.ValidateSingleInputSource(
		"must specify a contract source (use WithSpecPath or WithSpecParsed)",
		"must specify exactly one contract source",
		cfg.specPath != nil, cfg.specParsed != nil,
	); err != nil {
		return nil, err
	}
	if err := options.ValidateSingleInputSource(
		"must specify an implementation source (use WithSourceDir, WithPackages, WithGoSource, or WithHandlers)",
		"must specify exactly one implementation source",
		cfg.sourceDir != nil, len(cfg.packages) > 0, cfg.goSource != nil, cfg.handlersSet,
	); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WithSpecPath specifies a contract file path as the documented side.
func WithSpecPath(path string) Option {
	return func(cfg *checkConfig) error {
		cfg.specPath = &path
		return nil
	}
}

// WithSpecParsed specifies an already-loaded contract, the high-performance
// path when the caller has the document for other reasons.
func WithSpecParsed(res *contract.LoadResult) Option {
	return func(cfg *checkConfig) error {
		cfg.specParsed = res
		return nil
	}
}

// WithSourceDir specifies a Go module or package directory to scan as the
// implemented side.
func WithSourceDir(dir string) Option {
	return func(cfg *checkConfig) error {
		cfg.sourceDir = &dir
		return nil
	}
}

// WithPackages specifies package patterns to scan, resolved the way the go
// command resolves them.
func WithPackages(patterns ...string) Option {
	return func(cfg *checkConfig) error {
		cfg.packages = patterns
		return nil
	}
}

// WithGoSource specifies one in-memory Go source buffer as the implemented
// side.
func WithGoSource(filename string, data []byte) Option {
	return func(cfg *checkConfig) error {
		cfg.goSource = &goSourceInput{filename: filename, data: data}
		return nil
	}
}

// WithHandlers supplies pre-scanned handlers directly.
func WithHandlers(handlers ...*scanner.Handler) Option {
	return func(cfg *checkConfig) error {
		cfg.handlers = handlers
		cfg.handlersSet = true
		return nil
	}
}

// WithContext attaches a context to the scan subprocesses.
func WithContext(ctx context.Context) Option {
	return func(cfg *checkConfig) error {
		cfg.ctx = ctx
		return nil
	}
}

// WithSeverity sets the severity assigned to findings.
func WithSeverity(s severity.Severity) Option {
	return func(cfg *checkConfig) error {
		cfg.severity = s
		return nil
	}
}

// WithIncludeMissing controls whether missing-parameter findings are kept.
func WithIncludeMissing(enabled bool) Option {
	return func(cfg *checkConfig) error {
		cfg.includeMissing = enabled
		return nil
	}
}

// WithIncludeUndefined controls whether undefined-parameter findings are
// kept.
func WithIncludeUndefined(enabled bool) Option {
	return func(cfg *checkConfig) error {
		cfg.includeUndefined = enabled
		return nil
	}
}

// WithStrictPathMatch requires path templates to agree on segment names.
func WithStrictPathMatch(enabled bool) Option {
	return func(cfg *checkConfig) error {
		cfg.strictPathMatch = enabled
		return nil
	}
}
