package scanner

import (
	"context"

	"github.com/erraggy/oasdrift/internal/options"
)

// Option is a function that configures a scan operation
type Option func(*scanConfig) error

// scanConfig holds configuration for a scan operation
type scanConfig struct {
	// Input source (exactly one must be set)
	patterns []string
	dir      string
	source   *sourceInput

	// Configuration options
	ctx          context.Context
	buildFlags   []string
	includeTests bool
}

type sourceInput struct {
	filename string
	data     []byte
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*scanConfig, error) {
	cfg := &scanConfig{
		ctx: context.Background(),
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.ValidateSingleInputSource(
		"must specify an input source (use WithPatterns, WithDir, or WithSource)",
		"must specify exactly one input source",
		len(cfg.patterns) > 0, cfg.dir != "", cfg.source != nil,
	); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WithPatterns specifies package patterns to load, resolved from the current
// directory the way the go command resolves them ("./...", "example.com/m").
func WithPatterns(patterns ...string) Option {
	return func(cfg *scanConfig) error {
		cfg.patterns = patterns
		return nil
	}
}

// WithDir specifies a module or package directory to scan recursively.
func WithDir(dir string) Option {
	return func(cfg *scanConfig) error {
		cfg.dir = dir
		return nil
	}
}

// WithSource specifies one in-memory Go source buffer as the input.
func WithSource(filename string, data []byte) Option {
	return func(cfg *scanConfig) error {
		cfg.source = &sourceInput{filename: filename, data: data}
		return nil
	}
}

// WithContext attaches a context to the package loading subprocesses.
func WithContext(ctx context.Context) Option {
	return func(cfg *scanConfig) error {
		cfg.ctx = ctx
		return nil
	}
}

// WithBuildFlags passes extra build flags (such as -tags) to the loader.
func WithBuildFlags(flags ...string) Option {
	return func(cfg *scanConfig) error {
		cfg.buildFlags = flags
		return nil
	}
}

// WithTests includes _test.go files in the scan.
func WithTests(enabled bool) Option {
	return func(cfg *scanConfig) error {
		cfg.includeTests = enabled
		return nil
	}
}
