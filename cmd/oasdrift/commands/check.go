package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	oasdrift "github.com/erraggy/oasdrift"
	"github.com/erraggy/oasdrift/contract"
	"github.com/erraggy/oasdrift/drift"
	"github.com/erraggy/oasdrift/internal/severity"
)

// CheckFlags contains flags for the check command
type CheckFlags struct {
	Dir         string
	StrictPaths bool
	NoMissing   bool
	NoUndefined bool
	Severity    string
	Quiet       bool
	Verbose     bool
	Format      string
}

// SetupCheckFlags creates and configures a FlagSet for the check command.
// Returns the FlagSet and a CheckFlags struct with bound flag variables.
func SetupCheckFlags() (*flag.FlagSet, *CheckFlags) {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	flags := &CheckFlags{}

	fs.StringVar(&flags.Dir, "dir", "", "scan the Go package rooted at this directory instead of package patterns")
	fs.BoolVar(&flags.StrictPaths, "strict-paths", false, "require exact path parameter names when pairing operations with handlers")
	fs.BoolVar(&flags.NoMissing, "no-missing", false, "suppress missing-parameter findings (documented but unimplemented)")
	fs.BoolVar(&flags.NoUndefined, "no-undefined", false, "suppress undefined-parameter findings (implemented but undocumented)")
	fs.StringVar(&flags.Severity, "severity", "error", "severity assigned to findings: error, warning, info, or critical")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only the exit code reports the result, no diagnostic messages")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only the exit code reports the result, no diagnostic messages")
	fs.BoolVar(&flags.Verbose, "v", false, "include contract, scanner, and pairing warnings in the report")
	fs.BoolVar(&flags.Verbose, "verbose", false, "include contract, scanner, and pairing warnings in the report")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: oasdrift check [flags] <file|-> [packages...]\n\n")
		Writef(fs.Output(), "Check Go handler implementations against the parameters an OpenAPI contract documents.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nOutput Formats:\n")
		Writef(fs.Output(), "  text (default)  Human-readable text output\n")
		Writef(fs.Output(), "  json            JSON format for programmatic processing\n")
		Writef(fs.Output(), "  yaml            YAML format for programmatic processing\n")
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  oasdrift check openapi.yaml\n")
		Writef(fs.Output(), "  oasdrift check openapi.yaml ./internal/api/...\n")
		Writef(fs.Output(), "  oasdrift check --dir ./internal/api openapi.yaml\n")
		Writef(fs.Output(), "  oasdrift check --no-undefined --severity warning openapi.yaml\n")
		Writef(fs.Output(), "  cat openapi.yaml | oasdrift check -q -\n")
		Writef(fs.Output(), "  oasdrift check --format json openapi.yaml | jq '.Drifted'\n")
		Writef(fs.Output(), "\nPipelining:\n")
		Writef(fs.Output(), "  - Use '-' as the file path to read the contract from stdin\n")
		Writef(fs.Output(), "  - Use --quiet/-q to suppress diagnostic output for pipelining\n")
		Writef(fs.Output(), "  - Use --format json/yaml for structured output that can be parsed\n")
		Writef(fs.Output(), "\nExit Codes:\n")
		Writef(fs.Output(), "  0    No parameter drift found\n")
		Writef(fs.Output(), "  1    Drift detected\n")
	}

	return fs, flags
}

// HandleCheck executes the check command
func HandleCheck(args []string) error {
	fs, flags := SetupCheckFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("check command requires a contract file path or '-' for stdin")
	}

	specPath := fs.Arg(0)
	patterns := fs.Args()[1:]

	// Validate flag values early to fail fast before expensive operations
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}
	if err := ValidateSeverity(flags.Severity); err != nil {
		return err
	}
	if flags.Dir != "" && len(patterns) > 0 {
		return fmt.Errorf("cannot combine --dir with package pattern arguments")
	}

	checkOpts := []drift.Option{
		drift.WithSeverity(severity.Parse(flags.Severity)),
		drift.WithIncludeMissing(!flags.NoMissing),
		drift.WithIncludeUndefined(!flags.NoUndefined),
		drift.WithStrictPathMatch(flags.StrictPaths),
	}

	if specPath == StdinFilePath {
		loaded, err := contract.ParseReader(os.Stdin)
		if err != nil {
			return fmt.Errorf("parsing stdin: %w", err)
		}
		checkOpts = append(checkOpts, drift.WithSpecParsed(loaded))
	} else {
		checkOpts = append(checkOpts, drift.WithSpecPath(specPath))
	}

	if flags.Dir != "" {
		checkOpts = append(checkOpts, drift.WithSourceDir(flags.Dir))
	} else {
		if len(patterns) == 0 {
			patterns = []string{"./..."}
		}
		checkOpts = append(checkOpts, drift.WithPackages(patterns...))
	}

	// Run the check with timing
	startTime := time.Now()
	result, err := drift.CheckWithOptions(checkOpts...)
	totalTime := time.Since(startTime)
	if err != nil {
		return fmt.Errorf("checking for drift: %w", err)
	}

	// Handle structured output formats
	if flags.Format == FormatJSON || flags.Format == FormatYAML {
		if err := OutputStructured(result, flags.Format); err != nil {
			return err
		}

		// Exit with error if drift was found
		if result.Drifted {
			os.Exit(1)
		}

		return nil
	}

	// Text format output (always to stderr so stdout stays pipeline-clean)
	if !flags.Quiet {
		Writef(os.Stderr, "OpenAPI Drift Check\n")
		Writef(os.Stderr, "===================\n\n")
		Writef(os.Stderr, "oasdrift version: %s\n", oasdrift.Version())
		Writef(os.Stderr, "Contract: %s\n", FormatSpecPath(specPath))
		Writef(os.Stderr, "OAS Version: %s\n", result.Version)
		Writef(os.Stderr, "Source Size: %s\n", contract.FormatBytes(result.SourceSize))
		Writef(os.Stderr, "Operations: %d\n", result.OperationCount)
		Writef(os.Stderr, "Handlers: %d\n", result.HandlerCount)
		Writef(os.Stderr, "Load Time: %v\n", result.LoadTime)
		Writef(os.Stderr, "Total Time: %v\n\n", totalTime)

		drift.RenderText(os.Stderr, result, flags.Verbose)
	}

	// Exit with error if drift was found
	if result.Drifted {
		os.Exit(1)
	}

	return nil
}
