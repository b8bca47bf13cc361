package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/erraggy/oasdrift/scanner"
)

// ScanFlags contains flags for the scan command
type ScanFlags struct {
	Dir    string
	Tests  bool
	Quiet  bool
	Format string
}

// SetupScanFlags creates and configures a FlagSet for the scan command.
// Returns the FlagSet and a ScanFlags struct with bound flag variables.
func SetupScanFlags() (*flag.FlagSet, *ScanFlags) {
	fs := flag.NewFlagSet("scan", flag.ContinueOnError)
	flags := &ScanFlags{}

	fs.StringVar(&flags.Dir, "dir", "", "scan the Go package rooted at this directory instead of package patterns")
	fs.BoolVar(&flags.Tests, "tests", false, "include _test.go files in the scan")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only list handlers, no diagnostic messages")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only list handlers, no diagnostic messages")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: oasdrift scan [flags] [packages...]\n\n")
		Writef(fs.Output(), "List the annotated HTTP handlers found in Go source, with the parameters each implements.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  oasdrift scan\n")
		Writef(fs.Output(), "  oasdrift scan ./internal/api/...\n")
		Writef(fs.Output(), "  oasdrift scan --dir ./internal/api\n")
		Writef(fs.Output(), "  oasdrift scan --format json ./... | jq '.Handlers[].Path'\n")
		Writef(fs.Output(), "\nNotes:\n")
		Writef(fs.Output(), "  - Handlers are functions whose doc comment carries an oasdrift:handler directive\n")
		Writef(fs.Output(), "  - With no package arguments, './...' is scanned\n")
		Writef(fs.Output(), "  - Handler listings go to stdout; warnings and the summary go to stderr\n")
	}

	return fs, flags
}

// HandleScan executes the scan command
func HandleScan(args []string) error {
	fs, flags := SetupScanFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	patterns := fs.Args()
	if flags.Dir != "" && len(patterns) > 0 {
		return fmt.Errorf("cannot combine --dir with package pattern arguments")
	}

	var scanOpts []scanner.Option
	if flags.Dir != "" {
		scanOpts = append(scanOpts, scanner.WithDir(flags.Dir))
	} else {
		if len(patterns) == 0 {
			patterns = []string{"./..."}
		}
		scanOpts = append(scanOpts, scanner.WithPatterns(patterns...))
	}
	if flags.Tests {
		scanOpts = append(scanOpts, scanner.WithTests(true))
	}

	result, err := scanner.ScanWithOptions(scanOpts...)
	if err != nil {
		return fmt.Errorf("scanning source: %w", err)
	}

	// Handle structured output formats
	if flags.Format == FormatJSON || flags.Format == FormatYAML {
		return OutputStructured(result, flags.Format)
	}

	// Text format output: handlers to stdout, diagnostics to stderr
	for _, h := range result.Handlers {
		Writef(os.Stdout, "%s\n", h)
		for _, p := range h.Params {
			Writef(os.Stdout, "  %s %s (%s)\n", p.Name, p.DeclaredType, p.Kind)
		}
	}

	if !flags.Quiet {
		if len(result.Warnings) > 0 {
			Writef(os.Stderr, "\nWarnings (%d):\n", len(result.Warnings))
			for _, warning := range result.Warnings {
				Writef(os.Stderr, "  %s\n", warning)
			}
		}
		Writef(os.Stderr, "\n✓ Scanned %d file(s): %d handler(s) found\n", result.ScannedFiles, len(result.Handlers))
	}

	return nil
}
