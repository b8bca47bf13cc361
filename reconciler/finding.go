package reconciler

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/erraggy/oasdrift/internal/severity"
)

// FindingKind identifies the category of drift a Finding reports.
type FindingKind int

const (
	// MissingParameter means the contract documents a parameter the
	// implementation does not accept.
	MissingParameter FindingKind = iota
	// UndefinedParameter means the implementation accepts a parameter the
	// contract does not document.
	UndefinedParameter
	// TypeMismatchParameter means the parameter exists on both sides but the
	// declared types disagree.
	TypeMismatchParameter
)

// String returns the hyphenated name used in reports and structured output.
func (k FindingKind) String() string {
	switch k {
	case MissingParameter:
		return "missing-parameter"
	case UndefinedParameter:
		return "undefined-parameter"
	case TypeMismatchParameter:
		return "type-mismatch"
	default:
		return "unknown"
	}
}

var titleCaser = cases.Title(language.English)

// Title returns the human heading for the kind, e.g. "Missing Parameter".
func (k FindingKind) Title() string {
	return titleCaser.String(strings.ReplaceAll(k.String(), "-", " "))
}

// Location is a position in an implementation source file. A zero Location
// means the position is unknown, which happens for findings that have no
// single line to point at, such as a documented parameter missing from the
// handler signature when no fallback location was configured.
type Location struct {
	File   string
	Line   int
	Column int
}

// IsKnown reports whether the location carries real position information.
func (l Location) IsKnown() bool {
	return l.Line > 0
}

// String formats the location as file:line:column, omitting trailing parts
// that are unset.
func (l Location) String() string {
	if !l.IsKnown() {
		return l.File
	}
	if l.Column > 0 {
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// Finding is a single piece of drift detected between the contract and the
// implementation of one operation.
type Finding struct {
	Kind      FindingKind
	Severity  severity.Severity
	Parameter string
	// Expected and Actual are only set for TypeMismatchParameter. Expected
	// uses the contract's type vocabulary (integer, string, string[]) and
	// Actual the implementation's (int, string, []string).
	Expected string
	Actual   string
	Method   string
	Path     string
	Location Location
}

// Message renders the finding as a sentence.
func (f Finding) Message() string {
	switch f.Kind {
	case MissingParameter:
		return fmt.Sprintf("missing implementation for the parameter '%s' in HTTP method '%s' for the path '%s'",
			f.Parameter, f.Method, f.Path)
	case UndefinedParameter:
		return fmt.Sprintf("undocumented parameter '%s' found in HTTP method '%s' for the path '%s'",
			f.Parameter, f.Method, f.Path)
	case TypeMismatchParameter:
		return fmt.Sprintf("type mismatch for the parameter '%s' in HTTP method '%s' for the path '%s': expected '%s' but found '%s'",
			f.Parameter, f.Method, f.Path, f.Expected, f.Actual)
	default:
		return fmt.Sprintf("unknown finding for the parameter '%s'", f.Parameter)
	}
}

// String formats the finding for terminal output with a severity symbol and
// the source location when one is known.
func (f Finding) String() string {
	var symbol string
	switch f.Severity {
	case severity.SeverityError, severity.SeverityCritical:
		symbol = "✗"
	case severity.SeverityWarning:
		symbol = "⚠"
	default:
		symbol = "ℹ"
	}
	if loc := f.Location.String(); loc != "" {
		return fmt.Sprintf("%s %s: %s", symbol, loc, f.Message())
	}
	return fmt.Sprintf("%s %s", symbol, f.Message())
}
