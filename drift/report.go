package drift

import (
	"fmt"
	"io"
	"strings"

	"github.com/erraggy/oasdrift/reconciler"
)

// reportKinds fixes the section order of the text report.
var reportKinds = []reconciler.FindingKind{
	reconciler.MissingParameter,
	reconciler.UndefinedParameter,
	reconciler.TypeMismatchParameter,
}

// RenderText writes the human-readable report: findings grouped by kind,
// the pairing notes, and a one-line summary. Warnings appear only when
// verbose is set.
func RenderText(w io.Writer, res *CheckResult, verbose bool) {
	if verbose && len(res.Warnings) > 0 {
		fmt.Fprintf(w, "Warnings (%d):\n", len(res.Warnings))
		for _, warning := range res.Warnings {
			fmt.Fprintf(w, "  %s\n", warning)
		}
		fmt.Fprintf(w, "\n")
	}

	for _, kind := range reportKinds {
		count := res.kindCount(kind)
		if count == 0 {
			continue
		}
		fmt.Fprintf(w, "%s (%d):\n", sectionTitle(kind), count)
		for _, f := range res.Findings {
			if f.Kind == kind {
				fmt.Fprintf(w, "  %s\n", f.String())
			}
		}
		fmt.Fprintf(w, "\n")
	}

	if len(res.OrphanOperations) > 0 {
		fmt.Fprintf(w, "Documented but unimplemented operations (%d):\n", len(res.OrphanOperations))
		for _, op := range res.OrphanOperations {
			fmt.Fprintf(w, "  %s\n", op)
		}
		fmt.Fprintf(w, "\n")
	}
	if len(res.UnmatchedHandlers) > 0 {
		fmt.Fprintf(w, "Handlers without a documented operation (%d):\n", len(res.UnmatchedHandlers))
		for _, h := range res.UnmatchedHandlers {
			fmt.Fprintf(w, "  %s\n", h)
		}
		fmt.Fprintf(w, "\n")
	}

	if res.Drifted {
		fmt.Fprintf(w, "✗ Drift detected: %d finding(s) across %d compared operation(s)\n", len(res.Findings), res.PairCount)
	} else {
		fmt.Fprintf(w, "✓ No parameter drift: %d operation(s) compared\n", res.PairCount)
	}
}

func (r *CheckResult) kindCount(kind reconciler.FindingKind) int {
	switch kind {
	case reconciler.MissingParameter:
		return r.MissingCount
	case reconciler.UndefinedParameter:
		return r.UndefinedCount
	case reconciler.TypeMismatchParameter:
		return r.MismatchCount
	default:
		return 0
	}
}

// sectionTitle pluralizes a kind's title for its report heading.
func sectionTitle(kind reconciler.FindingKind) string {
	title := kind.Title()
	if strings.HasSuffix(title, "h") {
		return title + "es"
	}
	return title + "s"
}
