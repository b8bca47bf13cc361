package scanner

import (
	"fmt"
	"strings"

	"github.com/erraggy/oasdrift/internal/httputil"
	"github.com/erraggy/oasdrift/reconciler"
)

// directivePrefix marks a handler declaration inside a doc comment.
const directivePrefix = "oasdrift:handler"

// Handler is one discovered handler function: the operation it claims to
// implement and the parameters its signature accepts, in declaration order.
type Handler struct {
	// Method is the lowercase HTTP method from the directive.
	Method string
	// Path is the path template from the directive, as written.
	Path string
	// FuncName is the name of the handler function.
	FuncName string
	// Location is where the function is declared.
	Location reconciler.Location
	// Params are the implemented parameters: path segments first in template
	// order, then the fields of the trailing params struct in field order.
	Params []reconciler.ImplParam
}

// String identifies the handler for logs and warnings.
func (h *Handler) String() string {
	return fmt.Sprintf("%s %s (%s)", h.Method, h.Path, h.FuncName)
}

// directive is one parsed //oasdrift:handler line.
type directive struct {
	method string
	path   string
}

// parseDirective reads a single comment line and returns the directive it
// carries, if any. A malformed directive returns an error so the caller can
// surface it as a warning instead of silently dropping the handler.
func parseDirective(comment string) (*directive, error) {
	text := strings.TrimSpace(strings.TrimPrefix(comment, "//"))
	if !strings.HasPrefix(text, directivePrefix) {
		return nil, nil
	}
	rest := strings.TrimPrefix(text, directivePrefix)
	if rest != "" && !strings.HasPrefix(rest, " ") && !strings.HasPrefix(rest, "\t") {
		// Something like oasdrift:handlers, a different word.
		return nil, nil
	}
	fields := strings.Fields(rest)
	if len(fields) != 2 {
		return nil, fmt.Errorf("scanner: malformed directive %q: want METHOD /path", strings.TrimSpace(text))
	}
	method, path := fields[0], fields[1]
	if !httputil.IsMethod(method) {
		return nil, fmt.Errorf("scanner: directive has unknown HTTP method %q", method)
	}
	if !strings.HasPrefix(path, "/") {
		return nil, fmt.Errorf("scanner: directive path %q must start with '/'", path)
	}
	return &directive{method: httputil.Canonical(method), path: path}, nil
}

// unescapeName undoes Go's keyword-collision convention on an identifier:
// one trailing underscore comes off, so a field named Type_ carries the wire
// name "type".
func unescapeName(name string) string {
	return strings.TrimSuffix(name, "_")
}
