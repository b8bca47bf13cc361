package contract

import "github.com/erraggy/oasdrift/internal/httputil"

// GetOperations extracts a map of all operations from a PathItem.
// Returns a map with keys for HTTP methods and values pointing to the
// corresponding Operation (or nil if not defined). Methods a 2.0 document
// cannot express are simply nil there.
func GetOperations(pathItem *PathItem) map[string]*Operation {
	if pathItem == nil {
		return nil
	}
	return map[string]*Operation{
		httputil.MethodGet:     pathItem.Get,
		httputil.MethodPut:     pathItem.Put,
		httputil.MethodPost:    pathItem.Post,
		httputil.MethodDelete:  pathItem.Delete,
		httputil.MethodOptions: pathItem.Options,
		httputil.MethodHead:    pathItem.Head,
		httputil.MethodPatch:   pathItem.Patch,
		httputil.MethodTrace:   pathItem.Trace,
	}
}

// OperationParameters merges path-item level parameters with an operation's
// own. An operation parameter replaces a path-level one with the same name
// and location; $ref entries are deduplicated by the reference string. The
// merged slice keeps path-level entries first, in declaration order.
func OperationParameters(pathItem *PathItem, op *Operation) []*Parameter {
	if pathItem == nil || len(pathItem.Parameters) == 0 {
		if op == nil {
			return nil
		}
		return op.Parameters
	}

	var opParams []*Parameter
	if op != nil {
		opParams = op.Parameters
	}
	overridden := func(p *Parameter) bool {
		for _, o := range opParams {
			if o == nil {
				continue
			}
			if p.Ref != "" {
				if o.Ref == p.Ref {
					return true
				}
				continue
			}
			if o.Name == p.Name && o.In == p.In {
				return true
			}
		}
		return false
	}

	merged := make([]*Parameter, 0, len(pathItem.Parameters)+len(opParams))
	for _, p := range pathItem.Parameters {
		if p == nil || overridden(p) {
			continue
		}
		merged = append(merged, p)
	}
	return append(merged, opParams...)
}
