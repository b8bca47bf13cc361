package reconciler

import "strings"

// ParamKind classifies how an implemented parameter is bound in the handler
// signature.
type ParamKind int

const (
	// KindRequired is a query or header parameter the handler cannot run
	// without.
	KindRequired ParamKind = iota
	// KindDefaultable is an optional query or header parameter, declared as a
	// pointer so the absent case is representable.
	KindDefaultable
	// KindPathSegment is a parameter bound from a template segment of the
	// request path.
	KindPathSegment
)

// String returns the lowercase kind name used in structured output.
func (k ParamKind) String() string {
	switch k {
	case KindRequired:
		return "required"
	case KindDefaultable:
		return "defaultable"
	case KindPathSegment:
		return "path"
	default:
		return "unknown"
	}
}

// ImplParam is one parameter accepted by a handler implementation. Name is
// the wire name after any identifier escaping has been undone, so "type_"
// in source arrives here as "type". DeclaredType is the Go type expression
// as written, including any leading pointer marker.
type ImplParam struct {
	Name         string
	DeclaredType string
	Kind         ParamKind
	Location     Location
}

// SchemaInfo is the subset of an OpenAPI schema the comparison needs.
// BaseType holds the primitive or "array"; ItemType holds the item base type
// when BaseType is "array"; Format refines integer and number types.
type SchemaInfo struct {
	BaseType string
	ItemType string
	Format   string
}

// SpecParam is one parameter documented by the contract for an operation.
// When Ref is set the other fields are ignored until the reference resolves
// against the Components table.
type SpecParam struct {
	Name   string
	In     string
	Schema *SchemaInfo
	Ref    string
}

// Components maps reusable parameter names to their definitions, mirroring
// the components/parameters section of an OpenAPI document. Keys are the
// bare component names.
type Components map[string]*SpecParam

// Resolve follows a $ref value to its component. It accepts full pointers
// such as "#/components/parameters/limitParam", the older "#/parameters/"
// form, and bare component names. The returned name is the component key
// unless the component declares its own name, which wins. ok is false when
// the pointer is malformed or the component does not exist; callers skip the
// parameter and continue.
func (c Components) Resolve(ref string) (param *SpecParam, name string, ok bool) {
	key, ok := refName(ref)
	if !ok {
		return nil, "", false
	}
	param, ok = c[key]
	if !ok || param == nil {
		return nil, "", false
	}
	name = key
	if param.Name != "" {
		name = param.Name
	}
	return param, name, true
}

// refName extracts the component name from a reference pointer: the segment
// after the final slash, or the whole value when there is none.
func refName(ref string) (string, bool) {
	if ref == "" {
		return "", false
	}
	if i := strings.LastIndex(ref, "/"); i >= 0 {
		ref = ref[i+1:]
	}
	if ref == "" {
		return "", false
	}
	return ref, true
}
