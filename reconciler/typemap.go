package reconciler

import "strings"

// typeUnmatched is the canonical form of a path segment whose declared type
// is not bindable from a path value. It never equals a mapped contract type,
// so a documented counterpart surfaces as a type mismatch.
const typeUnmatched = "unmatched"

// specDisplayType returns the contract-side vocabulary for a schema, refined
// by numeric format: integer with format int32 reads "int32", a bare integer
// reads "integer". Array schemas report the item's base type; the caller
// appends the array marker when rendering. Returns "" for a nil or untyped
// schema.
func specDisplayType(s *SchemaInfo) string {
	if s == nil {
		return ""
	}
	if s.BaseType == "array" {
		return s.ItemType
	}
	switch s.BaseType {
	case "integer":
		switch s.Format {
		case "int32":
			return "int32"
		case "int64":
			return "int64"
		default:
			return "integer"
		}
	case "number":
		switch s.Format {
		case "float":
			return "float"
		case "double":
			return "double"
		default:
			return "number"
		}
	default:
		return s.BaseType
	}
}

// specTypeToGo maps a contract-side display type to the Go type an
// implementation is expected to declare. Returns "" when no Go type
// corresponds, which the comparison reports as a mismatch.
func specTypeToGo(displayType string) string {
	switch displayType {
	case "integer", "int64":
		return "int64"
	case "int32":
		return "int32"
	case "number", "double":
		return "float64"
	case "float":
		return "float32"
	case "string":
		return "string"
	case "boolean":
		return "bool"
	default:
		return ""
	}
}

// pathSegmentTypes are the Go types a handler may declare for a path
// segment parameter. Anything else cannot be bound from a path value.
var pathSegmentTypes = map[string]bool{
	"string":  true,
	"int":     true,
	"int32":   true,
	"int64":   true,
	"float32": true,
	"float64": true,
	"bool":    true,
}

// normalizeDeclared reduces an implemented parameter's declared type to the
// form the comparison works with. Query and header parameters shed one
// leading pointer marker, the optionality convention for defaultable
// parameters. Path segments pass through a fixed lookup of bindable types
// and collapse to typeUnmatched otherwise.
func normalizeDeclared(p ImplParam) string {
	if p.Kind == KindPathSegment {
		if pathSegmentTypes[p.DeclaredType] {
			return p.DeclaredType
		}
		return typeUnmatched
	}
	return strings.TrimPrefix(p.DeclaredType, "*")
}

// hostCanonical widens Go type aliases so equivalent declarations compare
// equal: int is 64-bit on every platform this tool targets, so "int" and
// "[]int" canonicalize to "int64" and "[]int64".
func hostCanonical(declared string) string {
	if elem, isArray := strings.CutPrefix(declared, "[]"); isArray {
		return "[]" + hostCanonical(elem)
	}
	if declared == "int" {
		return "int64"
	}
	return declared
}
