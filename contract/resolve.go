package contract

import "strings"

// RefName extracts the component name from a reference pointer: the segment
// after the final slash, or the whole value when there is none. ok is false
// for empty pointers and pointers that end in a slash.
func RefName(ref string) (string, bool) {
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

// ResolveParameter dereferences a parameter pointer against the document's
// reusable parameter table, one level deep. Accepts the OAS 3.x
// "#/components/parameters/<name>" form, the 2.0 "#/parameters/<name>" form,
// and bare component names.
func (d *Document) ResolveParameter(ref string) (*Parameter, bool) {
	return resolveIn(d.ParameterComponents(), ref)
}

func resolveIn(components map[string]*Parameter, ref string) (*Parameter, bool) {
	name, ok := RefName(ref)
	if !ok {
		return nil, false
	}
	p, ok := components[name]
	if !ok || p == nil {
		return nil, false
	}
	return p, true
}
