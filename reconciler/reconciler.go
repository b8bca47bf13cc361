package reconciler

import (
	"log/slog"
	"strings"

	"github.com/erraggy/oasdrift/internal/pathutil"
	"github.com/erraggy/oasdrift/internal/severity"
)

// Reconciler compares one operation's implemented parameters against its
// documented ones. The zero value is not useful; construct with New and
// adjust the exported fields before calling Reconcile.
type Reconciler struct {
	// Severity is assigned to every finding the run produces.
	Severity severity.Severity
	// Method is the lowercase HTTP method of the operation.
	Method string
	// Path is the operation path as documented, template segments included.
	Path string
	// FallbackLocation anchors findings that have no implementation line to
	// point at, typically the handler declaration.
	FallbackLocation Location
}

// New returns a Reconciler for one operation reporting at error severity.
func New(method, path string) *Reconciler {
	return &Reconciler{
		Severity: severity.SeverityError,
		Method:   method,
		Path:     path,
	}
}

// Reconcile runs both comparison passes and returns the findings in
// detection order: the implementation-to-contract pass in declaration order,
// then the contract-to-implementation pass in documentation order. Inputs
// are never mutated, so repeated calls over the same inputs return equal
// results.
func (r *Reconciler) Reconcile(implemented []ImplParam, specParams []*SpecParam, components Components) []Finding {
	findings := r.checkImplemented(implemented, specParams, components)
	return append(findings, r.checkDocumented(implemented, specParams, components)...)
}

// checkImplemented walks the implemented parameters. Each one either finds a
// same-named documented counterpart, in which case the types are compared,
// or is reported as undocumented. At most one finding per implemented
// parameter comes out of this pass.
func (r *Reconciler) checkImplemented(implemented []ImplParam, specParams []*SpecParam, components Components) []Finding {
	var findings []Finding
	for _, impl := range implemented {
		declared := normalizeDeclared(impl)
		documented := false
		for _, sp := range specParams {
			if sp == nil {
				continue
			}
			resolved, specName, ok := r.resolveSpec(sp, components)
			if !ok || specName != impl.Name {
				continue
			}
			documented = true
			if f := r.compareTypes(impl, declared, resolved.Schema); f != nil {
				findings = append(findings, *f)
			}
			break
		}
		if !documented {
			findings = append(findings, Finding{
				Kind:      UndefinedParameter,
				Severity:  r.Severity,
				Parameter: impl.Name,
				Method:    r.Method,
				Path:      pathutil.Normalize(r.Path),
				Location:  impl.Location,
			})
		}
	}
	return findings
}

// checkDocumented walks the documented parameters and reports the non-header
// ones the implementation does not accept. Header parameters are delivered
// by the runtime without a signature parameter, so their absence is not
// drift.
func (r *Reconciler) checkDocumented(implemented []ImplParam, specParams []*SpecParam, components Components) []Finding {
	var findings []Finding
	for _, sp := range specParams {
		if sp == nil {
			continue
		}
		resolved, specName, ok := r.resolveSpec(sp, components)
		if !ok || resolved.In == "header" {
			continue
		}
		found := false
		for _, impl := range implemented {
			if impl.Name == specName {
				found = true
				break
			}
		}
		if !found {
			findings = append(findings, Finding{
				Kind:      MissingParameter,
				Severity:  r.Severity,
				Parameter: specName,
				Method:    r.Method,
				Path:      r.Path,
				Location:  r.FallbackLocation,
			})
		}
	}
	return findings
}

// resolveSpec returns the effective definition and display name for a
// documented parameter, following its $ref when present. The display name is
// the component key unless the component declares its own name. ok is false
// when the reference cannot be resolved; both passes skip the parameter and
// continue.
func (r *Reconciler) resolveSpec(sp *SpecParam, components Components) (resolved *SpecParam, name string, ok bool) {
	if sp.Ref == "" {
		return sp, sp.Name, true
	}
	resolved, name, ok = components.Resolve(sp.Ref)
	if !ok {
		slog.Debug("skipping unresolvable parameter reference",
			"ref", sp.Ref, "method", r.Method, "path", r.Path)
		return nil, "", false
	}
	return resolved, name, true
}

// compareTypes checks one name-matched pair and returns a mismatch finding,
// or nil when the declared type satisfies the schema. The expected side of a
// mismatch speaks the contract's vocabulary and the actual side the
// implementation's, both as written rather than canonicalized.
func (r *Reconciler) compareTypes(impl ImplParam, declared string, schema *SchemaInfo) *Finding {
	display := specDisplayType(schema)
	mapped := specTypeToGo(display)
	declaredIsArray := strings.HasPrefix(declared, "[]")
	specIsArray := schema != nil && schema.BaseType == "array"

	mismatch := func(expected string) *Finding {
		return &Finding{
			Kind:      TypeMismatchParameter,
			Severity:  r.Severity,
			Parameter: impl.Name,
			Expected:  expected,
			Actual:    declared,
			Method:    r.Method,
			Path:      r.Path,
			Location:  impl.Location,
		}
	}

	switch {
	case mapped == "":
		return mismatch(display + "[]")
	case declaredIsArray && !specIsArray:
		return mismatch(display)
	case declaredIsArray:
		if hostCanonical(declared) != "[]"+mapped {
			return mismatch(display + "[]")
		}
	case hostCanonical(declared) != mapped:
		return mismatch(display)
	}
	return nil
}
