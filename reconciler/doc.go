// Package reconciler compares the parameters declared by an OpenAPI
// operation against the parameters implemented by a Go handler function and
// reports the drift between them as findings.
//
// The comparison is bidirectional. The implementation-to-contract pass walks
// every implemented parameter looking for a documented counterpart with a
// compatible type, reporting UndefinedParameter for parameters the contract
// never mentions and TypeMismatchParameter when a name matches but the types
// disagree. The contract-to-implementation pass walks every documented
// parameter looking for an implementation, reporting MissingParameter for
// documented non-header parameters the handler does not accept. Header
// parameters are exempt from the implementation-presence check because the
// runtime delivers them without a dedicated signature parameter.
//
// Inputs arrive already parsed: the contract package produces []*SpecParam
// and a Components table from an OpenAPI document, and the scanner package
// produces []ImplParam from Go source. A Reconciler carries the per-run
// metadata (HTTP method, path, severity, fallback location) and is stateless
// across calls, so one Reconciler per operation may run concurrently with
// others as long as the shared Components table is not mutated.
//
//	r := reconciler.New("get", "/pets/{petId}")
//	findings := r.Reconcile(implemented, specParams, components)
//	for _, f := range findings {
//		fmt.Println(f.String())
//	}
//
// Unresolvable $ref entries are never fatal: the offending parameter is
// skipped in both passes and the run continues.
package reconciler
