// Package drift pairs the operations an OpenAPI contract documents with the
// handlers a Go tree implements and reconciles each pair's parameters.
//
// The contract package supplies the documented side, the scanner package the
// implemented side, and the reconciler package compares one operation at a
// time; this package owns the pairing, the aggregate result, and the text
// report.
//
//	result, err := drift.CheckWithOptions(
//		drift.WithSpecPath("openapi.yaml"),
//		drift.WithSourceDir("./internal/api"),
//	)
//
// Pairing matches a handler's directive to a documented operation by method
// and path template shape: /pets/{petId} and /pets/{id} are the same
// operation unless strict path matching is enabled. Documented operations no
// handler claims and handlers no operation documents are reported on the
// result as notes rather than findings, since neither side's parameters can
// be compared against anything.
package drift
