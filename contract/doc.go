// Package contract loads the parameter surface of an OpenAPI document: the
// paths, their operations, the parameters each operation declares, and the
// reusable parameter components they reference.
//
// The model is deliberately narrow. Drift checking reads parameter names,
// locations, and schema types; request bodies, responses, security and the
// rest of the document pass through the YAML decoder unread. Both OAS 2.0
// and 3.x documents load, with the 2.0 top-level parameter definitions and
// the 3.x components/parameters section exposed through the same table.
//
// Loading never resolves external references and never fetches URLs; a $ref
// that does not point into the document's own parameter components simply
// stays unresolved and the consumer decides what that means.
package contract
