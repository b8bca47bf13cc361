// Package scanner discovers HTTP handler functions in Go source and derives
// the parameters they implement, the implementation half of a drift check.
//
// A handler is any top-level function whose doc comment carries a directive:
//
//	//oasdrift:handler GET /pets/{petId}
//	func GetPet(w http.ResponseWriter, r *http.Request, petID int64, params GetPetParams) {
//
// Two conventions turn the signature into implemented parameters:
//
//   - Path segments. Signature parameters that are not plumbing
//     (http.ResponseWriter, *http.Request, context.Context) and not the
//     trailing params struct are matched positionally against the {name}
//     segments of the directive's path template. Their names come from the
//     template, their types from the signature.
//
//   - Named parameters. When the final signature parameter is a struct type
//     whose name ends in "Params", each field becomes a query or header
//     parameter. The wire name comes from the form tag, then the json tag,
//     then the field name with its first letter lowered and one trailing
//     underscore trimmed (Type_ → "type"). A pointer field is defaultable,
//     its absence representable; any other field is required.
//
// ExtractFile works on a single parsed file and is pure. Scanner loads whole
// packages through golang.org/x/tools/go/packages so a params struct may
// live in a different file from its handler. ScanSource parses one source
// buffer in memory, which is how inline content reaches the drift check.
package scanner
