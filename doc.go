// Package oasdrift detects drift between OpenAPI Specification (OAS) contracts
// and the Go HTTP handlers that implement them.
//
// oasdrift offers four main packages for loading contracts, scanning handler
// source, reconciling parameter lists, and reporting drift across a whole API
// surface.
//
// # Overview
//
// The library consists of four primary packages:
//
//   - contract: Load the parameter-bearing subset of an OpenAPI document
//   - scanner: Discover annotated HTTP handlers in Go source
//   - reconciler: Compare documented parameters against implemented ones
//   - drift: Pair operations with handlers and aggregate findings
//
// Contracts may be written against either major specification line:
//   - OAS 2.0 (Swagger): https://spec.openapis.org/oas/v2.0.html
//   - OAS 3.x: https://spec.openapis.org/oas/v3.0.0.html
//
// # Installation
//
// Install the library using go get:
//
//	go get github.com/erraggy/oasdrift
//
// # Quick Start
//
// Check a contract against a source tree:
//
//	import "github.com/erraggy/oasdrift/drift"
//
//	result, err := drift.CheckWithOptions(
//		drift.WithSpecPath("openapi.yaml"),
//		drift.WithSourceDir("./internal/api"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if result.Drifted {
//		fmt.Printf("Found %d finding(s)\n", len(result.Findings))
//	}
//
// Load a contract on its own:
//
//	import "github.com/erraggy/oasdrift/contract"
//
//	loaded, err := contract.Load("openapi.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("Version: %s\n", loaded.Document.Version())
//
// Scan handlers on their own:
//
//	import "github.com/erraggy/oasdrift/scanner"
//
//	scan, err := scanner.Scan("./...")
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, h := range scan.Handlers {
//		fmt.Println(h)
//	}
//
// # Contract Package
//
// The contract package loads OpenAPI documents in YAML or JSON format and
// models only what drift detection needs: paths, operations, parameters, and
// the component section parameters may reference. Everything else the document
// declares is preserved in Extra maps and otherwise ignored.
//
// Key features:
//   - Multi-format support (YAML, JSON)
//   - OAS 2.0 and 3.x documents through a single model
//   - Local parameter reference resolution ($ref)
//   - Path-level and operation-level parameter merging
//   - Structural warnings for suspicious parameter declarations
//
// Example:
//
//	loaded, err := contract.Load("openapi.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	for path, item := range loaded.Document.Paths {
//		for method, op := range contract.GetOperations(item) {
//			if op == nil {
//				continue
//			}
//			params := contract.OperationParameters(item, op)
//			fmt.Printf("%s %s: %d parameter(s)\n", method, path, len(params))
//		}
//	}
//
// See the contract package documentation for more details.
//
// # Scanner Package
//
// The scanner package discovers HTTP handlers in Go source. A handler is any
// function whose doc comment carries a directive naming the operation it
// implements:
//
//	//oasdrift:handler GET /pets/{petId}
//	func GetPet(w http.ResponseWriter, r *http.Request, petID int64) { ... }
//
// Signature parameters become path segment parameters in template order, and a
// trailing XxxParams struct contributes one parameter per exported field, named
// by its form or json tag. Plumbing types such as http.ResponseWriter and
// context.Context are skipped.
//
// Key features:
//   - Package pattern, directory, and in-memory source inputs
//   - Form and json struct tag support for wire names
//   - Pointer fields reported as defaultable parameters
//   - Source locations on every discovered parameter
//   - Non-fatal warnings for malformed directives
//
// See the scanner package documentation for more details.
//
// # Reconciler Package
//
// The reconciler package is the comparison core: given one operation's
// documented parameters and one handler's implemented parameters, it reports
// findings in three kinds:
//
//   - missing-parameter: documented but not implemented
//   - undefined-parameter: implemented but not documented
//   - type-mismatch: implemented with an incompatible type
//
// Type comparison understands OpenAPI type/format pairs (integer with int64,
// number with float, and so on), array item types, and the Go spellings that
// satisfy them. Documented header parameters are exempt from the missing check
// because middleware commonly consumes them before a handler runs.
//
// See the reconciler package documentation for more details.
//
// # Drift Package
//
// The drift package ties the other three together. It pairs every documented
// operation with a scanned handler by method and path template shape, runs the
// reconciler over each pair, and aggregates the findings with counts, orphan
// operations, and unmatched handlers into a single CheckResult.
//
// Example:
//
//	checker := drift.New()
//	checker.IncludeUndefined = false
//	result := checker.Check(loaded.Document, scan.Handlers)
//	drift.RenderText(os.Stdout, result, false)
//
// See the drift package documentation for more details.
//
// # Common Workflows
//
// Gate a CI pipeline on drift:
//
//	result, err := drift.CheckWithOptions(
//		drift.WithSpecPath("openapi.yaml"),
//		drift.WithPackages("./..."),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	drift.RenderText(os.Stderr, result, true)
//	if result.Drifted {
//		os.Exit(1)
//	}
//
// Check in-memory sources, useful for tests and editor integrations:
//
//	result, err := drift.CheckWithOptions(
//		drift.WithSpecParsed(doc),
//		drift.WithGoSource("handlers.go", src),
//	)
//
// # Limitations
//
// Current limitations across all packages:
//
//   - Local references only: parameter $ref values must point into the same
//     document; remote URL references are not supported
//   - Single-level resolution: a referenced component that itself holds a $ref
//     is not chased further
//   - Narrow contract model: request bodies, responses, and security schemes
//     are preserved but not compared
//   - Positional path segments: handler path parameters pair with template
//     names by position, not by name
//
// # Error Handling
//
// All packages follow consistent error handling patterns:
//
//   - File I/O errors: Returned directly (e.g., os.ErrNotExist)
//   - Parse errors: Returned with context about what failed
//   - Drift findings: Collected in CheckResult.Findings (not returned as error)
//   - Suspicious input: Collected as warnings in result objects
//
// Always check both the error return value and any warning collections in
// result objects.
//
// # Command-Line Interface
//
// In addition to the library packages, oasdrift provides a command-line
// interface:
//
//	# Check a source tree against a contract
//	oasdrift check --dir ./internal/api openapi.yaml
//
//	# List discovered handlers
//	oasdrift scan ./...
//
//	# Print build details
//	oasdrift version
//
// Install the CLI:
//
//	go install github.com/erraggy/oasdrift/cmd/oasdrift@latest
//
// # Additional Resources
//
//   - GitHub Repository: https://github.com/erraggy/oasdrift
//   - OpenAPI Specification: https://spec.openapis.org
//   - Go Package Documentation: https://pkg.go.dev/github.com/erraggy/oasdrift
//
// # License
//
// This library is released under the MIT License. See the LICENSE file in the
// repository for full details.
package oasdrift
