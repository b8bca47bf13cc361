// Package pathutil provides HTTP path template utilities shared by the
// contract, drift, and scanner packages.
//
// Path templates use the OpenAPI brace convention ("/pets/{petId}").
// [ParamNames] extracts the template parameter names, [Normalize] produces
// the canonical display form used in findings, and [TemplateKey] reduces a
// template to its structural shape so routes can be matched regardless of
// how their parameters are named.
package pathutil
