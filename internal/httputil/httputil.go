// Package httputil provides HTTP method constants shared by the contract,
// scanner, and drift packages.
package httputil

import "strings"

// HTTP method constants, in the lowercase form the OpenAPI path item object
// uses for its operation keys.
const (
	MethodGet     = "get"
	MethodPut     = "put"
	MethodPost    = "post"
	MethodDelete  = "delete"
	MethodOptions = "options"
	MethodHead    = "head"
	MethodPatch   = "patch"
	MethodTrace   = "trace"
)

// Methods returns all supported methods in a fixed, deterministic order.
func Methods() []string {
	return []string{
		MethodGet,
		MethodPut,
		MethodPost,
		MethodDelete,
		MethodOptions,
		MethodHead,
		MethodPatch,
		MethodTrace,
	}
}

// IsMethod reports whether name is a supported HTTP method. The check is
// case-insensitive so handler directives may use the conventional uppercase
// form (GET, POST) while path item keys stay lowercase.
func IsMethod(name string) bool {
	switch strings.ToLower(name) {
	case MethodGet, MethodPut, MethodPost, MethodDelete,
		MethodOptions, MethodHead, MethodPatch, MethodTrace:
		return true
	}
	return false
}

// Canonical returns the lowercase form of an HTTP method name.
func Canonical(name string) string {
	return strings.ToLower(name)
}
