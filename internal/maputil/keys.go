// Package maputil provides small helpers for deterministic map iteration.
package maputil

import "sort"

// SortedKeys returns the keys of m sorted in ascending order. The result is
// never nil, so callers can range over it without a nil check even for nil
// or empty maps.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
