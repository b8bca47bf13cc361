// Package options provides shared validation helpers for the functional
// option sets used across packages.
package options

import "errors"

// ValidateSingleInputSource ensures exactly one input source from a group of
// alternatives is set. noSourceMsg is returned as an error when none is set,
// multiSourceMsg when more than one is.
func ValidateSingleInputSource(noSourceMsg, multiSourceMsg string, sources ...bool) error {
	count := 0
	for _, set := range sources {
		if set {
			count++
		}
	}
	switch {
	case count == 0:
		return errors.New(noSourceMsg)
	case count > 1:
		return errors.New(multiSourceMsg)
	}
	return nil
}
