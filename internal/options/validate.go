// Package options holds validation shared by the functional-option entry
// points of differ, coverage, and schema.
package options

import "github.com/erraggy/specdelta/specerrors"

// ValidateSingleInputSource returns a *specerrors.ConfigError for option
// unless exactly one of sources is true. noSourceMsg is used when none is
// set; multiSourceMsg, with the number set as the error value, when several are.
func ValidateSingleInputSource(option, noSourceMsg, multiSourceMsg string, sources ...bool) error {
	set := 0
	for _, ok := range sources {
		if ok {
			set++
		}
	}
	switch set {
	case 1:
		return nil
	case 0:
		return &specerrors.ConfigError{Option: option, Message: noSourceMsg}
	default:
		return &specerrors.ConfigError{Option: option, Value: set, Message: multiSourceMsg}
	}
}
