package validation

import "errors"

// ErrMalformedRules is returned when the rule configuration cannot be decoded.
var ErrMalformedRules = errors.New("malformed rule configuration")
