package provider

import (
	"errors"
	"fmt"
)

// Reason classifies why a provider attempt failed. All reasons are soft:
// the gateway moves on to the next ranked provider.
type Reason string

const (
	// ReasonRateLimited means the provider refused the call on quota or
	// rate grounds, locally or remotely.
	ReasonRateLimited Reason = "rate_limited"
	// ReasonUnavailable covers transport errors, auth failures, timeouts,
	// and unknown models.
	ReasonUnavailable Reason = "unavailable"
	// ReasonBadOutput means the provider answered but the response was
	// empty, unparseable, or failed schema validation.
	ReasonBadOutput Reason = "bad_output"
)

// GatewayError is the classified failure of a single provider attempt.
type GatewayError struct {
	Provider string
	Reason   Reason
	Cause    error
}

func (e *GatewayError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("provider %s: %s: %v", e.Provider, e.Reason, e.Cause)
	}
	return fmt.Sprintf("provider %s: %s", e.Provider, e.Reason)
}

func (e *GatewayError) Unwrap() error {
	return e.Cause
}

// IsRateLimited reports whether err is a rate-limit gateway failure.
func IsRateLimited(err error) bool {
	var ge *GatewayError
	return errors.As(err, &ge) && ge.Reason == ReasonRateLimited
}

// IsBadOutput reports whether err is a bad-output gateway failure.
func IsBadOutput(err error) bool {
	var ge *GatewayError
	return errors.As(err, &ge) && ge.Reason == ReasonBadOutput
}
