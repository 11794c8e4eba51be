package upstream

import (
	"errors"
	"fmt"
)

var (
	ErrCredentialsMissing    = errors.New("transit API key is not configured")
	ErrTransportFailure      = errors.New("upstream request failed")
	ErrNoResultsFound        = errors.New("no results found")
	ErrMalformedUpstreamData = errors.New("upstream returned malformed data")
	ErrInvalidRequest        = errors.New("invalid request")
)

const (
	KindCredentialsMissing = "credentials_missing"
	KindTransportFailure   = "transport_failure"
	KindNoResults          = "no_results"
	KindInvalidRequest     = "invalid_request"
	KindInternal           = "internal"
)

// TransportError is any failure talking to an upstream service: timeouts,
// connection errors, non-2xx statuses and undecodable bodies
type TransportError struct {
	Service    string
	StatusCode int
	Body       []byte
	Cause      error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s request failed with status %d: %v", e.Service, e.StatusCode, e.Cause)
	}
	return fmt.Sprintf("%s request failed: %v", e.Service, e.Cause)
}

func (e *TransportError) Unwrap() []error {
	return []error{ErrTransportFailure, e.Cause}
}

// InvalidRequest wraps a validation message so it matches ErrInvalidRequest
func InvalidRequest(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}

// Kind maps an error onto the short tag used by the CLI and web API
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrCredentialsMissing):
		return KindCredentialsMissing
	case errors.Is(err, ErrInvalidRequest):
		return KindInvalidRequest
	case errors.Is(err, ErrNoResultsFound):
		return KindNoResults
	case errors.Is(err, ErrTransportFailure):
		return KindTransportFailure
	default:
		return KindInternal
	}
}
