package ledger

import "fmt"

// TransportError reports that the service could not be reached or its
// response could not be decoded. The underlying cause is available via
// errors.Unwrap.
type TransportError struct {
	Op  string // "log_event", "verify_chain", "list_events", "health"
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("ledger: %s %s: %v", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// APIError reports that the service was reached but declined the request:
// bad credentials, malformed payload, unknown agent.
type APIError struct {
	Op         string
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("ledger: %s rejected: HTTP %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("ledger: %s rejected: HTTP %d: %s", e.Op, e.StatusCode, e.Detail)
}
