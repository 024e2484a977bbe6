package apiclient

import (
	"errors"
	"fmt"
)

// Kind classifies API failures so callers can branch without string matching
type Kind int

const (
	// KindNetwork means the request never produced an HTTP response
	KindNetwork Kind = iota
	// KindValidation is a 400 class rejection of the request payload
	KindValidation
	// KindUnauthorized is a 401 that survived the refresh attempt
	KindUnauthorized
	// KindForbidden is a 403 on a resource the caller does not own
	KindForbidden
	// KindNotFound is a 404 for a missing resource
	KindNotFound
	// KindServer is any 5xx from the API
	KindServer
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindValidation:
		return "validation"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindServer:
		return "server"
	default:
		return "unknown"
	}
}

// APIError is the error type returned by every Client method
type APIError struct {
	Kind       Kind
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("api %s (%d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api %s: %s", e.Kind, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is, or wraps, an APIError of the given kind
func IsKind(err error, kind Kind) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}

func kindForStatus(status int) Kind {
	switch {
	case status == 401:
		return KindUnauthorized
	case status == 403:
		return KindForbidden
	case status == 404:
		return KindNotFound
	case status >= 500:
		return KindServer
	default:
		return KindValidation
	}
}
