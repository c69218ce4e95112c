package fetch

import (
	"errors"
	"fmt"
)

// Kind classifies why a fetch failed.
type Kind int

const (
	KindUnknown Kind = iota
	KindNetwork
	KindHTTPStatus
	KindParse
	KindIO
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindHTTPStatus:
		return "http_status"
	case KindParse:
		return "parse"
	case KindIO:
		return "io"
	default:
		return "unknown"
	}
}

// Error is returned by every Client operation.
type Error struct {
	Kind       Kind
	URL        string
	StatusCode int    // set for KindHTTPStatus
	Status     string // e.g. "404 Not Found"
	Err        error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindHTTPStatus:
		return fmt.Sprintf("HTTP %s for url: %s", e.Status, e.URL)
	case KindNetwork:
		return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
	case KindParse:
		return fmt.Sprintf("failed to parse %s: %v", e.URL, e.Err)
	case KindIO:
		return fmt.Sprintf("failed to save %s: %v", e.URL, e.Err)
	default:
		return fmt.Sprintf("%s: %v", e.URL, e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindUnknown
}
