package dispatch

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a failed request.
type Kind int

const (
	// KindAddress means the endpoint address could not be turned into a
	// base URL. No network I/O was attempted.
	KindAddress Kind = iota + 1
	// KindIO means the request body file could not be read.
	KindIO
	// KindNetwork covers connection failures, timeouts and non-2xx replies.
	KindNetwork
)

func (k Kind) String() string {
	switch k {
	case KindAddress:
		return "AddressError"
	case KindIO:
		return "IOError"
	case KindNetwork:
		return "NetworkError"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is the only error type Execute returns.
type Error struct {
	Kind    Kind
	URL     string
	Message string
	// Status and Body are set for non-2xx replies.
	Status int
	Body   string
	Err    error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if body := strings.TrimSpace(e.Body); body != "" {
		msg += ": " + body
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is a dispatch *Error of kind k.
func IsKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}
