package httpcat

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownStatusCode matches every lookup failure, including
	// *UnknownStatusCodeError.
	ErrUnknownStatusCode = errors.New("httpcat: unknown status code")
	// ErrTransport wraps failures of the request/response cycle: DNS,
	// connection, cancellation, non-2xx responses and oversized bodies.
	ErrTransport = errors.New("httpcat: transport")
	// ErrDecode wraps failures to read the response body as a JPEG image.
	ErrDecode = errors.New("httpcat: decode")
)

// UnknownStatusCodeError reports a numeric code with no catalog entry.
type UnknownStatusCodeError struct {
	Code uint16
}

func (e *UnknownStatusCodeError) Error() string {
	return fmt.Sprintf("httpcat: status code %d is not in the catalog", e.Code)
}

func (e *UnknownStatusCodeError) Is(target error) bool {
	return target == ErrUnknownStatusCode
}

func transportError(err error) error {
	return fmt.Errorf("%w: %w", ErrTransport, err)
}

func decodeError(err error) error {
	return fmt.Errorf("%w: %w", ErrDecode, err)
}
