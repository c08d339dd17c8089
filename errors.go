package vmwriter

import "fmt"

// RequestError reports that the HTTP request to the import endpoint could not
// be completed (DNS failure, connection refused, timeout, canceled context).
type RequestError struct {
	Err error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("error sending request: %v", e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// StatusError reports a response with a non-2xx status code.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("invalid response status code %d", e.StatusCode)
}

// LengthMismatchError reports an Add call whose values and timestamps slices
// differ in length.
type LengthMismatchError struct {
	Values     int
	Timestamps int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("values length %d does not match timestamps length %d", e.Values, e.Timestamps)
}
