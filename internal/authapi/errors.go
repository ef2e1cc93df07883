package authapi

import "fmt"

// NetworkError is a transport-level failure: DNS, TLS, timeout,
// connection reset. The server was never heard from.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// StatusError means the server answered with a non-2xx status. Message
// carries the raw response body when the server supplied one.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("login rejected: status %d", e.Code)
	}
	return fmt.Sprintf("login rejected: status %d: %s", e.Code, e.Message)
}

// UnknownError covers responses or requests that could not be formed or
// understood at all.
type UnknownError struct {
	Err error
}

func (e *UnknownError) Error() string {
	return fmt.Sprintf("unexpected login failure: %v", e.Err)
}

func (e *UnknownError) Unwrap() error { return e.Err }
