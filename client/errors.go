// Package client implements a thin client for the OpenWebif HTTP API
// exposed by Enigma2 set-top boxes. Every operation is a single synchronous
// round trip; the client holds no session state between calls.
package client

import "fmt"

// ConnError reports a network-level failure (dial, timeout, DNS) or a
// non-OK response from the box. Use errors.As to detect it.
type ConnError struct {
	URL    string
	Status int // HTTP status code, 0 when the request never completed
	Err    error
}

func (e *ConnError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("openwebif: %s returned status %d: %v", e.URL, e.Status, e.Err)
	}
	return fmt.Sprintf("openwebif: connection to %s failed: %v", e.URL, e.Err)
}

func (e *ConnError) Unwrap() error { return e.Err }

// ParseError reports a malformed or unexpected response body. The box
// answered, but not with anything this client understands.
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("openwebif: failed to parse response from %s: %v", e.URL, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
