// Package httpclient holds the transport shared by the GitHub and Freshdesk
// clients.
package httpclient

import (
	"net/http"
	"time"
)

const DefaultTimeout = 10 * time.Second

// Doer executes HTTP requests. *http.Client satisfies it, and tests or
// instrumentation can swap in their own.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// New returns an *http.Client with an explicit timeout. A zero or negative
// timeout falls back to DefaultTimeout.
func New(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// DoerFunc adapts a function to the Doer interface.
type DoerFunc func(req *http.Request) (*http.Response, error)

func (f DoerFunc) Do(req *http.Request) (*http.Response, error) {
	return f(req)
}
