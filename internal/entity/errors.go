package entity

import (
	"errors"
	"fmt"
)

// ErrorCode identifies an error kind. Codes are stable strings so they can be
// logged and matched without type assertions.
type ErrorCode string

const (
	CodeInvalidConfig ErrorCode = "INVALID_CONFIGURATION"
	CodeRemoteRequest ErrorCode = "REMOTE_REQUEST_FAILED"
	CodeResponseParse ErrorCode = "RESPONSE_PARSE_FAILED"
)

// ConfigurationError is returned when a required setting is missing or invalid.
// It is always raised before any network activity.
type ConfigurationError struct {
	Key     string
	Message string
}

func (e *ConfigurationError) Error() string {
	if e.Key == "" {
		return e.Message
	}
	return fmt.Sprintf("configuration %s: %s", e.Key, e.Message)
}

func (e *ConfigurationError) Code() ErrorCode { return CodeInvalidConfig }

// RemoteRequestError is returned when a call to GitHub or Freshdesk fails,
// either with a non-success status or at the transport level (StatusCode == 0).
type RemoteRequestError struct {
	Service    string
	Operation  string
	StatusCode int
	Body       string
	Err        error
}

func (e *RemoteRequestError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s %s: request failed: %v", e.Service, e.Operation, e.Err)
	}
	if e.Body == "" {
		return fmt.Sprintf("%s %s: unexpected status %d", e.Service, e.Operation, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: unexpected status %d: %s", e.Service, e.Operation, e.StatusCode, e.Body)
}

func (e *RemoteRequestError) Unwrap() error { return e.Err }

func (e *RemoteRequestError) Code() ErrorCode { return CodeRemoteRequest }

// ResponseParseError is returned when a success response does not carry the
// fields we need.
type ResponseParseError struct {
	Service   string
	Operation string
	Err       error
}

func (e *ResponseParseError) Error() string {
	return fmt.Sprintf("%s %s: invalid response: %v", e.Service, e.Operation, e.Err)
}

func (e *ResponseParseError) Unwrap() error { return e.Err }

func (e *ResponseParseError) Code() ErrorCode { return CodeResponseParse }

func IsConfigurationError(err error) bool {
	var target *ConfigurationError
	return errors.As(err, &target)
}

func IsRemoteRequestError(err error) bool {
	var target *RemoteRequestError
	return errors.As(err, &target)
}

func IsResponseParseError(err error) bool {
	var target *ResponseParseError
	return errors.As(err, &target)
}

// CodeOf returns the code of the first coded error in err's chain, or "" when
// there is none.
func CodeOf(err error) ErrorCode {
	var coded interface{ Code() ErrorCode }
	if errors.As(err, &coded) {
		return coded.Code()
	}
	return ""
}
