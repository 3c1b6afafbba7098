package miso

import (
	"errors"
	"fmt"
	"time"
)

// ConfigError reports a missing endpoint or credential. The client fails
// fast on it without touching the network.
type ConfigError struct {
	Field string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("miso configuration error: %s is not set", e.Field)
}

// ClientError is a 4xx response from the workflow engine. Never retried.
type ClientError struct {
	Status int
}

func (e *ClientError) Error() string {
	return fmt.Sprintf("workflow request rejected with status %d", e.Status)
}

// ServerError is a 5xx response from the workflow engine. Retried up to the
// configured limit.
type ServerError struct {
	Status int
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("workflow engine returned status %d", e.Status)
}

// TimeoutError reports that the whole-call deadline elapsed. The deadline
// covers every retry and, in streaming mode, the in-progress read.
type TimeoutError struct {
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("workflow call exceeded the %s deadline", e.Timeout)
}

// ContentTypeError reports a success response whose declared content type is
// not JSON. Proxies in front of the engine answer outages with HTML pages on
// status 200, which must not be mistaken for a payload.
type ContentTypeError struct {
	ContentType string
}

func (e *ContentTypeError) Error() string {
	return fmt.Sprintf("workflow response is not JSON (content type %q)", e.ContentType)
}

// NetworkError is a connection-level failure. Retried like ServerError.
type NetworkError struct {
	Cause error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("workflow request failed: %v", e.Cause)
}

func (e *NetworkError) Unwrap() error {
	return e.Cause
}

// WorkflowError reports that the engine answered but the run itself is not
// usable: it failed, is still running, or the response had an unexpected
// shape. Fatal for the call; the caller may re-trigger later.
type WorkflowError struct {
	Status  string
	Message string
}

func (e *WorkflowError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("workflow run %s: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("workflow run %s", e.Status)
}

// retryable reports whether another attempt may help: only transient
// transport conditions qualify, never 4xx rejections or workflow outcomes.
func retryable(err error) bool {
	var serverErr *ServerError
	var netErr *NetworkError
	return errors.As(err, &serverErr) || errors.As(err, &netErr)
}
