package events

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nats-io/nats.go"
)

// EventError is a failure to deliver an audit event
type EventError struct {
	Operation string
	Subject   string
	Err       error
}

// Error implements the error interface
func (e *EventError) Error() string {
	subject := ""
	if e.Subject != "" {
		subject = fmt.Sprintf(" (subject: %s)", e.Subject)
	}
	return fmt.Sprintf("event %s failed%s: %s", e.Operation, subject, translate(e.Err))
}

// Unwrap returns the underlying NATS error
func (e *EventError) Unwrap() error {
	return e.Err
}

// Suggestion returns a hint for fixing the events configuration
func (e *EventError) Suggestion() string {
	if e.IsConnectionError() {
		return "check events.nats_url in settings.yaml or unset it to disable audit events"
	}
	if e.IsAuthError() {
		return "check events.token or events.creds_file in settings.yaml"
	}
	return ""
}

// IsConnectionError checks if the error is connection-related
func (e *EventError) IsConnectionError() bool {
	if errors.Is(e.Err, nats.ErrNoServers) || errors.Is(e.Err, nats.ErrConnectionClosed) {
		return true
	}
	msg := strings.ToLower(e.Error())
	return strings.Contains(msg, "connection refused") || strings.Contains(msg, "no servers available")
}

// IsAuthError checks if the error is authentication-related
func (e *EventError) IsAuthError() bool {
	if errors.Is(e.Err, nats.ErrAuthorization) {
		return true
	}
	msg := strings.ToLower(e.Error())
	return strings.Contains(msg, "authorization") || strings.Contains(msg, "credentials")
}

// WrapEventError wraps err with the operation and subject it failed on
func WrapEventError(operation, subject string, err error) error {
	if err == nil {
		return nil
	}

	var eventErr *EventError
	if errors.As(err, &eventErr) {
		return err
	}

	return &EventError{Operation: operation, Subject: subject, Err: err}
}

// translate converts common NATS library errors to short messages
func translate(err error) string {
	switch {
	case err == nil:
		return "unknown error"
	case errors.Is(err, nats.ErrNoServers):
		return "no NATS servers available"
	case errors.Is(err, nats.ErrTimeout):
		return "NATS operation timed out"
	case errors.Is(err, nats.ErrConnectionClosed):
		return "NATS connection was closed"
	case errors.Is(err, nats.ErrMaxPayload):
		return "event exceeds maximum payload size"
	}
	return err.Error()
}
