package entity

import (
	"context"
	"errors"
	"fmt"
	"net"
)

type AuthErrorKind string

const (
	MalformedCredentials AuthErrorKind = "MALFORMED_CREDENTIALS"
	TokenExchangeFailed  AuthErrorKind = "TOKEN_EXCHANGE_FAILED"
)

// AuthError is returned by the token provider. It only ever fails the
// spreadsheet sink attempt it belongs to.
type AuthError struct {
	Kind   AuthErrorKind
	Status int
	Err    error
}

func (e *AuthError) Error() string {
	msg := string(e.Kind)
	if e.Status != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.Status)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return "auth: " + msg
}

func (e *AuthError) Unwrap() error { return e.Err }

type SinkErrorKind string

const (
	SheetAPIError    SinkErrorKind = "SHEET_API_ERROR"
	TransportFailure SinkErrorKind = "TRANSPORT_FAILURE"
	Timeout          SinkErrorKind = "TIMEOUT"
)

type SinkError struct {
	Sink   string
	Kind   SinkErrorKind
	Detail string
	Err    error
}

func (e *SinkError) Error() string {
	msg := fmt.Sprintf("%s sink: %s", e.Sink, e.Kind)
	if e.Detail != "" {
		msg += " " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *SinkError) Unwrap() error { return e.Err }

// NewTransportError classifies a failed round trip as Timeout or TransportFailure.
func NewTransportError(sink string, err error) *SinkError {
	kind := TransportFailure
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		kind = Timeout
	}
	return &SinkError{Sink: sink, Kind: kind, Err: err}
}

// ConfigurationError disables a single sink. It never stops the process.
type ConfigurationError struct {
	Sink   string
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s sink misconfigured: %s", e.Sink, e.Reason)
	}
	return fmt.Sprintf("%s sink misconfigured: %s %s", e.Sink, e.Field, e.Reason)
}

func IsAuthError(err error, kind AuthErrorKind) bool {
	var authErr *AuthError
	return errors.As(err, &authErr) && authErr.Kind == kind
}

func IsSinkError(err error, kind SinkErrorKind) bool {
	var sinkErr *SinkError
	return errors.As(err, &sinkErr) && sinkErr.Kind == kind
}

// ErrorKind gives a short label for diagnostics and metrics.
func ErrorKind(err error) string {
	var (
		authErr *AuthError
		sinkErr *SinkError
		cfgErr  *ConfigurationError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &authErr):
		return string(authErr.Kind)
	case errors.As(err, &sinkErr):
		return string(sinkErr.Kind)
	case errors.As(err, &cfgErr):
		return "CONFIGURATION_ERROR"
	default:
		return "UNKNOWN"
	}
}
