package errors

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"syscall"

	"listingmanager/internal/errors"
)

// AppError defines the interface for errors raised by the listing manager's
// own business rules.
type AppError interface {
	error
	HTTPCode() int     // Status to report when surfaced over HTTP
	ErrorCode() string // Machine-readable error code
	Message() string   // Human readable message
	Details() string   // Offending value or extra context (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.details == "" {
		return e.message
	}

	return e.message + ": " + e.details
}

// Is matches any BaseError carrying the same error code, so a copy made by
// WithDetails still satisfies errors.Is against the predefined value.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return t.errorCode == e.errorCode
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the human readable message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Malformed data
	ErrMalformedSlug = NewBaseError(
		http.StatusUnprocessableEntity,
		"MALFORMED_SLUG",
		"listing slug does not end in a device identifier",
		"",
	)

	ErrDevicePublicNotFound = NewBaseError(
		http.StatusNotFound,
		"DEVICE_PUBLIC_NOT_FOUND",
		"device public record not found",
		"",
	)

	ErrDevicePrivateNotFound = NewBaseError(
		http.StatusNotFound,
		"DEVICE_PRIVATE_NOT_FOUND",
		"device private record not found",
		"",
	)

	ErrMissingPrivateRef = NewBaseError(
		http.StatusUnprocessableEntity,
		"MISSING_PRIVATE_REF",
		"device has no private record reference",
		"",
	)

	ErrMissingListingRef = NewBaseError(
		http.StatusUnprocessableEntity,
		"MISSING_LISTING_REF",
		"device has no listing reference",
		"",
	)

	ErrRegistryMissing = NewBaseError(
		http.StatusNotFound,
		"REGISTRY_MISSING",
		"rented devices registry not found on server",
		"",
	)

	// Remote side refused an otherwise well-formed call
	ErrListingNotFound = NewBaseError(
		http.StatusNotFound,
		"LISTING_NOT_FOUND",
		"listing already removed",
		"",
	)

	ErrRemoteRejected = NewBaseError(
		http.StatusBadGateway,
		"REMOTE_REJECTED",
		"remote service reported failure",
		"",
	)

	ErrExpirationNotUpdated = NewBaseError(
		http.StatusBadGateway,
		"EXPIRATION_NOT_UPDATED",
		"device expiration was not updated",
		"",
	)

	// Configuration
	ErrInvalidCredential = NewBaseError(
		http.StatusInternalServerError,
		"INVALID_CREDENTIAL",
		"marketplace credential material is invalid",
		"",
	)

	ErrUnknownLeaseTier = NewBaseError(
		http.StatusInternalServerError,
		"UNKNOWN_LEASE_TIER",
		"lease tier is not defined",
		"",
	)
)

// RemoteError describes a failed call to one of the backend APIs.
type RemoteError struct {
	Method     string
	URL        string
	StatusCode int // zero when no response was received
	Body       string
	Transient  bool
	err        error
}

// NewStatusError classifies a non-2xx response. Server errors are transient.
func NewStatusError(method, url string, statusCode int, body string) *RemoteError {
	return &RemoteError{
		Method:     method,
		URL:        url,
		StatusCode: statusCode,
		Body:       body,
		Transient:  statusCode >= http.StatusInternalServerError,
	}
}

// NewTransportError classifies a failure to get any response at all.
func NewTransportError(method, url string, err error) *RemoteError {
	return &RemoteError{
		Method:    method,
		URL:       url,
		Transient: isTransientTransport(err),
		err:       err,
	}
}

// Error implements the error interface
func (e *RemoteError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.URL, e.StatusCode)
	}

	return errors.Wrapf(e.err, "%s %s", e.Method, e.URL).Error()
}

// Unwrap returns the transport error, if any.
func (e *RemoteError) Unwrap() error {
	return e.err
}

// IsTransient reports whether err is worth nothing more than a retry on the
// next scheduled poll: a 5xx status or a dropped connection.
func IsTransient(err error) bool {
	var re *RemoteError
	if errors.As(err, &re) {
		return re.Transient
	}

	return false
}

// StatusCode returns the upstream status carried by err, or zero.
func StatusCode(err error) int {
	var re *RemoteError
	if errors.As(err, &re) {
		return re.StatusCode
	}

	return 0
}

func isTransientTransport(err error) bool {
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	// Lookup failures and other dial errors are not transient.
	var netErr net.Error

	return errors.As(err, &netErr) && netErr.Timeout()
}
