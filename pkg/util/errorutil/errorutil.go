package errorutil

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// ErrUpstreamUnavailable marks failures reaching the marketplace backend.
var ErrUpstreamUnavailable = errors.New("upstream unavailable")

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// UpstreamError is implemented by errors carrying a backend HTTP status.
type UpstreamError interface {
	error
	UpstreamStatus() int
	UpstreamMessage() string
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest, details)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewUnauthorized(message string) error {
	return NewDomainError("UNAUTHORIZED", message, http.StatusUnauthorized, nil)
}

func NewConflict(code, message string) error {
	return NewDomainError(code, message, http.StatusConflict, nil)
}

// NewUpstream reports a backend failure the caller cannot fix.
func NewUpstream(err error) error {
	return &DomainError{
		Code:       "UPSTREAM_ERROR",
		Message:    "marketplace backend unavailable",
		HTTPStatus: http.StatusBadGateway,
		Err:        err,
	}
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return NewDomainError(codeForStatus(fiberErr.Code), fiberErr.Message, fiberErr.Code, nil)
	}

	var upstream UpstreamError
	if errors.As(err, &upstream) {
		return fromUpstream(upstream)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &DomainError{
			Code:       "UPSTREAM_TIMEOUT",
			Message:    "marketplace backend timed out",
			HTTPStatus: http.StatusGatewayTimeout,
			Err:        err,
		}
	}

	if errors.Is(err, ErrUpstreamUnavailable) {
		return NewUpstream(err).(*DomainError)
	}

	return NewInternalError(err).(*DomainError)
}

func MapError(err error) error {
	return ToDomainError(err)
}

func fromUpstream(err UpstreamError) *DomainError {
	status := err.UpstreamStatus()
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &DomainError{Code: "UNAUTHORIZED", Message: err.UpstreamMessage(), HTTPStatus: http.StatusUnauthorized, Err: err}
	case status >= 400 && status < 500:
		return &DomainError{Code: codeForStatus(status), Message: err.UpstreamMessage(), HTTPStatus: status, Err: err}
	default:
		return NewUpstream(err).(*DomainError)
	}
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return "VALIDATION_FAILED"
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case http.StatusForbidden:
		return "FORBIDDEN"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusConflict:
		return "CONFLICT"
	case http.StatusTooManyRequests:
		return "RATE_LIMITED"
	}
	if status >= 500 {
		return "INTERNAL_ERROR"
	}
	return "REQUEST_FAILED"
}
