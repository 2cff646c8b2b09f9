package operation

import (
	"errors"
	"fmt"

	"github.com/AvivoB/N8N-nodes/internal/operation/transport"
)

// ErrorType classifies API errors.
type ErrorType string

const (
	// ErrorTypeInvalidRequest indicates the API rejected the parameters (400)
	ErrorTypeInvalidRequest ErrorType = "invalid_request"

	// ErrorTypeUnauthorized indicates missing or rejected credentials (401)
	ErrorTypeUnauthorized ErrorType = "unauthorized"

	// ErrorTypeForbidden indicates insufficient permissions or quota (403)
	ErrorTypeForbidden ErrorType = "forbidden"

	// ErrorTypeNotFound indicates resource not found (404)
	ErrorTypeNotFound ErrorType = "not_found"

	// ErrorTypeConflict indicates the resource already exists (409)
	ErrorTypeConflict ErrorType = "conflict"

	// ErrorTypeUnprocessable indicates the payload was well-formed but invalid (422)
	ErrorTypeUnprocessable ErrorType = "unprocessable_entity"

	// ErrorTypeRateLimit indicates rate limit exceeded (429)
	ErrorTypeRateLimit ErrorType = "rate_limited"

	// ErrorTypeUnknown covers every other status and network failures
	ErrorTypeUnknown ErrorType = "unknown"
)

// UnknownErrorMessage is the message of every unmapped API failure.
const UnknownErrorMessage = "The service was not able to process your request"

// Sentinels for errors.Is matching on the error type.
var (
	ErrInvalidRequest = &Error{Type: ErrorTypeInvalidRequest}
	ErrUnauthorized   = &Error{Type: ErrorTypeUnauthorized}
	ErrForbidden      = &Error{Type: ErrorTypeForbidden}
	ErrNotFound       = &Error{Type: ErrorTypeNotFound}
	ErrConflict       = &Error{Type: ErrorTypeConflict}
	ErrUnprocessable  = &Error{Type: ErrorTypeUnprocessable}
	ErrRateLimited    = &Error{Type: ErrorTypeRateLimit}
	ErrUnknown        = &Error{Type: ErrorTypeUnknown}
)

// Error is an API failure surfaced by a node's request helper.
type Error struct {
	// Type classifies the error
	Type ErrorType

	// Message is the fixed, user-facing description
	Message string

	// StatusCode is the HTTP status code (if applicable)
	StatusCode int

	// SuggestText provides guidance on how to resolve the error.
	// Named to avoid clashing with the Suggestion method.
	SuggestText string

	// RequestID from the external service
	RequestID string

	// Cause is the underlying error
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Type)
	}

	if e.StatusCode > 0 {
		msg = fmt.Sprintf("%s [HTTP %d]", msg, e.StatusCode)
	}

	if e.RequestID != "" {
		msg = fmt.Sprintf("%s (request-id: %s)", msg, e.RequestID)
	}

	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}

	return msg
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches sentinels by type, so errors.Is(err, ErrNotFound) holds for
// any not-found error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Type == e.Type && t.Message == "" && t.StatusCode == 0
}

// ErrorType implements pkg/errors.ErrorClassifier.
func (e *Error) ErrorType() string {
	return string(e.Type)
}

// IsRetryable implements pkg/errors.ErrorClassifier. It only reports whether
// repeating could help; nothing retries automatically.
func (e *Error) IsRetryable() bool {
	switch e.Type {
	case ErrorTypeRateLimit:
		return true
	case ErrorTypeUnknown:
		return e.StatusCode == 0 || e.StatusCode >= 500
	default:
		return false
	}
}

// IsUserVisible implements pkg/errors.UserVisibleError.
func (e *Error) IsUserVisible() bool {
	return true
}

// UserMessage implements pkg/errors.UserVisibleError.
func (e *Error) UserMessage() string {
	return e.Message
}

// Suggestion implements pkg/errors.UserVisibleError.
func (e *Error) Suggestion() string {
	return e.SuggestText
}

// StatusMessage is the fixed classification for one HTTP status.
type StatusMessage struct {
	Type    ErrorType
	Message string
}

// StatusMessages maps HTTP statuses to the errors a node reports for them.
// Statuses absent from the table become ErrorTypeUnknown.
type StatusMessages map[int]StatusMessage

// FromTransportError converts a transport failure into an *Error using the
// node's status table. The original error is kept as Cause.
func FromTransportError(err error, messages StatusMessages) error {
	if err == nil {
		return nil
	}

	var opErr *Error
	if errors.As(err, &opErr) {
		return err
	}

	var tErr *transport.TransportError
	if errors.As(err, &tErr) {
		if sm, ok := messages[tErr.StatusCode]; ok {
			return &Error{
				Type:        sm.Type,
				Message:     sm.Message,
				StatusCode:  tErr.StatusCode,
				RequestID:   tErr.RequestID,
				SuggestText: suggestionFor(sm.Type),
				Cause:       err,
			}
		}
		return &Error{
			Type:       ErrorTypeUnknown,
			Message:    UnknownErrorMessage,
			StatusCode: tErr.StatusCode,
			RequestID:  tErr.RequestID,
			Cause:      err,
		}
	}

	return &Error{
		Type:    ErrorTypeUnknown,
		Message: UnknownErrorMessage,
		Cause:   err,
	}
}

func suggestionFor(t ErrorType) string {
	switch t {
	case ErrorTypeUnauthorized:
		return "Check the credential configured for this node"
	case ErrorTypeForbidden:
		return "Verify the account has access to the resource and quota remains"
	case ErrorTypeNotFound:
		return "Verify the resource exists and the name is spelled correctly"
	case ErrorTypeRateLimit:
		return "Wait before running again or configure rate_limits for this node"
	default:
		return ""
	}
}
