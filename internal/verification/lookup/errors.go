package lookup

import (
	"fmt"

	dErrors "campuspass/pkg/domain-errors"
)

// Category is the normalized failure taxonomy of a registration lookup.
type Category string

const (
	// CategoryNotConfigured means the university has no lookup endpoint. No call was made.
	CategoryNotConfigured Category = "not_configured"
	// CategoryTimeout covers the client deadline and caller cancellation alike.
	CategoryTimeout Category = "timeout"
	// CategoryUnavailable covers transport failures and an open circuit.
	CategoryUnavailable Category = "unavailable"
	// CategoryAuthenticationFailed is an upstream 401 or 403.
	CategoryAuthenticationFailed Category = "authentication_failed"
	// CategoryStudentNotFound is an upstream 404.
	CategoryStudentNotFound Category = "student_not_found"
	// CategoryNotVerified is an explicit verified=false answer.
	CategoryNotVerified Category = "not_verified"
	// CategoryLookupFailed is any other non-2xx status.
	CategoryLookupFailed Category = "lookup_failed"
	// CategoryInvalidResponse is a 2xx body matching no known shape.
	CategoryInvalidResponse Category = "invalid_response"
)

// Error is a classified lookup failure. Messages never include credentials.
type Error struct {
	Category   Category
	Message    string
	StatusCode int
	Underlying error
}

func (e *Error) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("registration lookup [%s]: %s: %v", e.Category, e.Message, e.Underlying)
	}
	return fmt.Sprintf("registration lookup [%s]: %s", e.Category, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Underlying
}

// IsOperatorActionable reports failures caused by university misconfiguration
// rather than by the student.
func (e *Error) IsOperatorActionable() bool {
	return e.Category == CategoryNotConfigured || e.Category == CategoryInvalidResponse
}

// Code maps the category onto the shared error codes.
func (e *Error) Code() dErrors.Code {
	switch e.Category {
	case CategoryNotConfigured:
		return dErrors.CodeNotConfigured
	case CategoryTimeout:
		return dErrors.CodeUpstreamTimeout
	case CategoryUnavailable, CategoryLookupFailed:
		return dErrors.CodeUpstreamUnavailable
	case CategoryAuthenticationFailed:
		return dErrors.CodeUpstreamAuthFailed
	case CategoryStudentNotFound:
		return dErrors.CodeNotFound
	case CategoryNotVerified:
		return dErrors.CodeValidation
	case CategoryInvalidResponse:
		return dErrors.CodeInvalidUpstreamResponse
	default:
		return dErrors.CodeInternal
	}
}

// ToDomain converts the failure into a coded domain error.
func (e *Error) ToDomain() error {
	return dErrors.Wrap(e, e.Code(), e.Message)
}

func newError(category Category, message string, underlying error) *Error {
	return &Error{Category: category, Message: message, Underlying: underlying}
}
