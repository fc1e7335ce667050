package types

import "fmt"

// Kind classifies application errors so callers can react uniformly to a
// whole class of failures while each error still carries its own message.
type Kind int

const (
	// KindInternal is the catch-all for application failures that do not
	// fit a more specific kind.
	KindInternal Kind = iota
	// KindValidation marks input that fails a field-level or format
	// constraint.
	KindValidation
	// KindNotFound marks a lookup by identifier that matched nothing.
	KindNotFound
	// KindLimitExceeded marks an operation that would push a count past
	// its configured maximum.
	KindLimitExceeded
	// KindDuplicate marks a new name colliding with an existing one.
	KindDuplicate
)

// String returns the kind's short label as rendered to the user.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not found"
	case KindLimitExceeded:
		return "limit exceeded"
	case KindDuplicate:
		return "duplicate"
	default:
		return "internal"
	}
}

// Error is the application error type. All errors raised by the entities
// and the store are of this type; the Kind distinguishes them.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// Is matches on Kind so errors.Is(err, ErrDuplicate) holds for every
// duplicate error regardless of its message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Kind sentinels for errors.Is checks.
var (
	ErrInternal      = &Error{Kind: KindInternal, Message: "application error"}
	ErrValidation    = &Error{Kind: KindValidation, Message: "validation failed"}
	ErrNotFound      = &Error{Kind: KindNotFound, Message: "not found"}
	ErrLimitExceeded = &Error{Kind: KindLimitExceeded, Message: "limit exceeded"}
	ErrDuplicate     = &Error{Kind: KindDuplicate, Message: "duplicate"}
)

// NewValidationError returns a KindValidation error with a formatted message.
func NewValidationError(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NewNotFoundError returns a KindNotFound error with a formatted message.
func NewNotFoundError(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// NewLimitExceededError returns a KindLimitExceeded error with a formatted message.
func NewLimitExceededError(format string, args ...any) *Error {
	return &Error{Kind: KindLimitExceeded, Message: fmt.Sprintf(format, args...)}
}

// NewDuplicateError returns a KindDuplicate error with a formatted message.
func NewDuplicateError(format string, args ...any) *Error {
	return &Error{Kind: KindDuplicate, Message: fmt.Sprintf(format, args...)}
}

// NewInternalError returns a KindInternal error with a formatted message.
func NewInternalError(format string, args ...any) *Error {
	return &Error{Kind: KindInternal, Message: fmt.Sprintf(format, args...)}
}
