package domain

import "fmt"

// CodedError is a rejection with a stable numeric code. Clients render
// specific UI messages from the code, so codes must never be renumbered.
type CodedError struct {
	Code    int
	Message string
}

func (e *CodedError) Error() string {
	return fmt.Sprintf("%d: %s", e.Code, e.Message)
}

// WithDetail returns a copy carrying extra context while keeping the code.
// errors.Is against the sentinel still matches via Is.
func (e *CodedError) WithDetail(format string, args ...interface{}) *CodedError {
	return &CodedError{
		Code:    e.Code,
		Message: e.Message + ": " + fmt.Sprintf(format, args...),
	}
}

// Is matches any CodedError with the same numeric code
func (e *CodedError) Is(target error) bool {
	t, ok := target.(*CodedError)
	return ok && t.Code == e.Code
}

var (
	// ErrValidation is returned for malformed or missing input, rejected before any state is touched
	ErrValidation = &CodedError{18001, "invalid request"}

	// ErrCodeNotFound is returned when no tracing code matches the given key
	ErrCodeNotFound = &CodedError{18002, "tracing code not found"}

	// ErrWrongState is returned when the operation is not legal in the code's current state
	ErrWrongState = &CodedError{18003, "operation not allowed in current state"}

	// ErrNotPermitted is returned when the actor's role or identity does not allow the operation
	ErrNotPermitted = &CodedError{18004, "operation not permitted for actor"}

	// ErrFinalized is returned for any update to a code with isEnd set
	ErrFinalized = &CodedError{18005, "tracing code finalized, no further edits"}

	// ErrReceiverNotFound is returned when a business receiver reference does not resolve
	ErrReceiverNotFound = &CodedError{18006, "receiver not found"}

	// ErrChildInvalid is returned when a bundle child code is missing or in a non-bindable state
	ErrChildInvalid = &CodedError{18007, "bundle child code invalid"}

	// ErrConflict is returned when a concurrent update won the optimistic race
	ErrConflict = &CodedError{18008, "tracing code was modified concurrently"}

	// ErrOrderNotFound is returned when the issuance order does not exist
	ErrOrderNotFound = &CodedError{18010, "order not found"}

	// ErrOrderNotPaid is returned when the issuance order is not payment-confirmed
	ErrOrderNotPaid = &CodedError{18011, "order not paid"}

	// ErrManifestWrite is returned when the issuance manifest could not be written
	ErrManifestWrite = &CodedError{18012, "manifest write failed"}

	// ErrOrderUpdate is returned when stamping the order as printed failed
	ErrOrderUpdate = &CodedError{18013, "order update failed"}
)
