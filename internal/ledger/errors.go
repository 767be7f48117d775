package ledger

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Error kinds. Every error returned by the engine or a Store wraps
// exactly one of these, so callers classify with errors.Is.
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrValidation  = errors.New("validation failed")
	ErrUnavailable = errors.New("ledger unavailable")
)

// kindError carries a user facing message and unwraps to its kind.
type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string {
	return e.msg
}

func (e *kindError) Unwrap() error {
	return e.kind
}

// NotFound reports a resource that does not exist or is not owned by the caller.
func NotFound(resource string) error {
	return &kindError{kind: ErrNotFound, msg: fmt.Sprintf("there is no %s matching your query", resource)}
}

// Invalid reports input rejected before any mutation.
func Invalid(msg string) error {
	return &kindError{kind: ErrValidation, msg: msg}
}

// Unavailable reports a failure of the record store.
func Unavailable(msg string) error {
	return &kindError{kind: ErrUnavailable, msg: msg}
}

// Conflict reports a mutation refused because of existing references.
func Conflict(msg string) error {
	return &kindError{kind: ErrConflict, msg: msg}
}

// ConflictError is returned when an account cannot be deleted because
// transactions still reference it.
type ConflictError struct {
	AccountID    uuid.UUID
	Transactions int64
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("account has %d transaction(s); remove or reassign them first", e.Transactions)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}
