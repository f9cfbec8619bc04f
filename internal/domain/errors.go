package domain

import (
	"errors"
	"fmt"
)

// Request- and data-state errors surfaced by the services. None of these
// are retried; the HTTP layer maps them to statuses.
var (
	ErrInvalidParent   = errors.New("invalid parent, couldn't create comment")
	ErrCommentNotFound = errors.New("comment not found")
	ErrPostNotFound    = errors.New("post not found")
	ErrCommentNotChild = errors.New("comment is not a child of post")
	ErrNotAuthor       = errors.New("user must be author")
	ErrCorruptTree     = errors.New("reply graph contains a cycle")
)

// StorageError wraps an underlying persistence failure. It is surfaced
// unchanged to the caller; any retry policy lives outside the core.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// WrapStorage returns nil when err is nil, otherwise a *StorageError.
func WrapStorage(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
