package service

import (
	"errors"
	"fmt"
)

// ErrNotFound means the record id does not resolve to a stored record.
var ErrNotFound = errors.New("record not found")

// ErrNotOwner means the record exists but belongs to another user. It is
// distinct from ErrNotFound: cross-owner access is an authorization
// failure, never a silent miss.
var ErrNotOwner = errors.New("not authorized to access this record")

// ValidationError reports input rejected before any network call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// StorageError wraps an object storage failure. During ingestion it is
// fatal; during deletion it leaves the record intact and retryable.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
