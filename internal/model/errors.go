package model

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by the store, the inventory service and the API.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrAuth       = errors.New("not authenticated")
	ErrUpload     = errors.New("asset upload failed")
	ErrDelete     = errors.New("asset delete failed")
)

// ValidationError reports a missing or malformed field. It is returned
// before any write is attempted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Is makes errors.Is(err, ErrValidation) match any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// AssetError wraps an object store failure during upload or delete.
type AssetError struct {
	Op  string // "upload" or "delete"
	Key string
	Err error
}

func (e *AssetError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("asset %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("asset %s %s: %v", e.Op, e.Key, e.Err)
}

func (e *AssetError) Unwrap() []error {
	kind := ErrUpload
	if e.Op == "delete" {
		kind = ErrDelete
	}
	return []error{kind, e.Err}
}
