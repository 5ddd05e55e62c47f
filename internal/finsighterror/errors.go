// Package finsighterror holds the error types shared by the record store, the
// analytics engine and the CLI.
package finsighterror

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyKeyword is returned when a keyword rule has no text after trimming.
	ErrEmptyKeyword = errors.New("keyword text must not be empty")
	// ErrDuplicateKeyword is returned when a user already has a rule with the same text.
	ErrDuplicateKeyword = errors.New("keyword already exists")
	// ErrDuplicateCategory is returned when a user already has a category with the same name.
	ErrDuplicateCategory = errors.New("category already exists")
)

// ValidationError represents a record field that failed validation.
type ValidationError struct {
	Record string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s %s", e.Record, e.Field, e.Reason)
}

// NotFoundError represents a lookup of a record that does not exist for the
// requesting user.
type NotFoundError struct {
	Kind string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Key)
}

// StoreError wraps a failure reading or writing one of the record files.
type StoreError struct {
	Operation string
	FilePath  string
	Err       error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Operation, e.FilePath, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is, or wraps, a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
