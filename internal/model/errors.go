package model

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is checks against the typed errors below.
var (
	ErrValidation  = errors.New("validation failed")
	ErrNotFound    = errors.New("line not found")
	ErrPersistence = errors.New("persistence failed")
)

// ValidationError reports invalid caller input. Nothing is applied when it is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NotFoundError reports that an id does not resolve to a line in the wanted
// status with a positive count. A selection that went stale after another
// operation pruned the line ends up here too.
type NotFoundError struct {
	ID   int64
	Want Status
}

func (e *NotFoundError) Error() string {
	if e.Want == "" {
		return fmt.Sprintf("line %d not found", e.ID)
	}
	return fmt.Sprintf("no %s line %d with stock left", e.Want, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// PersistenceError wraps a load or save failure from a storage adapter.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s inventory: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }
