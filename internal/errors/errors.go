package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for type checking
var (
	ErrInvalidCardId      = errors.New("invalid card id")
	ErrInvalidState       = errors.New("invalid state")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// InvalidCardIdError indicates no card with the given id exists.
type InvalidCardIdError struct {
	ID int
}

func (e *InvalidCardIdError) Error() string {
	return fmt.Sprintf("card not found: %d", e.ID)
}

func (e *InvalidCardIdError) Unwrap() error {
	return ErrInvalidCardId
}

// InvalidStateError indicates a state outside "todo", "in prog", "done".
type InvalidStateError struct {
	Value string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("invalid state %q (expected one of: todo, in prog, done)", e.Value)
}

func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}

// StorageUnavailableError indicates the storage location can't be created or accessed.
type StorageUnavailableError struct {
	Path string
	Err  error
}

func (e *StorageUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("storage unavailable at %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("storage unavailable at %s", e.Path)
}

// Unwrap exposes both the sentinel and the underlying cause.
func (e *StorageUnavailableError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrStorageUnavailable}
	}
	return []error{ErrStorageUnavailable, e.Err}
}

// Helper constructors for common cases

func InvalidCardId(id int) error {
	return &InvalidCardIdError{ID: id}
}

func InvalidState(value string) error {
	return &InvalidStateError{Value: value}
}

func StorageUnavailable(path string, err error) error {
	return &StorageUnavailableError{Path: path, Err: err}
}

// IsInvalidCardId checks if an error is an invalid-card-id error.
func IsInvalidCardId(err error) bool {
	return errors.Is(err, ErrInvalidCardId)
}

// IsInvalidState checks if an error is an invalid-state error.
func IsInvalidState(err error) bool {
	return errors.Is(err, ErrInvalidState)
}

// IsStorageUnavailable checks if an error is a storage-unavailable error.
func IsStorageUnavailable(err error) bool {
	return errors.Is(err, ErrStorageUnavailable)
}
