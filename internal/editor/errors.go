package editor

import (
	"errors"
	"strings"
)

var (
	ErrValidation    = errors.New("validation failed")
	ErrNotFound      = errors.New("item not found")
	ErrCancelled     = errors.New("cancelled by user")
	ErrNotDragging   = errors.New("no drag in progress")
	ErrScopeMismatch = errors.New("cannot drop item of this kind here")
)

// ValidationError перечисляет незаполненные поля формы.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing or invalid fields: " + strings.Join(e.Fields, ", ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }
