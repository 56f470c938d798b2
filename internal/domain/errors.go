package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingColumn signals a raw recipe table without one of the required columns.
	ErrMissingColumn = errors.New("missing column")
	// ErrArtifactNotFound signals a missing persisted artifact.
	ErrArtifactNotFound = errors.New("artifact not found")
	// ErrArtifactMismatch signals artifacts that were not fitted together.
	ErrArtifactMismatch = errors.New("artifact mismatch")
	// ErrSearchFailed signals an internal failure of the search operation.
	// It is never the same as a search that found nothing.
	ErrSearchFailed = errors.New("search failed")
	// ErrInvalidRequest signals a malformed client request.
	ErrInvalidRequest = errors.New("invalid request")
)

// MissingColumnError wraps ErrMissingColumn with the column name.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%s in CSV: %s", ErrMissingColumn.Error(), e.Column)
}

func (e *MissingColumnError) Unwrap() error { return ErrMissingColumn }

// NewMissingColumn creates a missing column error.
func NewMissingColumn(column string) error {
	return &MissingColumnError{Column: column}
}
