package projects

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrProjectIDRequired = errors.New("projects: project id required")
	ErrTitlePTRequired   = errors.New("projects: portuguese title is required")
	ErrTitleENRequired   = errors.New("projects: english title is required")
	ErrStatusInvalid     = errors.New("projects: status is invalid")
	ErrSlugInvalid       = errors.New("projects: slug contains invalid characters")
	ErrNotFound          = errors.New("projects: not found")
	ErrBlockIncomplete   = errors.New("projects: block payload is incomplete")
)

// NotFoundError reports a missing entity, or one hidden by the publish gate:
// an unpublished project looked up through the public slug path is
// indistinguishable from a missing one.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e == nil {
		return ErrNotFound.Error()
	}
	key := strings.TrimSpace(e.Key)
	if key == "" {
		return fmt.Sprintf("projects: %s not found", e.Resource)
	}
	return fmt.Sprintf("projects: %s %q not found", e.Resource, key)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// BlockValidationError carries per-block failures from a replace request.
type BlockValidationError struct {
	// Positions holds the zero-based indexes of the offending blocks.
	Positions []int
}

func (e *BlockValidationError) Error() string {
	if e == nil || len(e.Positions) == 0 {
		return ErrBlockIncomplete.Error()
	}
	parts := make([]string, 0, len(e.Positions))
	for _, p := range e.Positions {
		parts = append(parts, fmt.Sprintf("%d", p))
	}
	return fmt.Sprintf("%s: positions %s", ErrBlockIncomplete.Error(), strings.Join(parts, ", "))
}

func (e *BlockValidationError) Unwrap() error {
	return ErrBlockIncomplete
}
