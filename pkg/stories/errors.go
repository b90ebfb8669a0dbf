package stories

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrNotFound is returned when a story does not exist or has expired,
	// the two cases are never distinguished.
	ErrNotFound = errors.New("story not found")

	// ErrForbidden is returned when the requester does not own the story.
	ErrForbidden = errors.New("not allowed")

	// ErrQuestionsDisabled is returned for question engagements on stories
	// that do not permit them.
	ErrQuestionsDisabled = errors.New("questions are disabled for this story")
)

// ValidationError reports a malformed story or engagement payload.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// ReferenceError reports a referenced entity that does not exist.
type ReferenceError struct {
	Kind string
	ID   interface{}
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("referenced %s %v does not exist", e.Kind, e.ID)
}
