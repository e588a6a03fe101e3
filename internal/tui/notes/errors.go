package notes

import (
	"fmt"

	"github.com/Paintersrp/kn/internal/api"
)

// ValidationError rejects user input before any request is made. Info
// marks a notice rather than a failure.
type ValidationError struct {
	Message string
	Info    bool
}

func (e *ValidationError) Error() string {
	return e.Message
}

type ClipboardError struct {
	Message string
	Err     error
}

func (e *ClipboardError) Error() string {
	return e.Message
}

func (e *ClipboardError) Unwrap() error {
	return e.Err
}

type SaveError struct {
	Err error
}

func (e *SaveError) Error() string {
	return saveFailedPrefix + api.MessageOr(e.Err, api.GenericErrorMessage)
}

func (e *SaveError) Unwrap() error {
	return e.Err
}

func pageRangeError(total int) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(pageTooLargeFormat, total)}
}
