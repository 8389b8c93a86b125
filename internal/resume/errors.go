package resume

import (
	"errors"
	"fmt"
)

// ErrNoDocuments is returned when a batch run is started without any input.
var ErrNoDocuments = errors.New("no documents supplied")

// UnsupportedFormatError marks a file whose extension is outside the accepted
// resume formats.
type UnsupportedFormatError struct {
	Ext string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Ext == "" {
		return "unsupported file format"
	}
	return fmt.Sprintf("unsupported file format %q", e.Ext)
}

// ExtractionError wraps a failure to read text out of a stored document.
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extracting text from %s: %v", e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// ParseError marks an AI reply that contained no decodable JSON object.
type ParseError struct {
	Backend string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid JSON response from %s: %v", e.Backend, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ScoreValidationError marks a decoded score reply that is missing a required
// non-empty reasons list.
type ScoreValidationError struct {
	Field string
}

func (e *ScoreValidationError) Error() string {
	return fmt.Sprintf("score response missing required %s entries", e.Field)
}

// BackendInvocationError wraps a transport-level failure calling an AI
// backend.
type BackendInvocationError struct {
	Backend string
	Err     error
}

func (e *BackendInvocationError) Error() string {
	return fmt.Sprintf("calling %s backend: %v", e.Backend, e.Err)
}

func (e *BackendInvocationError) Unwrap() error { return e.Err }
