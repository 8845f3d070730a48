package roster

import (
	"errors"
	"fmt"
)

var (
	ErrGradeOutOfRange = errors.New("grade must be between 1 and 11")
	ErrInvalidSection  = errors.New("section must be a single letter")
	ErrDuplicateClass  = errors.New("duplicate class")
	ErrMissingColumn   = errors.New("missing required column")
	ErrInvalidField    = errors.New("invalid field value")
)

// LoadError reports an unreadable or malformed roster source. Line is 1-based
// and counts the header; zero means the error is not tied to a line.
type LoadError struct {
	Source string
	Line   int
	Field  string
	Err    error
}

func (e *LoadError) Error() string {
	msg := "load " + e.Source
	if e.Line > 0 {
		msg += fmt.Sprintf(" line %d", e.Line)
	}
	if e.Field != "" {
		msg += " field " + e.Field
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
