package negra

import (
	"errors"
	"fmt"
)

// ErrParse is the sentinel wrapped by every ParseError.
var ErrParse = errors.New("malformed export")

// ParseError reports a line that does not follow the export syntax.
type ParseError struct {
	Line int

	// The sentence being read, -1 outside of a sentence
	Sentence int

	Msg string
	Err error
}

func (e *ParseError) Error() string {
	msg := e.Msg
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	if e.Sentence >= 0 {
		return fmt.Sprintf("line %d (sentence %d): %s", e.Line, e.Sentence, msg)
	}
	return fmt.Sprintf("line %d: %s", e.Line, msg)
}

// Unwrap allows errors.Is(err, ErrParse) to match.
func (e *ParseError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrParse, e.Err}
	}
	return []error{ErrParse}
}

func (r *Reader) errorf(sentenceId int, format string, args ...any) *ParseError {
	return &ParseError{
		Line:     r.line,
		Sentence: sentenceId,
		Msg:      fmt.Sprintf(format, args...),
	}
}
