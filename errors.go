package csvcursor

import (
	"errors"
	"fmt"
)

var (
	// ErrBareQuote is returned when a quote appears past the first character of an unquoted field.
	ErrBareQuote = errors.New("csvcursor: bare quote in non-quoted field")
	// ErrUnterminatedQuote is returned when a quoted field has no closing quote before the line ends.
	ErrUnterminatedQuote = errors.New("csvcursor: unterminated quoted field")
	// ErrTrailingQuote is returned when a character other than a comma follows a closing quote.
	ErrTrailingQuote = errors.New("csvcursor: unexpected character after closing quote")
	// ErrInvalidSkip is returned when a negative field skip count is requested.
	ErrInvalidSkip = errors.New("csvcursor: negative skip count")
)

// ParseError contains location information for CSV parsing errors.
// Line and Column are 1-based.
type ParseError struct {
	Line   int
	Column int
	Err    error
}

// Error formats the parse error message with the stored line, column, and Err values.
func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("csvcursor: parse error on line %d, column %d: %v", e.Line, e.Column, e.Err)
}

// Unwrap returns the underlying Err so ParseError participates in errors.Unwrap.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
