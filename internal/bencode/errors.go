package bencode

import (
	"errors"
	"fmt"
)

var (
	ErrUnrecognizedToken      = errors.New("unrecognized token")
	ErrMalformedInteger       = errors.New("malformed integer")
	ErrMalformedLength        = errors.New("malformed string length")
	ErrTruncatedString        = errors.New("truncated string")
	ErrNonStringKey           = errors.New("dictionary key is not a string")
	ErrUnterminatedCollection = errors.New("unterminated list or dictionary")
	ErrNestingTooDeep         = errors.New("nesting too deep")
	ErrTrailingData           = errors.New("trailing data after value")
	ErrBinaryString           = errors.New("byte string is not valid text")

	// ErrMissingValue is an UnrecognizedToken: a value was expected where the
	// dictionary ended.
	ErrMissingValue = fmt.Errorf("%w: dictionary key has no value", ErrUnrecognizedToken)
)

// SyntaxError reports where in the input a grammar rule failed.
type SyntaxError struct {
	Offset int
	Err    error
	Detail string
}

func (e *SyntaxError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("bencode: %v at offset %d", e.Err, e.Offset)
	}
	return fmt.Sprintf("bencode: %v at offset %d: %s", e.Err, e.Offset, e.Detail)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}
