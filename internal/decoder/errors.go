package decoder

import (
	"errors"
	"fmt"
)

var (
	ErrNotDictionary     = errors.New("metainfo is not a dictionary")
	ErrMissingField      = errors.New("missing field")
	ErrFieldType         = errors.New("invalid field type")
	ErrAmbiguousLayout   = errors.New("info has both length and files")
	ErrMissingLayout     = errors.New("info has neither length nor files")
	ErrEmptyPath         = errors.New("file path is empty")
	ErrInvalidHashLength = errors.New("pieces length is not a multiple of 20")
)

// MissingFieldError names a required key that is absent. Nested keys are
// written with dots, e.g. "info.piece length".
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%v: %q", ErrMissingField, e.Field)
}

func (e *MissingFieldError) Unwrap() error {
	return ErrMissingField
}

type FieldTypeError struct {
	Field string
	Want  string
}

func (e *FieldTypeError) Error() string {
	return fmt.Sprintf("%v: %q must be %s", ErrFieldType, e.Field, e.Want)
}

func (e *FieldTypeError) Unwrap() error {
	return ErrFieldType
}
