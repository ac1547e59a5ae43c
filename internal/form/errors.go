package form

import "fmt"

// ParseError reports raw input that could not be stored in a draft field.
// The field keeps its previous value when it is returned.
type ParseError struct {
	Field  Field
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid value %q for %s: %s", e.Input, e.Field, e.Reason)
}

func newParseError(field Field, input string, reason string) *ParseError {
	return &ParseError{Field: field, Input: input, Reason: reason}
}
