package codec

import (
	"errors"
	"fmt"
)

// Error is the only failure value produced by codecs and schemas. It carries a
// human-readable message and nothing else.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Errorf builds an Error from a format string.
func Errorf(format string, args ...any) *Error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}

// Structural reports a wrong or missing delimiter, an unexpected end of input,
// a tag mismatch or unexpected trailing data.
func Structural(format string, args ...any) *Error {
	return Errorf("structural: "+format, args...)
}

// Value reports text that does not parse as the requested type, or a fixed
// width read without enough bytes behind it.
func Value(format string, args ...any) *Error {
	return Errorf("value: "+format, args...)
}

// Capacity reports a length that does not fit the wire length field.
func Capacity(format string, args ...any) *Error {
	return Errorf("capacity: "+format, args...)
}

// Wrap prefixes err's message with context. Non-codec errors are folded into a
// codec Error so callers always see one error type.
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	var ce *Error
	if errors.As(err, &ce) {
		return &Error{Message: context + ": " + ce.Message}
	}
	return &Error{Message: context + ": " + err.Error()}
}
