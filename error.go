package rcscript

import (
	"errors"
	"fmt"
)

var (
	// ErrIDOutOfRange is matched by every IDRangeError.
	ErrIDOutOfRange = errors.New("identifier out of range")
	// ErrUndeclaredLanguage is returned by Generate when a resource was attached to a
	// language the document was not created with.
	ErrUndeclaredLanguage = errors.New("language not declared")
	// ErrInvalidPath is returned for a resolved asset path that is not valid
	// UTF-8. Scripts are UTF-8, so such a path cannot be written unchanged.
	ErrInvalidPath = errors.New("path is not valid UTF-8")
)

// IDRangeError reports an integer that does not fit an identifier.
type IDRangeError struct {
	Value int
}

func (e *IDRangeError) Error() string {
	return fmt.Sprintf("id out of bound, expected u16 or -1, actual value = %d", e.Value)
}

func (e *IDRangeError) Unwrap() error {
	return ErrIDOutOfRange
}
