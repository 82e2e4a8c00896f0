package internal

import "github.com/pkg/errors"

// Threading errors up and down all the recursive operations during
// location and legalization would add a ton of complexity to the code.
// Instead, we use panics, and the public API recovers to convert to an error.

// Wrapping the error in its own type means runtime panics (which are also
// errors) are never mistaken for ours.
type TriangulateError struct {
	error
}

func (e TriangulateError) Unwrap() error {
	return e.error
}

func (e TriangulateError) Cause() error {
	return e.error
}

// Panic with a TriangulateError.
func fatalf(format string, args ...interface{}) {
	panic(TriangulateError{errors.Errorf(format, args...)})
}

// Panic with a TriangulateError wrapping an existing error.
func fatal(err error) {
	panic(TriangulateError{err})
}

func HandleTriangulatePanicRecover(r interface{}) error {
	if r != nil {
		if triangulateError, ok := r.(TriangulateError); ok {
			return triangulateError.error
		}
		panic(r)
	}
	return nil
}
