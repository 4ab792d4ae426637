package todo

import "errors"

// ErrEmptyText is the cause of a ValidationError for blank task text.
var ErrEmptyText = errors.New("invalid text: must not be empty")

// ValidationError reports a rejected input field. No state is changed when
// an operation returns one. The message is that of Err, which already names
// the field.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
