package builder

import "errors"

// ValidationError reports a user-correctable gap in the field being authored:
// a missing label, an empty option list, incomplete table metadata. Callers
// surface the message before any store call is attempted.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return "builder: " + e.Message
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
