package apperror

import "errors"

// Base error kinds. Domain errors wrap one of these so the HTTP layer can
// map them without knowing every sentinel.
var (
	ErrValidation = errors.New("validation failed")
	ErrPermission = errors.New("permission denied")
	ErrNotFound   = errors.New("not found")
)

// IsValidation reports whether err is (or wraps) a validation failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsPermission reports whether err is (or wraps) a permission failure.
func IsPermission(err error) bool {
	return errors.Is(err, ErrPermission)
}

// IsNotFound reports whether err is (or wraps) a missing-entity failure.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// Message returns the human readable part of a domain error, i.e. the text
// after the base kind prefix.
func Message(err error) string {
	msg := err.Error()
	for _, base := range []error{ErrValidation, ErrPermission, ErrNotFound} {
		prefix := base.Error() + ": "
		if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
			return msg[len(prefix):]
		}
	}
	return msg
}
