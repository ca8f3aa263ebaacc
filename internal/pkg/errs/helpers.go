package errs

import (
	"errors"
	"strings"
)

// IsValidation reports whether err carries one of the input validation sentinels.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValueIsRequired) ||
		errors.Is(err, ErrValueIsInvalid) ||
		errors.Is(err, ErrValueIsOutOfRange)
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// sanitize keeps error messages on a single log line.
func sanitize(msg string) string {
	return lineBreaks.Replace(msg)
}
