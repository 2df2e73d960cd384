package validator

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/wapi/api/internal/model"
)

// Error is a validation failure with a stable code that is returned to
// clients as the response body.
type Error struct {
	Code string
}

func (e *Error) Error() string { return e.Code }

var (
	ErrInvalidValue = &Error{Code: "size_parameter_invalid_value"}
	ErrOutOfRange   = &Error{Code: "size_parameter_out_of_range"}
	ErrNullInput    = &Error{Code: "word_input_null"}
	ErrInvalidSize  = &Error{Code: "word_input_invalid_size"}
)

// Code returns the client-facing code of a validation error, or "" when err
// is not one.
func Code(err error) string {
	var verr *Error
	if errors.As(err, &verr) {
		return verr.Code
	}
	return ""
}

// NormalizeSize parses the requested word length. An empty value selects the
// default length.
func NormalizeSize(input string) (int, error) {
	if input == "" {
		return model.DefaultWordSize, nil
	}

	// Surrounding spaces, a sign and leading zeros are accepted, as the
	// published API always has.
	size, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, ErrInvalidValue
	}
	if !IsSupportedSize(size) {
		return 0, ErrOutOfRange
	}
	return size, nil
}

// NormalizeWord trims and lowercases a candidate word and checks its length.
func NormalizeWord(input string) (string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", ErrNullInput
	}

	word := strings.ToLower(trimmed)
	if !IsSupportedSize(utf8.RuneCountInString(word)) {
		return "", ErrInvalidSize
	}
	return word, nil
}

func IsSupportedSize(size int) bool {
	return size >= model.MinWordSize && size <= model.MaxWordSize
}
