package dictionary

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnsupportedLocale is matched by errors.Is for every UnsupportedLocaleError.
var ErrUnsupportedLocale = errors.New("unsupported locale")

// UnsupportedLocaleError is returned when a dictionary is requested for a
// locale the site does not ship.
type UnsupportedLocaleError struct {
	Locale string
}

func (e *UnsupportedLocaleError) Error() string {
	return fmt.Sprintf("dictionary for locale %q not found", e.Locale)
}

func (e *UnsupportedLocaleError) Is(target error) bool {
	return target == ErrUnsupportedLocale
}

// LoadError wraps a failure to read, decode or validate one locale document.
type LoadError struct {
	Locale string
	Cause  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load dictionary %s: %v", e.Locale, e.Cause)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// FieldError is a single failed constraint at a field path.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every field that failed validation.
type ValidationError struct {
	Errors []FieldError
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// ParityError reports keys present in some locales but missing in others.
type ParityError struct {
	// Missing maps a locale to the key paths it lacks.
	Missing map[string][]string
}

func (e *ParityError) Error() string {
	locales := make([]string, 0, len(e.Missing))
	for l := range e.Missing {
		locales = append(locales, l)
	}
	sort.Strings(locales)

	var sb strings.Builder
	sb.WriteString("dictionary parity check failed:")
	for _, l := range locales {
		sb.WriteString(fmt.Sprintf(" %s missing [%s];", l, strings.Join(e.Missing[l], ", ")))
	}
	return strings.TrimSuffix(sb.String(), ";")
}
