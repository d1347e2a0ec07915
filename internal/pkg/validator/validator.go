package validator

import (
	"regexp"
	"strings"
	"time"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

// ToMap returns the errors keyed by field name. When a field failed more than
// once the first message wins.
func (v ValidationErrors) ToMap() FieldErrors {
	result := make(FieldErrors, len(v))
	for _, err := range v {
		if _, exists := result[err.Field]; exists {
			continue
		}
		result[err.Field] = err.Message
	}
	return result
}

// FieldErrors is the per-field error state of a form.
type FieldErrors map[string]string

// Clear drops the error of a single field and leaves the others untouched.
func (f FieldErrors) Clear(field string) {
	delete(f, field)
}

func (f FieldErrors) Has(field string) bool {
	_, ok := f[field]
	return ok
}

func (f FieldErrors) Empty() bool {
	return len(f) == 0
}

// Clone returns a copy that is safe to hand out of a lock.
func (f FieldErrors) Clone() FieldErrors {
	out := make(FieldErrors, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// local@domain.tld with no whitespace and a single @ on each side of the split.
// \p{Z} and U+FEFF are the Unicode spaces that RE2 \s does not match.
var emailRegex = regexp.MustCompile(`^[^\s\p{Z}\x{FEFF}@]+@[^\s\p{Z}\x{FEFF}@]+\.[^\s\p{Z}\x{FEFF}@]+$`)

// Email validation
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", dateStr)
	return date, err == nil
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}
