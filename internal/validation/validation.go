// Package validation provides pure input-shape checks used by the command
// layer before any request reaches a service. Every helper returns a
// (valid, message) pair instead of an error so callers can report all the
// context they have without unwrapping.
package validation

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/badoux/checkmail"
)

// Email reports whether s is a syntactically valid email address
func Email(s string) (bool, string) {
	if s == "" {
		return false, "email is required"
	}
	if err := checkmail.ValidateFormat(s); err != nil {
		return false, fmt.Sprintf("invalid email format: %s", s)
	}
	return true, ""
}

// Date reports whether s parses as a YYYY-MM-DD date
func Date(s string) (bool, string) {
	if s == "" {
		return false, "date is required"
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return false, fmt.Sprintf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return true, ""
}

// Required reports whether value is non-empty after trimming whitespace
func Required(value, fieldName string) (bool, string) {
	if strings.TrimSpace(value) == "" {
		return false, fieldName + " is required"
	}
	return true, ""
}

// Length reports whether value's length is within [min, max].
// Pass min 0 or max 0 to skip that bound.
func Length(value string, min, max int, fieldName string) (bool, string) {
	n := len(value)
	if min > 0 && n < min {
		return false, fmt.Sprintf("%s must be at least %d characters", fieldName, min)
	}
	if max > 0 && n > max {
		return false, fmt.Sprintf("%s must be at most %d characters", fieldName, max)
	}
	return true, ""
}

// IntRange reports whether value parses as an integer within [min, max]
func IntRange(value string, min, max int, fieldName string) (bool, string) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return false, fieldName + " must be an integer"
	}
	if n < min {
		return false, fmt.Sprintf("%s must be at least %d", fieldName, min)
	}
	if n > max {
		return false, fmt.Sprintf("%s must be at most %d", fieldName, max)
	}
	return true, ""
}

// OneOf reports whether value is one of the allowed values
func OneOf(value string, allowed []string, fieldName string) (bool, string) {
	for _, v := range allowed {
		if value == v {
			return true, ""
		}
	}
	return false, fmt.Sprintf("%s must be one of: %s", fieldName, strings.Join(allowed, ", "))
}

// FutureDate reports whether s is a valid YYYY-MM-DD date strictly after
// today
func FutureDate(s string, fieldName string) (bool, string) {
	if ok, msg := Date(s); !ok {
		return false, msg
	}
	parsed, _ := time.Parse("2006-01-02", s)
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if !parsed.After(today) {
		return false, fieldName + " must be a future date"
	}
	return true, ""
}
