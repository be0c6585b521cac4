package signup

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/billie-coop/fieldstate/internal/field"
)

// MaxAge is the largest accepted age.
const MaxAge = 150

// Required rejects blank values.
func Required(v string) *string {
	if strings.TrimSpace(v) == "" {
		return field.Invalid("required")
	}
	return nil
}

// Username returns the username validator: required, at least minLen
// characters, letters, digits, dash and underscore only.
func Username(minLen int) field.Validator[string, string] {
	return func(v string) *string {
		if err := Required(v); err != nil {
			return err
		}
		if n := len([]rune(v)); n < minLen {
			return field.Invalid(fmt.Sprintf("at least %d characters", minLen))
		}
		for _, r := range v {
			if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != '_' {
				return field.Invalid(fmt.Sprintf("%q is not allowed", r))
			}
		}
		return nil
	}
}

// Age accepts a whole number between 0 and MaxAge.
func Age(v string) *string {
	if err := Required(v); err != nil {
		return err
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return field.Invalid("must be a whole number")
	}
	if n < 0 {
		return field.Invalid("must not be negative")
	}
	if n > MaxAge {
		return field.Invalid(fmt.Sprintf("must be at most %d", MaxAge))
	}
	return nil
}
