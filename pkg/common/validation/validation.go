// Package validation provides common validation utilities for the circbuf library.
package validation

import (
	"strconv"
	"time"

	gferrors "github.com/vnykmshr/circbuf/pkg/common/errors"
)

// ValidatePositive validates that an integer value is positive (> 0).
// Returns a ValidationError if the value is not positive.
func ValidatePositive(module, field string, value int) error {
	if value <= 0 {
		return gferrors.NewValidationError(module, field, value, "must be positive").
			WithHint("value must be greater than 0")
	}
	return nil
}

// ValidateAtMost validates that an integer value does not exceed limit.
func ValidateAtMost(module, field string, value, limit int) error {
	if value > limit {
		return gferrors.NewValidationError(module, field, value, "exceeds maximum").
			WithHint("use a value no greater than " + strconv.Itoa(limit))
	}
	return nil
}

// ValidateNonNegativeDuration validates that a duration is zero or positive.
// Zero usually selects a package default.
func ValidateNonNegativeDuration(module, field string, value time.Duration) error {
	if value < 0 {
		return gferrors.NewValidationError(module, field, value, "cannot be negative").
			WithHint("use 0 for the default or a positive duration")
	}
	return nil
}

// ValidateRatio validates that a float64 lies in (0, 1].
func ValidateRatio(module, field string, value float64) error {
	if value <= 0 || value > 1 {
		return gferrors.NewValidationError(module, field, value, "must be in (0, 1]").
			WithHint("express the ratio as a fraction, e.g. 0.9")
	}
	return nil
}

// ValidateNotNil validates that an interface value is not nil.
// Returns a ValidationError if the value is nil.
func ValidateNotNil(module, field string, value interface{}) error {
	if value == nil {
		return gferrors.NewValidationError(module, field, nil, "cannot be nil").
			WithHint("provide a valid " + field)
	}
	return nil
}

// ValidateNotEmpty validates that a string value is not empty.
// Returns a ValidationError if the string is empty.
func ValidateNotEmpty(module, field string, value string) error {
	if value == "" {
		return gferrors.NewValidationError(module, field, value, "cannot be empty").
			WithHint("provide a non-empty " + field)
	}
	return nil
}
