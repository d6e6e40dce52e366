// Package validation checks constructor configuration for the buffer, its
// worker pool, monitor and spill store. Every check reports a
// *errors.ValidationError naming the module and field, so callers can match
// errors.ErrInvalidConfiguration.
package validation
