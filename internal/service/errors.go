package service

import "fmt"

// ValidationError marks a client-side input problem: the request fails with
// no state change and retrying unchanged input will fail again.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Msg)
}

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Msg: msg}
}
