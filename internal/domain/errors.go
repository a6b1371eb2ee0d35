package domain

import "errors"

// Sentinel errors of the analytics core. Call sites wrap these with context
// via fmt.Errorf and %w; callers match with errors.Is.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotAuthorized      = errors.New("not authorized")
	ErrNotFound           = errors.New("not found")
	ErrArithmeticOverflow = errors.New("arithmetic overflow")
)
