package app

import "errors"

var (
	// ErrNotFound indicates that no record has the requested identifier.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput indicates that required input was missing or malformed.
	ErrInvalidInput = errors.New("invalid input")
)
