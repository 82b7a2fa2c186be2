package service

import "errors"

var (
	// ErrInvalidInput marks caller-supplied parameters that failed validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound marks a referenced id absent at the time of the call.
	ErrNotFound = errors.New("not found")
	// ErrPersistence marks a failed read or write of the persisted document.
	// The intended mutation must be treated as not applied.
	ErrPersistence = errors.New("persistence failure")
)
