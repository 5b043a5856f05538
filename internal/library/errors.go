package library

import "errors"

var (
	// ErrNotFound indicates the requested entity doesn't exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate indicates a title+year or collection name already exists.
	ErrDuplicate = errors.New("duplicate entry")

	// ErrInvalid indicates a field failed validation.
	ErrInvalid = errors.New("invalid value")
)
