package errors

import "errors"

var (
	ErrNotFound = errors.New("item not found")

	ErrInvalidID = errors.New("invalid item ID format")
)
