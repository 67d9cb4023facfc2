package errors

import "errors"

var (
	ErrNotFound           = errors.New("booking record not found")
	ErrInvalidReference   = errors.New("invalid booking reference format")
	ErrDuplicateReference = errors.New("booking reference already exists")
)
