package domain

import "errors"

var (
	ErrNoCategory       = errors.New("no category selected")
	ErrCategoryNotFound = errors.New("category not found")
	ErrEmptyCategory    = errors.New("category has no values")
)
