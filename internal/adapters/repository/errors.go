package repository

import "errors"

// Sentinel kinds for repository errors.
var (
	ErrEmptyCatalog    = errors.New("catalog has no courses")
	ErrInvalidCourse   = errors.New("course is missing an id")
	ErrDuplicateCourse = errors.New("duplicate course id")
	ErrInvalidRecord   = errors.New("invalid feedback record")
	ErrMalformedRow    = errors.New("malformed catalog row")
)
