package model

import "errors"

// Sentinel kinds for model validation errors.
var (
	ErrInvalidPreference = errors.New("invalid preference")
	ErrInvalidFeedback   = errors.New("invalid feedback")
)
