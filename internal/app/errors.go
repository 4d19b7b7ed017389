package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrBackpressure  = errors.New("feedback queue is full")
	ErrNoCatalogPath = errors.New("no catalog path configured")
)
