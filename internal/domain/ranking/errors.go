package ranking

import "errors"

// Error kinds returned by the ranking package.
var (
	// ErrEmptyCatalog indicates ranking was attempted before any
	// catalog snapshot was loaded.
	ErrEmptyCatalog = errors.New("catalog is empty")
)
