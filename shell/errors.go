package shell

import "errors"

var (
	// ErrSearcherRequired is returned when a searcher is not provided.
	ErrSearcherRequired = errors.New("searcher required")

	// ErrOutputRequired is returned when an output writer is not provided.
	ErrOutputRequired = errors.New("output writer required")
)
