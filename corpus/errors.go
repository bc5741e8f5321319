package corpus

import "errors"

var (
	// ErrEmptyCorpus indicates a corpus without poems.
	ErrEmptyCorpus = errors.New("corpus contains no sonnets")

	// ErrInvalidCorpus indicates a corpus that failed to decode or validate.
	ErrInvalidCorpus = errors.New("invalid corpus")
)
