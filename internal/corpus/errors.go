package corpus

import "errors"

var (
	// ErrCorpusUnavailable means no readable snapshot exists at any
	// configured location.
	ErrCorpusUnavailable = errors.New("corpus snapshot unavailable")
)
