package vocab

import "errors"

var (
	ErrUnknownFacet      = errors.New("unknown facet")
	ErrUnknownValue      = errors.New("value not in vocabulary")
	ErrInvalidVocabulary = errors.New("invalid vocabulary")
)
