package filter

import "errors"

var (
	ErrUnknownFacet = errors.New("facet is not filterable")
	ErrUnknownValue = errors.New("facet value not in vocabulary")
	ErrTermTooLong  = errors.New("search term too long")
	ErrUnknownSort  = errors.New("unknown sort order")
)
