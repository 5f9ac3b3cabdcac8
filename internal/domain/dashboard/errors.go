package dashboard

import "errors"

var (
	ErrInvalidQuery      = errors.New("invalid dashboard query")
	ErrInvalidTransition = errors.New("invalid status transition")
)
