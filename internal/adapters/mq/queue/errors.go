package queue

import "errors"

// Sentinel kinds for queue errors.
var (
	ErrFull         = errors.New("queue full")
	ErrClosed       = errors.New("queue closed")
	ErrBackpressure = errors.New("submission sink unavailable")
)
