package present

import "errors"

// ErrUnknownMode is returned for a view mode other than grid or list.
var ErrUnknownMode = errors.New("unknown view mode")
