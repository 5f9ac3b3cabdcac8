package service

import "errors"

// ErrStart is returned when the service cannot load its dataset.
var ErrStart = errors.New("service start failed")
