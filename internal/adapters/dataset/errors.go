package dataset

import "errors"

var (
	ErrLoadDataset    = errors.New("load dataset failed")
	ErrInvalidDataset = errors.New("invalid dataset")
)
