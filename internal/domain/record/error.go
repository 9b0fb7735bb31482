package record

import (
	"errors"
)

var (
	ErrStoreUnavailable  = errors.New("structured store unavailable")
	ErrWriteFailed       = errors.New("store write failed")
	ErrValidation        = errors.New("validation failed")
	ErrUnknownCollection = errors.New("unknown collection")
	ErrBusy              = errors.New("another operation is in progress")
)
