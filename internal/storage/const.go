package storage

import (
	"errors"
)

var (
	ErrStorageUnavailable = errors.New("storage unavailable")
)
