package core

import (
	"errors"
)

var (
	// ErrInvalidInput is returned when geometry or asset data cannot be used,
	// for example a bounding box built from an empty point set.
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrAssetNotFound    = errors.New("asset not found")
	ErrUnknownAssetType = errors.New("unknown asset type")
	ErrUnknownID        = errors.New("unknown identifier")
	ErrPoolClosed       = errors.New("job system is shut down")
	ErrUnknown          = errors.New("unknown")
)
