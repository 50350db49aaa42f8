// Package raster provides typed, windowed access to multi-band raster
// pixel data over pluggable block storage drivers.
package raster

import "errors"

// Common errors. Failures returned by this package wrap one of these
// sentinels with call-specific context; match with errors.Is.
var (
	ErrInvalidWindow     = errors.New("invalid window")
	ErrInvalidBand       = errors.New("invalid band")
	ErrInvalidDataset    = errors.New("invalid dataset")
	ErrShapeMismatch     = errors.New("buffer shape mismatch")
	ErrInvalidBlockIndex = errors.New("block index out of range")
	ErrInvalidBuffer     = errors.New("invalid buffer")
	ErrIO                = errors.New("storage transfer failed")
	ErrCancelled         = errors.New("operation cancelled")
)
