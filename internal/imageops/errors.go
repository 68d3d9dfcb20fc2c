package imageops

import "github.com/pkg/errors"

// Caller errors. Anything else returned by this package is a processing failure.
var (
	ErrMissingInput      = errors.New("no image provided")
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrInvalidDimensions = errors.New("invalid dimensions")
	ErrInvalidQuality    = errors.New("invalid quality")
	ErrImageTooLarge     = errors.New("image too large")
)
