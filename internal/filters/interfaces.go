package filters

import "image"

// Filter defines the standard interface for all image filters.
type Filter interface {
	Name() string
	Description() string
	// Apply returns a filtered copy of img. Strength is 0..100 and is
	// ignored by filters without a tunable parameter.
	Apply(img image.Image, strength int) *image.NRGBA
}
