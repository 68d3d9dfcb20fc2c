package watermarking

import "image"

// Watermarker defines the standard interface for embedding visible watermarks.
type Watermarker interface {
	Name() string
	Description() string
	Embed(img image.Image, mark Mark) (*image.NRGBA, error)
}
