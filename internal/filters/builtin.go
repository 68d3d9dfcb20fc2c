package filters

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// simple adapts a function into a Filter.
type simple struct {
	name        string
	description string
	apply       func(img image.Image, strength int) *image.NRGBA
}

func (s simple) Name() string        { return s.name }
func (s simple) Description() string { return s.description }

func (s simple) Apply(img image.Image, strength int) *image.NRGBA {
	return s.apply(img, ClampStrength(strength))
}

func init() {
	Register(simple{"grayscale", "Removes all colour information", func(img image.Image, _ int) *image.NRGBA {
		return imaging.Grayscale(img)
	}})
	Register(simple{"invert", "Produces the colour negative", func(img image.Image, _ int) *image.NRGBA {
		return imaging.Invert(img)
	}})
	Register(simple{"blur", "Gaussian blur, stronger blurs more", func(img image.Image, strength int) *image.NRGBA {
		return imaging.Blur(img, sigma(strength, 10))
	}})
	Register(simple{"sharpen", "Unsharp mask sharpening", func(img image.Image, strength int) *image.NRGBA {
		return imaging.Sharpen(img, sigma(strength, 5))
	}})
	Register(simple{"sepia", "Warm brown vintage tone", sepia})
	Register(simple{"brightness", "Brightens the image, 50 leaves it unchanged", func(img image.Image, strength int) *image.NRGBA {
		return imaging.AdjustBrightness(img, float64(strength-50)*2)
	}})
	Register(simple{"contrast", "Raises contrast, 50 leaves it unchanged", func(img image.Image, strength int) *image.NRGBA {
		return imaging.AdjustContrast(img, float64(strength-50)*2)
	}})
	Register(simple{"emboss", "Raised relief effect", func(img image.Image, _ int) *image.NRGBA {
		return imaging.Convolve3x3(img, [9]float64{
			-2, -1, 0,
			-1, 1, 1,
			0, 1, 2,
		}, nil)
	}})
	Register(simple{"edges", "Highlights edges on a dark background", func(img image.Image, _ int) *image.NRGBA {
		return imaging.Convolve3x3(imaging.Grayscale(img), [9]float64{
			-1, -1, -1,
			-1, 8, -1,
			-1, -1, -1,
		}, nil)
	}})
}

// sigma maps strength 0..100 onto 0.1..max.
func sigma(strength int, max float64) float64 {
	s := float64(strength) / 100 * max
	if s < 0.1 {
		return 0.1
	}
	return s
}

func sepia(img image.Image, strength int) *image.NRGBA {
	amount := float64(strength) / 100
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		r, g, b := float64(c.R), float64(c.G), float64(c.B)
		tr := 0.393*r + 0.769*g + 0.189*b
		tg := 0.349*r + 0.686*g + 0.168*b
		tb := 0.272*r + 0.534*g + 0.131*b
		return color.NRGBA{
			R: clamp8(r + (tr-r)*amount),
			G: clamp8(g + (tg-g)*amount),
			B: clamp8(b + (tb-b)*amount),
			A: c.A,
		}
	})
}

func clamp8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
