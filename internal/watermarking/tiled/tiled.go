package tiled

import (
	"image"
	"image/draw"

	"github.com/disintegration/imaging"

	"toolbox/internal/watermarking"
)

// Tiled repeats the label over the whole image in a brick pattern.
type Tiled struct {
	Algorithm string
}

func init() {
	tiled := &Tiled{
		Algorithm: "tiled",
	}

	watermarking.Register(tiled.Algorithm, tiled)
}

func (w *Tiled) Name() string {
	return w.Algorithm
}

func (w *Tiled) Description() string {
	return "Label repeated across the whole image"
}

// Embed ignores mark.Position; labels are half the configured scale.
func (w *Tiled) Embed(img image.Image, mark watermarking.Mark) (*image.NRGBA, error) {
	mark, err := mark.Normalize()
	if err != nil {
		return nil, err
	}

	b := img.Bounds()
	label := watermarking.RenderLabel(mark.Text, mark.Color, int(float64(b.Dx())*mark.Scale/2))
	lw, lh := label.Bounds().Dx(), label.Bounds().Dy()
	stepX, stepY := max(lw*3/2, 1), max(lh*3, 1)

	layer := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for row, y := 0, lh/2; y < b.Dy(); row, y = row+1, y+stepY {
		offset := 0
		if row%2 == 1 {
			offset = -stepX / 2
		}
		for x := offset; x < b.Dx(); x += stepX {
			draw.Draw(layer, label.Bounds().Add(image.Pt(x, y)), label, image.Point{}, draw.Over)
		}
	}

	return imaging.Overlay(img, layer, image.Pt(0, 0), mark.Opacity), nil
}
