package text

import (
	"image"

	"github.com/disintegration/imaging"

	"toolbox/internal/watermarking"
)

// Text places a single label at one of the anchor positions.
type Text struct {
	Algorithm string
}

func init() {
	text := &Text{
		Algorithm: "text",
	}

	watermarking.Register(text.Algorithm, text)
}

// Name returns the algorithm's name.
func (w *Text) Name() string {
	return w.Algorithm
}

// Description returns the algorithm's description.
func (w *Text) Description() string {
	return "Single text label anchored to a corner or the centre"
}

// Embed overlays the label on a copy of img.
func (w *Text) Embed(img image.Image, mark watermarking.Mark) (*image.NRGBA, error) {
	mark, err := mark.Normalize()
	if err != nil {
		return nil, err
	}

	b := img.Bounds()
	label := watermarking.RenderLabel(mark.Text, mark.Color, int(float64(b.Dx())*mark.Scale))
	pos := watermarking.Anchor(mark.Position, b.Size(), label.Bounds().Size())

	return imaging.Overlay(img, label, pos, mark.Opacity), nil
}
