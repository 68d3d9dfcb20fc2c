package watermarking

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	ErrUnknownAlgorithm = errors.New("unknown watermark algorithm")
	ErrEmptyText        = errors.New("watermark text is empty")
	ErrTextTooLong      = errors.New("watermark text is too long")
	ErrInvalidOpacity   = errors.New("opacity must be between 0 and 1")
	ErrUnknownPosition  = errors.New("unknown watermark position")
)

// MaxTextLength bounds the label length in runes.
const MaxTextLength = 200

const (
	DefaultOpacity = 0.5
	DefaultScale   = 0.35
)

// Position anchors a single label on the image.
type Position string

const (
	TopLeft     Position = "top-left"
	TopRight    Position = "top-right"
	BottomLeft  Position = "bottom-left"
	BottomRight Position = "bottom-right"
	Center      Position = "center"
)

// Positions lists the anchors in display order.
func Positions() []Position {
	return []Position{BottomRight, BottomLeft, TopRight, TopLeft, Center}
}

// Mark describes the label to embed.
type Mark struct {
	Text     string
	Position Position
	// Opacity is 0..1; zero selects DefaultOpacity.
	Opacity float64
	// Scale is the label width as a fraction of the image width; zero
	// selects DefaultScale.
	Scale float64
	Color color.NRGBA
}

// Normalize validates m and fills defaults.
func (m Mark) Normalize() (Mark, error) {
	m.Text = strings.TrimSpace(m.Text)
	if m.Text == "" {
		return m, ErrEmptyText
	}
	if n := len([]rune(m.Text)); n > MaxTextLength {
		return m, fmt.Errorf("%w: %d characters", ErrTextTooLong, n)
	}
	if m.Opacity < 0 || m.Opacity > 1 {
		return m, ErrInvalidOpacity
	}
	if m.Opacity == 0 {
		m.Opacity = DefaultOpacity
	}
	if m.Scale <= 0 || m.Scale > 1 {
		m.Scale = DefaultScale
	}
	if m.Position == "" {
		m.Position = BottomRight
	}
	if !validPosition(m.Position) {
		return m, fmt.Errorf("%w: '%s'", ErrUnknownPosition, m.Position)
	}
	if m.Color == (color.NRGBA{}) {
		m.Color = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	}
	return m, nil
}

func validPosition(p Position) bool {
	for _, known := range Positions() {
		if p == known {
			return true
		}
	}
	return false
}

// RenderLabel draws text with a drop shadow onto a transparent canvas sized
// so that its width is targetWidth.
func RenderLabel(text string, col color.NRGBA, targetWidth int) *image.NRGBA {
	face := basicfont.Face7x13
	const pad = 2

	w := font.MeasureString(face, text).Ceil() + 2*pad + 1
	h := face.Metrics().Height.Ceil() + 2*pad + 1
	canvas := image.NewNRGBA(image.Rect(0, 0, w, h))
	baseline := pad + face.Metrics().Ascent.Ceil()

	shadow := &font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(color.NRGBA{A: 160}),
		Face: face,
		Dot:  fixed.P(pad+1, baseline+1),
	}
	shadow.DrawString(text)

	fg := &font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(pad, baseline),
	}
	fg.DrawString(text)

	targetWidth = max(targetWidth, 1)
	targetHeight := max(int(float64(h)*float64(targetWidth)/float64(w)+0.5), 1)
	return imaging.Resize(canvas, targetWidth, targetHeight, imaging.Linear)
}

// Anchor returns the top-left point for a label on an image of the given size.
func Anchor(p Position, size, label image.Point) image.Point {
	margin := min(size.X, size.Y) / 50
	left, top := margin, margin
	right := size.X - margin - label.X
	bottom := size.Y - margin - label.Y

	switch p {
	case TopLeft:
		return image.Pt(left, top)
	case TopRight:
		return image.Pt(right, top)
	case BottomLeft:
		return image.Pt(left, bottom)
	case Center:
		return image.Pt((size.X-label.X)/2, (size.Y-label.Y)/2)
	default:
		return image.Pt(right, bottom)
	}
}
