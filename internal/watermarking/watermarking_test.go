package watermarking_test

import (
	"errors"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toolbox/internal/watermarking"
	_ "toolbox/internal/watermarking/text"
	_ "toolbox/internal/watermarking/tiled"
)

func black(w, h int) *image.NRGBA {
	return imaging.New(w, h, color.NRGBA{A: 255})
}

func brightPixels(img *image.NRGBA, r image.Rectangle) int {
	n := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if img.NRGBAAt(x, y).R > 40 {
				n++
			}
		}
	}
	return n
}

func TestRegistry(t *testing.T) {
	list := watermarking.ListSupportedAlgorithms()
	require.Len(t, list, 2)
	assert.Equal(t, "text", list[0].Name)
	assert.Equal(t, "tiled", list[1].Name)

	_, err := watermarking.GetWatermarker("steganography")
	assert.True(t, errors.Is(err, watermarking.ErrUnknownAlgorithm))
}

func TestMarkNormalize(t *testing.T) {
	m, err := watermarking.Mark{Text: "  hello "}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, "hello", m.Text)
	assert.Equal(t, watermarking.DefaultOpacity, m.Opacity)
	assert.Equal(t, watermarking.DefaultScale, m.Scale)
	assert.Equal(t, watermarking.BottomRight, m.Position)

	tests := []struct {
		name string
		mark watermarking.Mark
		want error
	}{
		{"empty", watermarking.Mark{Text: "   "}, watermarking.ErrEmptyText},
		{"long", watermarking.Mark{Text: strings.Repeat("x", watermarking.MaxTextLength+1)}, watermarking.ErrTextTooLong},
		{"opacity", watermarking.Mark{Text: "a", Opacity: 1.5}, watermarking.ErrInvalidOpacity},
		{"position", watermarking.Mark{Text: "a", Position: "middle-ish"}, watermarking.ErrUnknownPosition},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.mark.Normalize()
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestTextEmbedPlacesLabel(t *testing.T) {
	wm, err := watermarking.GetWatermarker("text")
	require.NoError(t, err)

	src := black(400, 200)
	out, err := wm.Embed(src, watermarking.Mark{Text: "TOOLBOX", Position: watermarking.TopLeft, Opacity: 1})
	require.NoError(t, err)
	require.Equal(t, src.Bounds().Size(), out.Bounds().Size())

	assert.Positive(t, brightPixels(out, image.Rect(0, 0, 200, 100)))
	assert.Zero(t, brightPixels(out, image.Rect(200, 100, 400, 200)))

	// The source is left untouched.
	assert.Zero(t, brightPixels(src, src.Bounds()))
}

func TestTiledEmbedCoversImage(t *testing.T) {
	wm, err := watermarking.GetWatermarker("tiled")
	require.NoError(t, err)

	out, err := wm.Embed(black(400, 400), watermarking.Mark{Text: "draft", Opacity: 1})
	require.NoError(t, err)

	assert.Positive(t, brightPixels(out, image.Rect(0, 0, 200, 200)))
	assert.Positive(t, brightPixels(out, image.Rect(200, 200, 400, 400)))
}

func TestEmbedTinyImage(t *testing.T) {
	for _, name := range []string{"text", "tiled"} {
		wm, err := watermarking.GetWatermarker(name)
		require.NoError(t, err)
		out, err := wm.Embed(black(2, 2), watermarking.Mark{Text: "x"})
		require.NoError(t, err)
		assert.Equal(t, image.Pt(2, 2), out.Bounds().Size())
	}
}

func TestAnchor(t *testing.T) {
	size := image.Pt(1000, 500)
	label := image.Pt(100, 20)

	assert.Equal(t, image.Pt(10, 10), watermarking.Anchor(watermarking.TopLeft, size, label))
	assert.Equal(t, image.Pt(890, 470), watermarking.Anchor(watermarking.BottomRight, size, label))
	assert.Equal(t, image.Pt(450, 240), watermarking.Anchor(watermarking.Center, size, label))
}
