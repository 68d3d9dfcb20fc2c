package imageops

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage(w, h int) *image.NRGBA {
	img := imaging.New(w, h, color.NRGBA{R: 200, G: 40, B: 40, A: 255})
	draw.Draw(img, image.Rect(0, 0, w/2, h/2), &image.Uniform{C: color.NRGBA{B: 255, A: 255}}, image.Point{}, draw.Src)
	return img
}

func encoded(t *testing.T, img image.Image, f Format) []byte {
	t.Helper()
	data, err := Save(img, f, SaveOptions{})
	require.NoError(t, err)
	return data
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"png", PNG},
		{"PNG", PNG},
		{"jpg", JPEG},
		{".JPEG", JPEG},
		{"tif", TIFF},
		{"webp", WEBP},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseFormat("psd")
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
	assert.False(t, WEBP.Encodable())
	assert.True(t, PNG.Encodable())
	assert.Equal(t, "image/jpeg", JPEG.MIMEType())
}

func TestOpen(t *testing.T) {
	t.Run("png", func(t *testing.T) {
		data := encoded(t, testImage(40, 20), PNG)
		img, err := Open(data)
		require.NoError(t, err)
		assert.Equal(t, PNG, img.Format)
		assert.Equal(t, 40, img.Width())
		assert.Equal(t, 20, img.Height())
		assert.Equal(t, len(data), img.Size)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := Open(nil)
		assert.True(t, errors.Is(err, ErrMissingInput))
	})

	t.Run("not an image", func(t *testing.T) {
		_, err := Open([]byte("definitely not pixels"))
		assert.True(t, errors.Is(err, ErrUnsupportedFormat))
	})
}

func TestConvertRoundTrip(t *testing.T) {
	src, err := Open(encoded(t, testImage(32, 24), PNG))
	require.NoError(t, err)

	for _, f := range EncodableFormats() {
		t.Run(f.String(), func(t *testing.T) {
			out, err := Convert(src, f)
			require.NoError(t, err)

			back, err := Open(out)
			require.NoError(t, err)
			assert.Equal(t, f, back.Format)
			assert.Equal(t, 32, back.Width())
			assert.Equal(t, 24, back.Height())
		})
	}

	_, err = Convert(src, WEBP)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestSaveJPEGFlattensTransparency(t *testing.T) {
	transparent := imaging.New(8, 8, color.NRGBA{})
	out, err := Save(transparent, JPEG, SaveOptions{Quality: 90})
	require.NoError(t, err)

	img, err := imaging.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	r, g, b, _ := img.At(4, 4).RGBA()
	assert.Greater(t, r>>8, uint32(240))
	assert.Greater(t, g>>8, uint32(240))
	assert.Greater(t, b>>8, uint32(240))
}

func TestSaveRejectsBadQuality(t *testing.T) {
	_, err := Save(testImage(4, 4), JPEG, SaveOptions{Quality: 101})
	assert.True(t, errors.Is(err, ErrInvalidQuality))
}

func TestCompress(t *testing.T) {
	t.Run("jpeg keeps format", func(t *testing.T) {
		src, err := Open(encoded(t, testImage(64, 64), JPEG))
		require.NoError(t, err)

		c, err := Compress(src, 30)
		require.NoError(t, err)
		assert.Equal(t, JPEG, c.Format)
		assert.Equal(t, src.Size, c.OriginalSize)
		assert.Equal(t, len(c.Data), c.CompressedSize)
	})

	t.Run("png keeps format", func(t *testing.T) {
		src, err := Open(encoded(t, testImage(64, 64), PNG))
		require.NoError(t, err)

		c, err := Compress(src, 0)
		require.NoError(t, err)
		assert.Equal(t, PNG, c.Format)
	})

	t.Run("gif becomes jpeg", func(t *testing.T) {
		src, err := Open(encoded(t, testImage(16, 16), GIF))
		require.NoError(t, err)

		c, err := Compress(src, 50)
		require.NoError(t, err)
		assert.Equal(t, JPEG, c.Format)
	})

	t.Run("quality out of range", func(t *testing.T) {
		src, err := Open(encoded(t, testImage(16, 16), PNG))
		require.NoError(t, err)
		_, err = Compress(src, -3)
		assert.True(t, errors.Is(err, ErrInvalidQuality))
	})
}

func TestSavedPercent(t *testing.T) {
	c := &Compressed{OriginalSize: 1000, CompressedSize: 250}
	assert.Equal(t, 75.0, c.SavedPercent())

	grew := &Compressed{OriginalSize: 100, CompressedSize: 150}
	assert.Equal(t, -50.0, grew.SavedPercent())

	assert.Zero(t, (&Compressed{}).SavedPercent())
}

func TestResize(t *testing.T) {
	src := testImage(200, 100)

	tests := []struct {
		name          string
		width, height int
		keepAspect    bool
		wantW, wantH  int
	}{
		{"exact", 50, 50, false, 50, 50},
		{"width only", 100, 0, false, 100, 50},
		{"height only", 0, 25, true, 50, 25},
		{"fit box", 50, 50, true, 50, 25},
		{"fit box upscale", 800, 1000, true, 800, 400},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Resize(src, tt.width, tt.height, tt.keepAspect)
			require.NoError(t, err)
			assert.Equal(t, tt.wantW, out.Bounds().Dx())
			assert.Equal(t, tt.wantH, out.Bounds().Dy())
		})
	}

	for _, dims := range [][2]int{{0, 0}, {-1, 10}, {10, MaxDimension + 1}} {
		_, err := Resize(src, dims[0], dims[1], false)
		assert.True(t, errors.Is(err, ErrInvalidDimensions), "%v", dims)
	}
}

func TestResizeCapsDerivedSide(t *testing.T) {
	tall := imaging.New(1, 40, color.White)

	_, err := Resize(tall, 500, 0, true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidDimensions))

	wide := imaging.New(40, 1, color.White)
	_, err = Resize(wide, 0, 500, false)
	assert.True(t, errors.Is(err, ErrInvalidDimensions))

	out, err := Resize(tall, 250, 0, true)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(250, MaxDimension), out.Bounds().Size())
}

func TestTargetSize(t *testing.T) {
	tests := []struct {
		name             string
		srcW, srcH, w, h int
		keepAspect       bool
		wantW, wantH     int
	}{
		{"both sides", 200, 100, 30, 70, false, 30, 70},
		{"fit box", 200, 100, 30, 70, true, 30, 15},
		{"width only", 200, 100, 50, 0, false, 50, 25},
		{"height only", 200, 100, 0, 10, false, 20, 10},
		{"never below one", 1000, 1, 10, 0, false, 10, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := targetSize(tt.srcW, tt.srcH, tt.w, tt.h, tt.keepAspect)
			assert.Equal(t, tt.wantW, w)
			assert.Equal(t, tt.wantH, h)
		})
	}
}
