package imageops

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// MaxDimension bounds each side of a resized image.
const MaxDimension = 10000

// DefaultQuality is used by Compress when no quality is given.
const DefaultQuality = 75

// Convert re-encodes img in the target format.
func Convert(img *Image, target Format) ([]byte, error) {
	if !target.Encodable() {
		return nil, errors.Wrapf(ErrUnsupportedFormat, "cannot convert to %s", target)
	}
	return Save(img.Image, target, SaveOptions{Quality: 95})
}

// Compressed is the output of Compress.
type Compressed struct {
	Data           []byte
	Format         Format
	OriginalSize   int
	CompressedSize int
}

// SavedPercent is the size reduction relative to the source, negative when
// the output grew.
func (c *Compressed) SavedPercent() float64 {
	if c.OriginalSize == 0 {
		return 0
	}
	saved := float64(c.OriginalSize-c.CompressedSize) / float64(c.OriginalSize) * 100
	return math.Round(saved*10) / 10
}

// Compress re-encodes img to reduce its size. JPEG and PNG sources keep their
// format, everything else is written as JPEG.
func Compress(img *Image, quality int) (*Compressed, error) {
	if quality == 0 {
		quality = DefaultQuality
	}
	if quality < 1 || quality > 100 {
		return nil, errors.Wrapf(ErrInvalidQuality, "%d", quality)
	}

	format := JPEG
	opts := SaveOptions{Quality: quality}
	if img.Format == PNG {
		format = PNG
		opts = SaveOptions{PNGCompression: PNGBest}
	}

	data, err := Save(img.Image, format, opts)
	if err != nil {
		return nil, err
	}
	return &Compressed{
		Data:           data,
		Format:         format,
		OriginalSize:   img.Size,
		CompressedSize: len(data),
	}, nil
}

// Resize scales img. A zero width or height is derived from the source
// aspect ratio. With keepAspect and both sides given, the result fits inside
// the width x height box.
func Resize(img image.Image, width, height int, keepAspect bool) (*image.NRGBA, error) {
	if err := ValidateDimensions(width, height); err != nil {
		return nil, err
	}

	src := img.Bounds()
	if src.Empty() {
		return nil, errors.WithStack(ErrMissingInput)
	}
	width, height = targetSize(src.Dx(), src.Dy(), width, height, keepAspect)

	// A derived side can exceed the cap even when the requested one does not.
	if width > MaxDimension || height > MaxDimension {
		return nil, errors.Wrapf(ErrInvalidDimensions, "result would be %dx%d", width, height)
	}
	return imaging.Resize(img, width, height, imaging.Lanczos), nil
}

// targetSize resolves the output size for a validated request.
func targetSize(srcW, srcH, width, height int, keepAspect bool) (int, int) {
	switch {
	case width > 0 && height > 0:
		if keepAspect {
			return fitBox(srcW, srcH, width, height)
		}
		return width, height
	case width == 0:
		return scaleSide(srcW, height, srcH), height
	default:
		return width, scaleSide(srcH, width, srcW)
	}
}

// scaleSide returns side scaled by num/den, at least 1.
func scaleSide(side, num, den int) int {
	return max(int(math.Round(float64(side)*float64(num)/float64(den))), 1)
}

// ValidateDimensions checks a requested size; zero means "derive this side".
func ValidateDimensions(width, height int) error {
	if width < 0 || height < 0 || width > MaxDimension || height > MaxDimension || (width == 0 && height == 0) {
		return errors.Wrapf(ErrInvalidDimensions, "%dx%d", width, height)
	}
	return nil
}

func fitBox(srcW, srcH, maxW, maxH int) (int, int) {
	scale := math.Min(float64(maxW)/float64(srcW), float64(maxH)/float64(srcH))
	w := int(math.Round(float64(srcW) * scale))
	h := int(math.Round(float64(srcH) * scale))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}
