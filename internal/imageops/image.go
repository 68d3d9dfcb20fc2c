package imageops

import (
	"bytes"
	"image"
	"image/color"
	"image/png"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"

	// Decoders beyond the ones imaging registers.
	_ "golang.org/x/image/webp"
)

// MaxPixels bounds the decoded size of an uploaded image.
const MaxPixels = 64 * 1024 * 1024

// Image is a decoded upload together with what we know about its source.
type Image struct {
	image.Image
	Format Format
	// Size is the length of the encoded source in bytes.
	Size int
}

func (img *Image) Width() int  { return img.Bounds().Dx() }
func (img *Image) Height() int { return img.Bounds().Dy() }

// Open decodes data, honouring EXIF orientation.
func Open(data []byte) (*Image, error) {
	if len(data) == 0 {
		return nil, ErrMissingInput
	}

	cfg, name, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(ErrUnsupportedFormat, err.Error())
	}
	format, err := ParseFormat(name)
	if err != nil {
		return nil, err
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, errors.Wrapf(ErrInvalidDimensions, "%dx%d source", cfg.Width, cfg.Height)
	}
	if cfg.Width*cfg.Height > MaxPixels {
		return nil, errors.Wrapf(ErrImageTooLarge, "%dx%d", cfg.Width, cfg.Height)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s image", format)
	}

	return &Image{Image: img, Format: format, Size: len(data)}, nil
}

// PNGCompression selects the zlib effort used for PNG output.
type PNGCompression int

const (
	PNGDefault PNGCompression = iota
	PNGNone
	PNGSpeed
	PNGBest
)

func (c PNGCompression) level() png.CompressionLevel {
	switch c {
	case PNGNone:
		return png.NoCompression
	case PNGSpeed:
		return png.BestSpeed
	case PNGBest:
		return png.BestCompression
	default:
		return png.DefaultCompression
	}
}

// SaveOptions tune the encoder. Zero values select encoder defaults.
type SaveOptions struct {
	// Quality is the JPEG quality, 1..100.
	Quality        int
	PNGCompression PNGCompression
}

// Save encodes img in the given format.
func Save(img image.Image, format Format, opts SaveOptions) ([]byte, error) {
	info, ok := formats[format]
	if !ok || info.encoder == nil {
		return nil, errors.Wrapf(ErrUnsupportedFormat, "cannot write %s", format)
	}
	if opts.Quality != 0 && (opts.Quality < 1 || opts.Quality > 100) {
		return nil, errors.Wrapf(ErrInvalidQuality, "%d", opts.Quality)
	}

	var encodeOpts []imaging.EncodeOption
	if opts.Quality != 0 {
		encodeOpts = append(encodeOpts, imaging.JPEGQuality(opts.Quality))
	}
	encodeOpts = append(encodeOpts, imaging.PNGCompressionLevel(opts.PNGCompression.level()))

	if format == JPEG {
		img = flatten(img)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, *info.encoder, encodeOpts...); err != nil {
		return nil, errors.Wrapf(err, "encoding %s image", format)
	}
	return buf.Bytes(), nil
}

// flatten composites img onto an opaque white background.
func flatten(img image.Image) image.Image {
	b := img.Bounds()
	bg := imaging.New(b.Dx(), b.Dy(), color.White)
	return imaging.Overlay(bg, img, image.Pt(0, 0), 1.0)
}
