package imageops

import (
	"strings"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// Format is an image container format.
type Format string

const (
	JPEG Format = "jpeg"
	PNG  Format = "png"
	GIF  Format = "gif"
	BMP  Format = "bmp"
	TIFF Format = "tiff"
	WEBP Format = "webp"
)

type formatInfo struct {
	mime      string
	extension string
	// encoder is nil for decode-only formats.
	encoder *imaging.Format
}

func encoder(f imaging.Format) *imaging.Format { return &f }

var formats = map[Format]formatInfo{
	JPEG: {mime: "image/jpeg", extension: "jpg", encoder: encoder(imaging.JPEG)},
	PNG:  {mime: "image/png", extension: "png", encoder: encoder(imaging.PNG)},
	GIF:  {mime: "image/gif", extension: "gif", encoder: encoder(imaging.GIF)},
	BMP:  {mime: "image/bmp", extension: "bmp", encoder: encoder(imaging.BMP)},
	TIFF: {mime: "image/tiff", extension: "tiff", encoder: encoder(imaging.TIFF)},
	WEBP: {mime: "image/webp", extension: "webp"},
}

var aliases = map[string]Format{
	"jpg": JPEG,
	"jpe": JPEG,
	"tif": TIFF,
}

// ParseFormat resolves a case-insensitive format name, accepting common aliases.
func ParseFormat(name string) (Format, error) {
	n := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), "."))
	if f, ok := aliases[n]; ok {
		return f, nil
	}
	if _, ok := formats[Format(n)]; ok {
		return Format(n), nil
	}
	return "", errors.Wrapf(ErrUnsupportedFormat, "%q", name)
}

func (f Format) String() string { return string(f) }

// Encodable reports whether images can be written in this format.
func (f Format) Encodable() bool { return formats[f].encoder != nil }

func (f Format) MIMEType() string { return formats[f].mime }

func (f Format) Extension() string { return formats[f].extension }

// EncodableFormats lists the output formats in display order.
func EncodableFormats() []Format {
	return []Format{PNG, JPEG, GIF, BMP, TIFF}
}
