// Package qr renders QR codes as PNG images.
package qr

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// MaxContentLength bounds the encoded text in bytes. QR capacity is counted
// in bytes, so multi-byte text fills a code sooner.
const MaxContentLength = 2048

var (
	ErrEmptyContent    = errors.New("content is empty")
	ErrContentTooLarge = errors.New("content is too long")
)

// Level is the error correction level. The zero value is Medium.
type Level int

const (
	Medium Level = iota
	Low
	High
	Highest
)

func (l Level) recovery() qrcode.RecoveryLevel {
	switch l {
	case Low:
		return qrcode.Low
	case High:
		return qrcode.High
	case Highest:
		return qrcode.Highest
	default:
		return qrcode.Medium
	}
}

// Options control the rendered image. Zero values select the defaults.
type Options struct {
	// ModuleSize is the width in pixels of one QR module.
	ModuleSize int
	Level      Level
	Foreground color.Color
	Background color.Color
}

// DefaultOptions: medium error correction, 10 px modules, black on white.
func DefaultOptions() Options {
	return Options{
		ModuleSize: 10,
		Level:      Medium,
		Foreground: color.Black,
		Background: color.White,
	}
}

// Normalize trims content and checks it can be encoded.
func Normalize(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", ErrEmptyContent
	}
	if n := len(content); n > MaxContentLength {
		return "", fmt.Errorf("%w: %d bytes", ErrContentTooLarge, n)
	}
	return content, nil
}

// Generate encodes content as a PNG QR code. The image keeps the standard
// four module quiet zone.
func Generate(content string, opts Options) ([]byte, error) {
	content, err := Normalize(content)
	if err != nil {
		return nil, err
	}

	def := DefaultOptions()
	if opts.ModuleSize <= 0 {
		opts.ModuleSize = def.ModuleSize
	}
	if opts.Foreground == nil {
		opts.Foreground = def.Foreground
	}
	if opts.Background == nil {
		opts.Background = def.Background
	}

	// New only fails when the content does not fit the chosen level.
	code, err := qrcode.New(content, opts.Level.recovery())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrContentTooLarge, err)
	}
	code.ForegroundColor = opts.Foreground
	code.BackgroundColor = opts.Background

	// A negative size asks for a fixed number of pixels per module.
	png, err := code.PNG(-opts.ModuleSize)
	if err != nil {
		return nil, fmt.Errorf("failed to encode qr png: %w", err)
	}
	return png, nil
}
