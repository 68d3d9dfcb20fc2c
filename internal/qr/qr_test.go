package qr

import (
	"bytes"
	"errors"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	data, err := Generate("https://example.com", Options{})
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)

	b := img.Bounds()
	assert.Equal(t, b.Dx(), b.Dy())
	// side = (modules + 2*4 quiet zone) * 10px, modules = 17 + 4*version
	side := b.Dx()
	require.Zero(t, side%10)
	assert.Zero(t, (side/10-8-17)%4)

	// The quiet zone is white, the finder pattern corner is black.
	r, g, bl, _ := img.At(5, 5).RGBA()
	assert.Equal(t, uint32(0xffff), r&g&bl)
	r, _, _, _ = img.At(45, 45).RGBA()
	assert.Zero(t, r)
}

func TestGenerateModuleSize(t *testing.T) {
	small, err := Generate("abc", Options{ModuleSize: 2})
	require.NoError(t, err)
	large, err := Generate("abc", Options{ModuleSize: 10})
	require.NoError(t, err)

	si, err := png.Decode(bytes.NewReader(small))
	require.NoError(t, err)
	li, err := png.Decode(bytes.NewReader(large))
	require.NoError(t, err)
	assert.Equal(t, si.Bounds().Dx()*5, li.Bounds().Dx())
}

func TestGenerateRejectsBadContent(t *testing.T) {
	_, err := Generate("   \n", Options{})
	assert.True(t, errors.Is(err, ErrEmptyContent))

	_, err = Generate(strings.Repeat("a", MaxContentLength+1), Options{})
	assert.True(t, errors.Is(err, ErrContentTooLarge))
}

func TestGenerateCountsBytes(t *testing.T) {
	// 1000 characters, 3000 bytes.
	_, err := Generate(strings.Repeat("漢", 1000), Options{})
	assert.True(t, errors.Is(err, ErrContentTooLarge))

	_, err = Generate(strings.Repeat("é", MaxContentLength/2), Options{})
	require.NoError(t, err)
}

func TestGenerateContentOverLevelCapacity(t *testing.T) {
	content := strings.Repeat("a", 2000)

	_, err := Generate(content, Options{Level: Highest})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrContentTooLarge))

	_, err = Generate(content, Options{})
	require.NoError(t, err)
}

func TestNormalize(t *testing.T) {
	got, err := Normalize("  https://example.com/x \t")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/x", got)
}
