package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toolbox/internal/hashing"
)

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
	})
	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func TestHashCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hello.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello world"), 0o644))

	out, _, err := execute(t, "hello world", "hash", "--algorithm", "md5", "--chunk-size", "3", path, "-")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "5eb63bbbe01eeed093cb22bb8f5acdc3  "+path, lines[0])
	assert.Equal(t, "5eb63bbbe01eeed093cb22bb8f5acdc3  -", lines[1])
}

func TestHashCommandErrors(t *testing.T) {
	_, _, err := execute(t, "", "hash", "--algorithm", "sha512", "--chunk-size", "1024", "-")
	require.Error(t, err)
	assert.ErrorIs(t, err, hashing.ErrUnsupportedAlgorithm)

	missing := filepath.Join(t.TempDir(), "missing.bin")
	out, errOut, err := execute(t, "", "hash", "--algorithm", "sha1", "--chunk-size", "1024", missing, "-")
	require.Error(t, err)
	assert.Contains(t, errOut, missing)
	assert.Contains(t, out, "da39a3ee5e6b4b0d3255bfef95601890afd80709  -")
}

func TestAlgorithmsCommand(t *testing.T) {
	out, _, err := execute(t, "", "algorithms")
	require.NoError(t, err)
	assert.Contains(t, out, "sha256")
	assert.Contains(t, out, "sha1")
	assert.Contains(t, out, "md5")
}

func TestQRCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "code.png")
	_, _, err := execute(t, "", "qr", "--out", path, "https://example.com")
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	_, err = png.Decode(f)
	require.NoError(t, err)
}
