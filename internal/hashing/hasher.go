package hashing

import (
	"encoding/hex"
	"fmt"
	"io"
)

// DefaultChunkSize is the read size used when none is configured.
const DefaultChunkSize = 64 * 1024

// Digest is the result of hashing one stream.
type Digest struct {
	Algorithm Algorithm
	Hex       string
	// Size is the number of bytes consumed from the stream.
	Size int64
}

// Hasher computes digests of byte streams read in fixed size chunks.
// The chunk size never changes the digest.
type Hasher struct {
	algorithm Algorithm
	chunkSize int
}

// New validates the algorithm name and returns a Hasher for it.
// A chunkSize <= 0 selects DefaultChunkSize.
func New(name string, chunkSize int) (*Hasher, error) {
	a, err := ParseAlgorithm(name)
	if err != nil {
		return nil, err
	}
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Hasher{algorithm: a, chunkSize: chunkSize}, nil
}

func (h *Hasher) Algorithm() Algorithm { return h.algorithm }

// Sum consumes r to EOF and returns its digest.
func (h *Hasher) Sum(r io.Reader) (Digest, error) {
	sum, release := algorithms[h.algorithm].newHash()
	defer release()

	buf := make([]byte, h.chunkSize)
	var total int64
	for {
		n, err := r.Read(buf)
		if n > 0 {
			sum.Write(buf[:n])
			total += int64(n)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return Digest{}, fmt.Errorf("failed reading input for %s: %w", h.algorithm, err)
		}
	}

	return Digest{
		Algorithm: h.algorithm,
		Hex:       hex.EncodeToString(sum.Sum(nil)),
		Size:      total,
	}, nil
}

// FileHash returns the lowercase hex digest of r using the named algorithm.
// An unsupported name fails before r is read.
func FileHash(r io.Reader, algorithm string) (string, error) {
	h, err := New(algorithm, DefaultChunkSize)
	if err != nil {
		return "", err
	}
	d, err := h.Sum(r)
	if err != nil {
		return "", err
	}
	return d.Hex, nil
}
