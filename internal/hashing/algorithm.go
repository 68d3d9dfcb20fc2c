package hashing

import (
	"crypto/sha1"
	"hash"
	"sync"

	md5simd "github.com/minio/md5-simd"
	sha256simd "github.com/minio/sha256-simd"

	"toolbox/internal/models"
)

// Algorithm names one of the supported digest algorithms.
type Algorithm string

const (
	SHA256 Algorithm = "sha256"
	SHA1   Algorithm = "sha1"
	MD5    Algorithm = "md5"
)

type algorithmInfo struct {
	description string
	size        int
	newHash     func() (hash.Hash, func())
}

var algorithms = map[Algorithm]algorithmInfo{
	SHA256: {
		description: "SHA-256 produces a 256-bit (32-byte) digest",
		size:        sha256simd.Size,
		newHash:     func() (hash.Hash, func()) { return sha256simd.New(), func() {} },
	},
	SHA1: {
		description: "SHA-1 produces a 160-bit (20-byte) digest",
		size:        sha1.Size,
		newHash:     func() (hash.Hash, func()) { return sha1.New(), func() {} },
	},
	MD5: {
		description: "MD5 produces a 128-bit (16-byte) digest",
		size:        16,
		newHash:     newMD5,
	},
}

// Listing order for forms and the API.
var ordered = []Algorithm{SHA256, SHA1, MD5}

var (
	md5Once   sync.Once
	md5Server md5simd.Server
)

func newMD5() (hash.Hash, func()) {
	md5Once.Do(func() {
		md5Server = md5simd.NewServer()
	})
	h := md5Server.NewHash()
	return h, func() { h.Close() }
}

// ParseAlgorithm maps a name onto a supported Algorithm.
func ParseAlgorithm(name string) (Algorithm, error) {
	a := Algorithm(name)
	if !a.Valid() {
		return "", &UnsupportedAlgorithmError{Name: name}
	}
	return a, nil
}

func (a Algorithm) String() string { return string(a) }

// Valid reports whether a is one of the supported algorithms.
func (a Algorithm) Valid() bool {
	_, ok := algorithms[a]
	return ok
}

func (a Algorithm) Description() string { return algorithms[a].description }

// HexLen is the length of the hex encoded digest.
func (a Algorithm) HexLen() int { return algorithms[a].size * 2 }

// Supported returns every algorithm in listing order.
func Supported() []Algorithm {
	out := make([]Algorithm, len(ordered))
	copy(out, ordered)
	return out
}

// ListSupportedAlgorithms returns the supported algorithms with their descriptions.
func ListSupportedAlgorithms() []models.Algorithm {
	list := make([]models.Algorithm, 0, len(ordered))
	for _, a := range ordered {
		list = append(list, models.Algorithm{
			Name:        a.String(),
			Description: a.Description(),
			HexLength:   a.HexLen(),
		})
	}
	return list
}
