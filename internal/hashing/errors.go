package hashing

import (
	"errors"
	"fmt"
)

// ErrUnsupportedAlgorithm matches every UnsupportedAlgorithmError.
var ErrUnsupportedAlgorithm = errors.New("unsupported algorithm")

// UnsupportedAlgorithmError is returned when a requested algorithm is not supported.
type UnsupportedAlgorithmError struct {
	Name string
}

func (e *UnsupportedAlgorithmError) Error() string {
	return fmt.Sprintf("unsupported algorithm: %s", e.Name)
}

func (e *UnsupportedAlgorithmError) Is(target error) bool {
	return target == ErrUnsupportedAlgorithm
}
