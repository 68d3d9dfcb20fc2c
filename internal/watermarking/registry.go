package watermarking

import (
	"fmt"
	"sort"

	"toolbox/internal/models"
)

var registry = make(map[string]Watermarker)

func Register(name string, w Watermarker) {
	registry[name] = w
}

// GetWatermarker retrieves a watermarker from the registry.
func GetWatermarker(name string) (Watermarker, error) {
	wm, exists := registry[name]
	if !exists {
		return nil, fmt.Errorf("%w: '%s'", ErrUnknownAlgorithm, name)
	}
	return wm, nil
}

// ListSupportedAlgorithms returns all registered watermarkers sorted by name.
func ListSupportedAlgorithms() []models.Algorithm {
	algorithms := make([]models.Algorithm, 0, len(registry))
	for name, watermarker := range registry {
		algorithms = append(algorithms, models.Algorithm{
			Name:        name,
			Description: watermarker.Description(),
		})
	}
	sort.Slice(algorithms, func(i, j int) bool { return algorithms[i].Name < algorithms[j].Name })
	return algorithms
}
