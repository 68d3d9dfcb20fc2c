package filters

import (
	"fmt"
	"sort"

	"toolbox/internal/models"
)

// DefaultStrength is used when a request does not carry one.
const DefaultStrength = 50

// ErrUnknownFilter is wrapped by Get for names that are not registered.
var ErrUnknownFilter = fmt.Errorf("unknown filter")

var registry = make(map[string]Filter)

func Register(f Filter) {
	registry[f.Name()] = f
}

// Get retrieves a filter from the registry by name.
func Get(name string) (Filter, error) {
	f, exists := registry[name]
	if !exists {
		return nil, fmt.Errorf("%w: '%s'", ErrUnknownFilter, name)
	}
	return f, nil
}

// ListSupportedFilters returns the registered filters sorted by name.
func ListSupportedFilters() []models.Algorithm {
	list := make([]models.Algorithm, 0, len(registry))
	for name, f := range registry {
		list = append(list, models.Algorithm{
			Name:        name,
			Description: f.Description(),
		})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}

// ClampStrength forces s into 0..100.
func ClampStrength(s int) int {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}
