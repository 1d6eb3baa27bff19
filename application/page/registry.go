package page

import (
	"fmt"
	"sort"

	"pom_automation/domain/entities"
)

// Registry maps the symbolic element names of one page to their locators.
// A page keeps its registry unexported; nothing outside the page sees a locator.
type Registry struct {
	locators map[string]entities.Locator
}

// NewRegistry - validates and copies the locators
func NewRegistry(locators map[string]entities.Locator) (*Registry, error) {
	r := &Registry{locators: make(map[string]entities.Locator, len(locators))}
	for name, loc := range locators {
		if err := loc.Validate(); err != nil {
			return nil, fmt.Errorf("element %q: %w", name, err)
		}
		r.locators[name] = loc
	}
	return r, nil
}

// MustRegistry is NewRegistry for package-level page definitions
func MustRegistry(locators map[string]entities.Locator) *Registry {
	r, err := NewRegistry(locators)
	if err != nil {
		panic(err)
	}
	return r
}

// Get - returns the locator registered under name
func (r *Registry) Get(name string) (entities.Locator, error) {
	loc, ok := r.locators[name]
	if !ok {
		return entities.Locator{}, fmt.Errorf("%w: %q", entities.ErrUnknownElement, name)
	}
	return loc, nil
}

// Names returns the element names in sorted order
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.locators))
	for name := range r.locators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// With - returns a copy with some locators replaced. Only known names may be overridden.
func (r *Registry) With(overrides map[string]entities.Locator) (*Registry, error) {
	if len(overrides) == 0 {
		return r, nil
	}

	merged := make(map[string]entities.Locator, len(r.locators))
	for name, loc := range r.locators {
		merged[name] = loc
	}
	for name, loc := range overrides {
		if _, ok := r.locators[name]; !ok {
			return nil, fmt.Errorf("%w: %q", entities.ErrUnknownElement, name)
		}
		merged[name] = loc
	}
	return NewRegistry(merged)
}
