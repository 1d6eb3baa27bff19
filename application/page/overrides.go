package page

import (
	"fmt"
	"os"

	"pom_automation/domain/entities"

	"gopkg.in/yaml.v3"
)

// Overrides replaces built-in locators per page, keyed by page name then element name.
//
//	echo:
//	  saveButton:
//	    strategy: accessibility id
//	    value: messageSaveBtn
type Overrides map[string]map[string]entities.Locator

// LoadOverrides - reads a YAML locator file
func LoadOverrides(path string) (Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read locator file: %w", err)
	}

	var o Overrides
	if err := yaml.Unmarshal(data, &o); err != nil {
		return nil, fmt.Errorf("failed to parse locator file %s: %w", path, err)
	}

	for page, elements := range o {
		for name, loc := range elements {
			if err := loc.Validate(); err != nil {
				return nil, fmt.Errorf("locator file %s: %s.%s: %w", path, page, name, err)
			}
		}
	}
	return o, nil
}

// For returns the overrides of one page, nil if there are none
func (o Overrides) For(page string) map[string]entities.Locator {
	if o == nil {
		return nil
	}
	return o[page]
}
