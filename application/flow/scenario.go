package flow

import (
	"context"
	"fmt"

	"pom_automation/application/pages"
	"pom_automation/domain/entities"
)

// Steps is the body of a scenario: a user flow composed from pages, starting at the home page
type Steps func(ctx context.Context, home *pages.HomePage) error

// Scenario is a named, runnable test case
type Scenario struct {
	Name        string
	Description string
	Steps       Steps
}

// Catalog holds scenarios in registration order
type Catalog struct {
	byName map[string]Scenario
	order  []string
}

// NewCatalog - registers scenarios, rejecting duplicate or empty names
func NewCatalog(scenarios ...Scenario) (*Catalog, error) {
	c := &Catalog{byName: make(map[string]Scenario, len(scenarios))}
	for _, s := range scenarios {
		if s.Name == "" || s.Steps == nil {
			return nil, fmt.Errorf("scenario %q: name and steps are required", s.Name)
		}
		if _, dup := c.byName[s.Name]; dup {
			return nil, fmt.Errorf("duplicate scenario %q", s.Name)
		}
		c.byName[s.Name] = s
		c.order = append(c.order, s.Name)
	}
	return c, nil
}

// Get - returns the scenario registered under name
func (c *Catalog) Get(name string) (Scenario, error) {
	s, ok := c.byName[name]
	if !ok {
		return Scenario{}, fmt.Errorf("%w: %q", entities.ErrUnknownScenario, name)
	}
	return s, nil
}

// List returns the scenarios in registration order
func (c *Catalog) List() []Scenario {
	out := make([]Scenario, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.byName[name])
	}
	return out
}

// Expect - explicit assertion on high-level data
func Expect(subject, expected, actual string) error {
	if expected != actual {
		return &entities.AssertionError{Subject: subject, Expected: expected, Actual: actual}
	}
	return nil
}
