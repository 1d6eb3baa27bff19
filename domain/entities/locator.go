package entities

import "fmt"

// Strategy is the lookup strategy a driver uses to find an element
type Strategy string

const (
	StrategyAccessibilityID Strategy = "accessibility id"
	StrategyID              Strategy = "id"
	StrategyCSS             Strategy = "css selector"
	StrategyXPath           Strategy = "xpath"
	StrategyText            Strategy = "text"
	StrategyTestID          Strategy = "test id"
)

// Valid reports whether s is one of the known strategies
func (s Strategy) Valid() bool {
	switch s {
	case StrategyAccessibilityID, StrategyID, StrategyCSS, StrategyXPath, StrategyText, StrategyTestID:
		return true
	}
	return false
}

// Locator identifies a UI element: a strategy plus the identifier it looks up
type Locator struct {
	Strategy Strategy `json:"strategy" yaml:"strategy"`
	Value    string   `json:"value" yaml:"value"`
}

// ByAccessibilityID - locator by accessibility id (content-desc on Android, name on iOS, aria-label on the web)
func ByAccessibilityID(value string) Locator {
	return Locator{Strategy: StrategyAccessibilityID, Value: value}
}

// ByID - locator by element id
func ByID(value string) Locator {
	return Locator{Strategy: StrategyID, Value: value}
}

// ByCSS - locator by CSS selector
func ByCSS(value string) Locator {
	return Locator{Strategy: StrategyCSS, Value: value}
}

// ByXPath - locator by XPath expression
func ByXPath(value string) Locator {
	return Locator{Strategy: StrategyXPath, Value: value}
}

// ByText - locator by exact visible text
func ByText(value string) Locator {
	return Locator{Strategy: StrategyText, Value: value}
}

// ByTestID - locator by test id attribute
func ByTestID(value string) Locator {
	return Locator{Strategy: StrategyTestID, Value: value}
}

// Validate checks that the locator can be handed to a driver
func (l Locator) Validate() error {
	if !l.Strategy.Valid() {
		return fmt.Errorf("%w: unknown strategy %q", ErrInvalidLocator, l.Strategy)
	}
	if l.Value == "" {
		return fmt.Errorf("%w: empty value for strategy %q", ErrInvalidLocator, l.Strategy)
	}
	return nil
}

func (l Locator) String() string {
	return fmt.Sprintf("%s=%s", l.Strategy, l.Value)
}
