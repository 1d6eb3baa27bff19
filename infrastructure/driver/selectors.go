// Package driver adapts real UI-automation backends to interfaces.Driver and
// selects one of them, or the simulator, from configuration.
package driver

import (
	"fmt"
	"strings"

	"pom_automation/domain/entities"
)

// domQuery is a locator translated for a DOM backend. Exactly one field is set.
type domQuery struct {
	css   string
	xpath string
}

// toDOMQuery - translates loc for browsers. Accessibility ids map to aria-label,
// the web counterpart of a native accessibility identifier.
func toDOMQuery(loc entities.Locator) (domQuery, error) {
	if err := loc.Validate(); err != nil {
		return domQuery{}, err
	}

	switch loc.Strategy {
	case entities.StrategyAccessibilityID:
		return domQuery{css: attrSelector("aria-label", loc.Value)}, nil
	case entities.StrategyID:
		return domQuery{css: attrSelector("id", loc.Value)}, nil
	case entities.StrategyTestID:
		return domQuery{css: attrSelector("data-testid", loc.Value)}, nil
	case entities.StrategyCSS:
		return domQuery{css: loc.Value}, nil
	case entities.StrategyXPath:
		return domQuery{xpath: loc.Value}, nil
	case entities.StrategyText:
		return domQuery{xpath: textXPath(loc.Value)}, nil
	}
	return domQuery{}, fmt.Errorf("%w: %s", entities.ErrUnsupportedStrategy, loc.Strategy)
}

// selector renders the query with an explicit playwright/rod-style engine prefix
func (q domQuery) selector() string {
	if q.xpath != "" {
		return "xpath=" + q.xpath
	}
	return "css=" + q.css
}

func attrSelector(attr, value string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return fmt.Sprintf(`[%s="%s"]`, attr, r.Replace(value))
}

// textXPath matches elements owning a text node equal to text, ignoring surrounding whitespace
func textXPath(text string) string {
	return fmt.Sprintf("//*[text()[normalize-space(.)=%s]]", xpathLiteral(text))
}

func xpathLiteral(s string) string {
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}

	parts := strings.Split(s, `"`)
	quoted := make([]string, 0, 2*len(parts))
	for i, p := range parts {
		if i > 0 {
			quoted = append(quoted, `'"'`)
		}
		if p != "" {
			quoted = append(quoted, `"`+p+`"`)
		}
	}
	return "concat(" + strings.Join(quoted, ", ") + ")"
}
