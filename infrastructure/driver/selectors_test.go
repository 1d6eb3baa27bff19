package driver

import (
	"testing"

	"pom_automation/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDOMQuery(t *testing.T) {
	tests := []struct {
		name string
		loc  entities.Locator
		want domQuery
	}{
		{"accessibility id", entities.ByAccessibilityID("messageInput"), domQuery{css: `[aria-label="messageInput"]`}},
		{"id", entities.ByID("login_btn"), domQuery{css: `[id="login_btn"]`}},
		{"test id", entities.ByTestID("balance"), domQuery{css: `[data-testid="balance"]`}},
		{"css", entities.ByCSS("form > button.primary"), domQuery{css: "form > button.primary"}},
		{"xpath", entities.ByXPath("//button[1]"), domQuery{xpath: "//button[1]"}},
		{"text", entities.ByText("Log in"), domQuery{xpath: `//*[text()[normalize-space(.)="Log in"]]`}},
		{"quoted attribute", entities.ByAccessibilityID(`say "hi"`), domQuery{css: `[aria-label="say \"hi\""]`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := toDOMQuery(tt.loc)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToDOMQuery_Invalid(t *testing.T) {
	_, err := toDOMQuery(entities.Locator{Strategy: "class chain", Value: "x"})
	require.ErrorIs(t, err, entities.ErrInvalidLocator)

	_, err = toDOMQuery(entities.ByID(""))
	require.ErrorIs(t, err, entities.ErrInvalidLocator)
}

func TestDOMQuery_Selector(t *testing.T) {
	assert.Equal(t, `css=[id="a"]`, domQuery{css: `[id="a"]`}.selector())
	assert.Equal(t, "xpath=//a", domQuery{xpath: "//a"}.selector())
}

func TestXPathLiteral(t *testing.T) {
	assert.Equal(t, `"plain"`, xpathLiteral("plain"))
	assert.Equal(t, `'say "hi"'`, xpathLiteral(`say "hi"`))
	assert.Equal(t, `concat("it's ", '"', "fine", '"')`, xpathLiteral(`it's "fine"`))
}
