package entities

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocator_Validate(t *testing.T) {
	for _, loc := range []Locator{
		ByAccessibilityID("messageInput"),
		ByID("login_btn"),
		ByCSS("#a > b"),
		ByXPath("//a"),
		ByText("Log in"),
		ByTestID("balance"),
	} {
		assert.NoError(t, loc.Validate(), loc.String())
	}

	err := Locator{Strategy: "class chain", Value: "x"}.Validate()
	require.ErrorIs(t, err, ErrInvalidLocator)
	assert.Contains(t, err.Error(), "class chain")

	require.ErrorIs(t, ByAccessibilityID("").Validate(), ErrInvalidLocator)
}

func TestLocator_String(t *testing.T) {
	assert.Equal(t, "accessibility id=messageSaveBtn", ByAccessibilityID("messageSaveBtn").String())
}

func TestElementNotFoundError(t *testing.T) {
	cause := fmt.Errorf("%w: id=x", ErrElementNotFound)
	err := &ElementNotFoundError{Page: "echo", Element: "saveButton", Locator: ByID("x"), Timeout: time.Second, Cause: cause}

	assert.ErrorIs(t, err, ErrElementNotFound)
	assert.Equal(t, "UI element not found: echo.saveButton (id=x) not present after 1s", err.Error())

	wrapped := fmt.Errorf("save message: %w", err)
	var nf *ElementNotFoundError
	require.True(t, errors.As(wrapped, &nf))
	assert.Equal(t, "saveButton", nf.Element)
}

func TestElementNotFoundError_KeepsOtherCause(t *testing.T) {
	cause := errors.New("session closed")
	err := &ElementNotFoundError{Page: "home", Element: "title", Locator: ByID("t"), Timeout: time.Second, Cause: cause}

	assert.ErrorIs(t, err, ErrElementNotFound)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "session closed")
}

func TestAssertionError(t *testing.T) {
	err := error(&AssertionError{Subject: "balance", Expected: "$1", Actual: "$2"})
	assert.ErrorIs(t, err, ErrAssertion)
	assert.NotErrorIs(t, err, ErrElementNotFound)
	assert.Equal(t, `assertion failed: balance: expected "$1", got "$2"`, err.Error())
}

func TestRun_Duration(t *testing.T) {
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	run := Run{StartedAt: start}
	assert.Zero(t, run.Duration())

	run.FinishedAt = start.Add(1500 * time.Millisecond)
	assert.Equal(t, 1500*time.Millisecond, run.Duration())
}
