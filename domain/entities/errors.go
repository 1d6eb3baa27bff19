package entities

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrElementNotFound is returned when an element is absent after the bounded wait
	ErrElementNotFound = errors.New("UI element not found")

	ErrUnknownElement      = errors.New("unknown element name")
	ErrInvalidLocator      = errors.New("invalid locator")
	ErrUnsupportedStrategy = errors.New("locator strategy not supported by driver")
	ErrAssertion           = errors.New("assertion failed")
	ErrUnknownDriver       = errors.New("unknown driver")
	ErrUnknownScenario     = errors.New("unknown scenario")
)

// ElementNotFoundError describes which element of which page did not show up in time
type ElementNotFoundError struct {
	Page    string
	Element string
	Locator Locator
	Timeout time.Duration
	Cause   error
}

func (e *ElementNotFoundError) Error() string {
	msg := fmt.Sprintf("%s: %s.%s (%s) not present after %s", ErrElementNotFound, e.Page, e.Element, e.Locator, e.Timeout)
	if e.Cause != nil && !errors.Is(e.Cause, ErrElementNotFound) {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *ElementNotFoundError) Is(target error) bool {
	return target == ErrElementNotFound
}

func (e *ElementNotFoundError) Unwrap() error {
	return e.Cause
}

// AssertionError is an explicit mismatch between expected and observed high-level data
type AssertionError struct {
	Subject  string
	Expected string
	Actual   string
}

func (e *AssertionError) Error() string {
	return fmt.Sprintf("%s: %s: expected %q, got %q", ErrAssertion, e.Subject, e.Expected, e.Actual)
}

func (e *AssertionError) Is(target error) bool {
	return target == ErrAssertion
}
