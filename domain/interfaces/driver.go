package interfaces

import (
	"context"
	"time"

	"pom_automation/domain/entities"
)

// Driver is the UI-automation session shared by the pages of one test case.
// Only the page layer calls it directly.
type Driver interface {
	// Open launches the application or navigates to the target
	Open(ctx context.Context, target string) error

	// Find looks the element up once, without waiting
	Find(ctx context.Context, locator entities.Locator) (Element, error)

	// WaitUntilPresent blocks until the element is present or the timeout elapses
	WaitUntilPresent(ctx context.Context, locator entities.Locator, timeout time.Duration) (Element, error)

	// Back navigates to the previous screen
	Back(ctx context.Context) error

	// Close ends the session
	Close() error
}

// Element is a located UI element
type Element interface {
	// Click taps or clicks the element
	Click(ctx context.Context) error

	// TypeText replaces the element's input with text
	TypeText(ctx context.Context, text string) error

	// Text returns the visible text or input value of the element
	Text(ctx context.Context) (string, error)
}
