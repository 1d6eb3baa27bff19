// Package page holds the machinery every page object is built on: the
// element locator registry and Base, which performs the waits and driver
// calls behind a page's high-level actions.
package page

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"pom_automation/domain/entities"
	"pom_automation/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// DefaultTimeout bounds every wait for an element
const DefaultTimeout = 10 * time.Second

// Options are shared by all pages of one session
type Options struct {
	Timeout   time.Duration
	Logger    *logrus.Logger
	Overrides Overrides
}

func (o Options) withDefaults() Options {
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.Logger == nil {
		o.Logger = logrus.New()
		o.Logger.SetOutput(io.Discard)
	}
	return o
}

// Base performs element interactions for one page. It borrows the driver and never closes it.
type Base struct {
	driver   interfaces.Driver
	name     string
	locators *Registry
	opts     Options
	logger   *logrus.Entry
}

// NewBase - creates the base of page name, applying any locator overrides for it
func NewBase(driver interfaces.Driver, name string, locators *Registry, opts Options) (*Base, error) {
	opts = opts.withDefaults()

	registry, err := locators.With(opts.Overrides.For(name))
	if err != nil {
		return nil, fmt.Errorf("page %s: %w", name, err)
	}

	return &Base{
		driver:   driver,
		name:     name,
		locators: registry,
		opts:     opts,
		logger:   opts.Logger.WithField("page", name),
	}, nil
}

// Next - creates the base of another page on the same session
func (b *Base) Next(name string, locators *Registry) (*Base, error) {
	return NewBase(b.driver, name, locators, b.opts)
}

// Name returns the page name
func (b *Base) Name() string {
	return b.name
}

// Timeout returns the bounded wait applied before each interaction
func (b *Base) Timeout() time.Duration {
	return b.opts.Timeout
}

// element - waits for the named element to be present
func (b *Base) element(ctx context.Context, name string) (interfaces.Element, error) {
	loc, err := b.locators.Get(name)
	if err != nil {
		return nil, fmt.Errorf("page %s: %w", b.name, err)
	}

	el, err := b.driver.WaitUntilPresent(ctx, loc, b.opts.Timeout)
	if err != nil {
		if errors.Is(err, entities.ErrElementNotFound) {
			b.logger.WithFields(logrus.Fields{"element": name, "locator": loc.String()}).Warn("element not found")
			return nil, &entities.ElementNotFoundError{
				Page:    b.name,
				Element: name,
				Locator: loc,
				Timeout: b.opts.Timeout,
				Cause:   err,
			}
		}
		return nil, fmt.Errorf("failed to locate %s.%s: %w", b.name, name, err)
	}
	return el, nil
}

// WaitFor - waits until the named element is present
func (b *Base) WaitFor(ctx context.Context, name string) error {
	_, err := b.element(ctx, name)
	return err
}

// Tap - waits for the named element and taps it
func (b *Base) Tap(ctx context.Context, name string) error {
	el, err := b.element(ctx, name)
	if err != nil {
		return err
	}
	b.logger.WithField("element", name).Debug("tap")
	if err := el.Click(ctx); err != nil {
		return fmt.Errorf("failed to tap %s.%s: %w", b.name, name, err)
	}
	return nil
}

// Enter - waits for the named input and replaces its text
func (b *Base) Enter(ctx context.Context, name, text string) error {
	el, err := b.element(ctx, name)
	if err != nil {
		return err
	}
	b.logger.WithField("element", name).Debug("type")
	if err := el.TypeText(ctx, text); err != nil {
		return fmt.Errorf("failed to type into %s.%s: %w", b.name, name, err)
	}
	return nil
}

// Read - waits for the named element and returns its text
func (b *Base) Read(ctx context.Context, name string) (string, error) {
	el, err := b.element(ctx, name)
	if err != nil {
		return "", err
	}
	text, err := el.Text(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read %s.%s: %w", b.name, name, err)
	}
	b.logger.WithFields(logrus.Fields{"element": name, "text": text}).Debug("read")
	return text, nil
}

// IsShown - reports whether the named element appears within the given wait
func (b *Base) IsShown(ctx context.Context, name string, within time.Duration) (bool, error) {
	loc, err := b.locators.Get(name)
	if err != nil {
		return false, fmt.Errorf("page %s: %w", b.name, err)
	}

	_, err = b.driver.WaitUntilPresent(ctx, loc, within)
	if errors.Is(err, entities.ErrElementNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check %s.%s: %w", b.name, name, err)
	}
	return true, nil
}

// Back - navigates to the previous screen
func (b *Base) Back(ctx context.Context) error {
	b.logger.Debug("back")
	if err := b.driver.Back(ctx); err != nil {
		return fmt.Errorf("failed to navigate back from %s: %w", b.name, err)
	}
	return nil
}
