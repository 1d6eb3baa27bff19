package driver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pom_automation/domain/entities"
	"pom_automation/domain/interfaces"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/sirupsen/logrus"
)

// RodOptions configure a rod browser session. ControlURL attaches to an
// already running browser instead of launching one.
type RodOptions struct {
	Headless   bool
	BaseURL    string
	ControlURL string
}

type rodDriver struct {
	browser *rod.Browser
	page    *rod.Page
	baseURL string
	logger  *logrus.Entry
}

var _ interfaces.Driver = (*rodDriver)(nil)

// NewRod - launches or attaches to Chrome and opens a blank page
func NewRod(opts RodOptions, logger *logrus.Logger) (interfaces.Driver, error) {
	controlURL := opts.ControlURL
	if controlURL == "" {
		u, err := launcher.New().Headless(opts.Headless).Launch()
		if err != nil {
			return nil, fmt.Errorf("failed to launch chrome: %w", err)
		}
		controlURL = u
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to chrome: %w", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		_ = browser.Close()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	return &rodDriver{
		browser: browser,
		page:    page,
		baseURL: opts.BaseURL,
		logger:  logger.WithField("driver", "rod"),
	}, nil
}

// Open - navigates to target, or to the configured base URL, and waits for the load event
func (d *rodDriver) Open(ctx context.Context, target string) error {
	url := target
	if url == "" {
		url = d.baseURL
	}
	d.logger.Infof("Navigating to: %s", url)

	p := d.page.Context(ctx)
	if err := p.Navigate(url); err != nil {
		return fmt.Errorf("failed to open %s: %w", url, err)
	}
	if err := p.WaitLoad(); err != nil {
		return fmt.Errorf("failed to load %s: %w", url, err)
	}
	return nil
}

// Find - checks the DOM once without waiting
func (d *rodDriver) Find(ctx context.Context, loc entities.Locator) (interfaces.Element, error) {
	q, err := toDOMQuery(loc)
	if err != nil {
		return nil, err
	}

	p := d.page.Context(ctx)
	var (
		has bool
		el  *rod.Element
	)
	if q.xpath != "" {
		has, el, err = p.HasX(q.xpath)
	} else {
		has, el, err = p.Has(q.css)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", loc, err)
	}
	if !has {
		return nil, fmt.Errorf("%w: %s", entities.ErrElementNotFound, loc)
	}
	return &rodElement{el: el}, nil
}

// WaitUntilPresent - retries the query until the element exists or timeout elapses
func (d *rodDriver) WaitUntilPresent(ctx context.Context, loc entities.Locator, timeout time.Duration) (interfaces.Element, error) {
	if timeout <= 0 {
		return d.Find(ctx, loc)
	}
	q, err := toDOMQuery(loc)
	if err != nil {
		return nil, err
	}

	p := d.page.Context(ctx).Timeout(timeout)
	var el *rod.Element
	if q.xpath != "" {
		el, err = p.ElementX(q.xpath)
	} else {
		el, err = p.Element(q.css)
	}
	if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
		return nil, fmt.Errorf("%w: %s", entities.ErrElementNotFound, loc)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to wait for %s: %w", loc, err)
	}
	return &rodElement{el: el}, nil
}

// Back - navigates back in the page history
func (d *rodDriver) Back(ctx context.Context) error {
	if err := d.page.Context(ctx).NavigateBack(); err != nil {
		return fmt.Errorf("failed to go back: %w", err)
	}
	return nil
}

// Close - closes the browser
func (d *rodDriver) Close() error {
	if err := d.browser.Close(); err != nil {
		return fmt.Errorf("failed to close browser: %w", err)
	}
	return nil
}

// rodElement rebinds every action to the caller's context, so the wait deadline does not carry over
type rodElement struct {
	el *rod.Element
}

func (e *rodElement) Click(ctx context.Context) error {
	return e.el.Context(ctx).Click(proto.InputMouseButtonLeft, 1)
}

func (e *rodElement) TypeText(ctx context.Context, text string) error {
	el := e.el.Context(ctx)
	if err := el.SelectAllText(); err != nil {
		return fmt.Errorf("failed to select existing text: %w", err)
	}
	return el.Input(text)
}

func (e *rodElement) Text(ctx context.Context) (string, error) {
	return e.el.Context(ctx).Text()
}
