package driver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pom_automation/domain/entities"
	"pom_automation/domain/interfaces"

	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"
)

// PlaywrightOptions configure a playwright browser session
type PlaywrightOptions struct {
	Headless bool
	BaseURL  string
}

type playwrightDriver struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	page    playwright.Page
	baseURL string
	logger  *logrus.Entry
}

var _ interfaces.Driver = (*playwrightDriver)(nil)

// NewPlaywright - starts playwright and opens a chromium page
func NewPlaywright(opts PlaywrightOptions, logger *logrus.Logger) (interfaces.Driver, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
		Args: []string{
			"--disable-dev-shm-usage",
			"--no-sandbox",
			"--disable-notifications",
		},
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	page, err := browser.NewPage(playwright.BrowserNewPageOptions{
		Viewport: &playwright.Size{
			Width:  1280,
			Height: 720,
		},
	})
	if err != nil {
		_ = browser.Close()
		_ = pw.Stop()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	d := &playwrightDriver{
		pw:      pw,
		browser: browser,
		page:    page,
		baseURL: opts.BaseURL,
		logger:  logger.WithField("driver", "playwright"),
	}

	page.OnDialog(func(dialog playwright.Dialog) {
		d.logger.Debugf("Accepting dialog: %s", dialog.Message())
		_ = dialog.Accept()
	})

	return d, nil
}

// Open - navigates to target, or to the configured base URL when target is empty
func (d *playwrightDriver) Open(ctx context.Context, target string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	url := target
	if url == "" {
		url = d.baseURL
	}
	d.logger.Infof("Navigating to: %s", url)
	if _, err := d.page.Goto(url); err != nil {
		return fmt.Errorf("failed to open %s: %w", url, err)
	}
	return nil
}

func (d *playwrightDriver) locator(loc entities.Locator) (playwright.Locator, error) {
	q, err := toDOMQuery(loc)
	if err != nil {
		return nil, err
	}
	return d.page.Locator(q.selector()).First(), nil
}

// Find - returns the first match, or ErrElementNotFound when nothing matches
func (d *playwrightDriver) Find(ctx context.Context, loc entities.Locator) (interfaces.Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l, err := d.locator(loc)
	if err != nil {
		return nil, err
	}
	n, err := l.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", loc, err)
	}
	if n == 0 {
		return nil, fmt.Errorf("%w: %s", entities.ErrElementNotFound, loc)
	}
	return &playwrightElement{loc: l}, nil
}

// WaitUntilPresent - waits for the first match to become visible. A timeout
// of zero or less looks the element up once, since playwright reads 0 as no limit.
func (d *playwrightDriver) WaitUntilPresent(ctx context.Context, loc entities.Locator, timeout time.Duration) (interfaces.Element, error) {
	if timeout <= 0 {
		return d.Find(ctx, loc)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l, err := d.locator(loc)
	if err != nil {
		return nil, err
	}

	// WaitFor cannot be interrupted; the timeout bounds the goroutine
	done := make(chan error, 1)
	go func() {
		done <- l.WaitFor(playwright.LocatorWaitForOptions{
			State:   playwright.WaitForSelectorStateVisible,
			Timeout: playwright.Float(float64(max(timeout.Milliseconds(), 1))),
		})
	}()
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case err = <-done:
	}

	if errors.Is(err, playwright.ErrTimeout) {
		return nil, fmt.Errorf("%w: %s", entities.ErrElementNotFound, loc)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to wait for %s: %w", loc, err)
	}
	return &playwrightElement{loc: l}, nil
}

// Back - goes one entry back in the page history
func (d *playwrightDriver) Back(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := d.page.GoBack(); err != nil {
		return fmt.Errorf("failed to go back: %w", err)
	}
	return nil
}

// Close - closes the browser and stops playwright
func (d *playwrightDriver) Close() error {
	var errs []error
	if err := d.browser.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close browser: %w", err))
	}
	if err := d.pw.Stop(); err != nil {
		errs = append(errs, fmt.Errorf("failed to stop playwright: %w", err))
	}
	return errors.Join(errs...)
}

type playwrightElement struct {
	loc playwright.Locator
}

func (e *playwrightElement) Click(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return e.loc.Click()
}

func (e *playwrightElement) TypeText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return e.loc.Fill(text)
}

// Text returns the input value for editable elements, the text content otherwise
func (e *playwrightElement) Text(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	editable, err := e.loc.IsEditable()
	if err == nil && editable {
		return e.loc.InputValue()
	}
	return e.loc.TextContent()
}
