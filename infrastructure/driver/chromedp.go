package driver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pom_automation/domain/entities"
	"pom_automation/domain/interfaces"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/chromedp"
	"github.com/sirupsen/logrus"
)

// ChromedpOptions configure a chromedp browser session
type ChromedpOptions struct {
	Headless bool
	BaseURL  string
}

type chromedpDriver struct {
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc
	baseURL     string
	logger      *logrus.Entry
}

var _ interfaces.Driver = (*chromedpDriver)(nil)

// NewChromedp - starts a local Chrome through the DevTools protocol
func NewChromedp(opts ChromedpOptions, logger *logrus.Logger) (interfaces.Driver, error) {
	entry := logger.WithField("driver", "chromedp")

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.WindowSize(1280, 720),
	)
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	ctx, cancel := chromedp.NewContext(allocCtx, chromedp.WithLogf(entry.Debugf))

	// the first Run starts the browser
	if err := chromedp.Run(ctx); err != nil {
		cancel()
		allocCancel()
		return nil, fmt.Errorf("failed to start chrome: %w", err)
	}

	return &chromedpDriver{
		ctx:         ctx,
		cancel:      cancel,
		allocCancel: allocCancel,
		baseURL:     opts.BaseURL,
		logger:      entry,
	}, nil
}

// run executes actions on the browser tab, bounded by timeout when positive
// and canceled together with ctx
func (d *chromedpDriver) run(ctx context.Context, timeout time.Duration, actions ...chromedp.Action) error {
	var (
		runCtx context.Context
		cancel context.CancelFunc
	)
	if timeout > 0 {
		runCtx, cancel = context.WithTimeout(d.ctx, timeout)
	} else {
		runCtx, cancel = context.WithCancel(d.ctx)
	}
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	return chromedp.Run(runCtx, actions...)
}

// Open - navigates to target, or to the configured base URL when target is empty
func (d *chromedpDriver) Open(ctx context.Context, target string) error {
	url := target
	if url == "" {
		url = d.baseURL
	}
	d.logger.Infof("Navigating to: %s", url)
	if err := d.run(ctx, 0, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("failed to open %s: %w", url, err)
	}
	return nil
}

func chromedpQuery(loc entities.Locator) (string, chromedp.QueryOption, error) {
	q, err := toDOMQuery(loc)
	if err != nil {
		return "", nil, err
	}
	if q.xpath != "" {
		return q.xpath, chromedp.BySearch, nil
	}
	return q.css, chromedp.ByQuery, nil
}

// Find - queries the DOM once without waiting
func (d *chromedpDriver) Find(ctx context.Context, loc entities.Locator) (interfaces.Element, error) {
	sel, by, err := chromedpQuery(loc)
	if err != nil {
		return nil, err
	}

	var nodes []*cdp.Node
	if err := d.run(ctx, 0, chromedp.Nodes(sel, &nodes, by, chromedp.AtLeast(0))); err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", loc, err)
	}
	if len(nodes) == 0 {
		return nil, fmt.Errorf("%w: %s", entities.ErrElementNotFound, loc)
	}
	return &chromedpElement{d: d, node: nodes[0]}, nil
}

// WaitUntilPresent - waits for the element to become visible
func (d *chromedpDriver) WaitUntilPresent(ctx context.Context, loc entities.Locator, timeout time.Duration) (interfaces.Element, error) {
	if timeout <= 0 {
		return d.Find(ctx, loc)
	}
	sel, by, err := chromedpQuery(loc)
	if err != nil {
		return nil, err
	}

	var nodes []*cdp.Node
	err = d.run(ctx, timeout,
		chromedp.WaitVisible(sel, by),
		chromedp.Nodes(sel, &nodes, by, chromedp.AtLeast(0)),
	)
	if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
		return nil, fmt.Errorf("%w: %s", entities.ErrElementNotFound, loc)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to wait for %s: %w", loc, err)
	}
	if len(nodes) == 0 {
		return nil, fmt.Errorf("%w: %s", entities.ErrElementNotFound, loc)
	}
	return &chromedpElement{d: d, node: nodes[0]}, nil
}

// Back - navigates back in the tab history
func (d *chromedpDriver) Back(ctx context.Context) error {
	if err := d.run(ctx, 0, chromedp.NavigateBack()); err != nil {
		return fmt.Errorf("failed to go back: %w", err)
	}
	return nil
}

// Close - shuts the browser down
func (d *chromedpDriver) Close() error {
	err := chromedp.Cancel(d.ctx)
	d.cancel()
	d.allocCancel()
	if err != nil {
		return fmt.Errorf("failed to close chrome: %w", err)
	}
	return nil
}

type chromedpElement struct {
	d    *chromedpDriver
	node *cdp.Node
}

func (e *chromedpElement) ids() []cdp.NodeID {
	return []cdp.NodeID{e.node.NodeID}
}

func (e *chromedpElement) Click(ctx context.Context) error {
	return e.d.run(ctx, 0, chromedp.Click(e.ids(), chromedp.ByNodeID))
}

func (e *chromedpElement) TypeText(ctx context.Context, text string) error {
	return e.d.run(ctx, 0,
		chromedp.Clear(e.ids(), chromedp.ByNodeID),
		chromedp.SendKeys(e.ids(), text, chromedp.ByNodeID),
	)
}

// Text returns the value of input elements, the rendered text otherwise
func (e *chromedpElement) Text(ctx context.Context) (string, error) {
	var s string
	switch e.node.NodeName {
	case "INPUT", "TEXTAREA":
		err := e.d.run(ctx, 0, chromedp.Value(e.ids(), &s, chromedp.ByNodeID))
		return s, err
	}
	err := e.d.run(ctx, 0, chromedp.Text(e.ids(), &s, chromedp.ByNodeID))
	return s, err
}
