package driver

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pom_automation/domain/entities"
	"pom_automation/domain/interfaces"
	"pom_automation/infrastructure/wait"

	"github.com/sirupsen/logrus"
	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/chrome"
)

// SeleniumOptions configure a remote WebDriver session. A non-empty Platform
// requests an Appium session for a native app. With AppID set, the app is
// restarted in place between scenarios; without it the session is recreated.
type SeleniumOptions struct {
	URL          string
	BaseURL      string
	Headless     bool
	PollInterval time.Duration

	Platform       string
	AutomationName string
	DeviceName     string
	App            string
	AppID          string
}

func (o SeleniumOptions) mobile() bool {
	return o.Platform != ""
}

func (o SeleniumOptions) capabilities() selenium.Capabilities {
	if o.mobile() {
		caps := selenium.Capabilities{"platformName": o.Platform}
		if o.AutomationName != "" {
			caps["appium:automationName"] = o.AutomationName
		}
		if o.DeviceName != "" {
			caps["appium:deviceName"] = o.DeviceName
		}
		if o.App != "" {
			caps["appium:app"] = o.App
		}
		return caps
	}

	caps := selenium.Capabilities{"browserName": "chrome"}
	args := []string{
		"--disable-dev-shm-usage",
		"--no-sandbox",
	}
	if o.Headless {
		args = append(args, "--headless=new")
	}
	caps.AddChrome(chrome.Capabilities{Args: args})
	return caps
}

type seleniumDriver struct {
	wd       selenium.WebDriver
	opts     SeleniumOptions
	interval time.Duration
	logger   *logrus.Entry

	// opened is set by the first Open; the app a new session starts needs no relaunch
	opened bool
}

var _ interfaces.Driver = (*seleniumDriver)(nil)

// NewSelenium - opens a remote session on a WebDriver or Appium server
func NewSelenium(opts SeleniumOptions, logger *logrus.Logger) (interfaces.Driver, error) {
	wd, err := selenium.NewRemote(opts.capabilities(), opts.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to create webdriver session at %s: %w", opts.URL, err)
	}

	interval := opts.PollInterval
	if interval <= 0 {
		interval = wait.DefaultInterval
	}

	return &seleniumDriver{
		wd:       wd,
		opts:     opts,
		interval: interval,
		logger:   logger.WithField("driver", "selenium"),
	}, nil
}

// Open - navigates to target in a browser session. On Appium sessions every
// Open after the first relaunches the app, then navigates only when given a
// target (a deep link).
func (d *seleniumDriver) Open(ctx context.Context, target string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d.opts.mobile() {
		if d.opened {
			if err := d.relaunch(); err != nil {
				return err
			}
		}
		d.opened = true
	}

	url := target
	if url == "" && !d.opts.mobile() {
		url = d.opts.BaseURL
	}
	if url == "" {
		return nil
	}
	d.logger.Infof("Navigating to: %s", url)
	if err := d.wd.Get(url); err != nil {
		return fmt.Errorf("failed to open %s: %w", url, err)
	}
	return nil
}

// relaunch - restarts the app so the next scenario begins on its first screen
func (d *seleniumDriver) relaunch() error {
	if d.opts.AppID != "" {
		d.logger.Infof("Restarting app %s", d.opts.AppID)
		args := []interface{}{map[string]interface{}{"appId": d.opts.AppID}}
		if _, err := d.wd.ExecuteScript("mobile: terminateApp", args); err != nil {
			return fmt.Errorf("failed to terminate app %s: %w", d.opts.AppID, err)
		}
		if _, err := d.wd.ExecuteScript("mobile: activateApp", args); err != nil {
			return fmt.Errorf("failed to activate app %s: %w", d.opts.AppID, err)
		}
		return nil
	}

	d.logger.Info("Recreating appium session to restart the app")
	if err := d.wd.Quit(); err != nil {
		d.logger.Warnf("Failed to quit previous session: %v", err)
	}
	wd, err := selenium.NewRemote(d.opts.capabilities(), d.opts.URL)
	if err != nil {
		return fmt.Errorf("failed to recreate webdriver session at %s: %w", d.opts.URL, err)
	}
	d.wd = wd
	return nil
}

// using translates loc into a W3C locator strategy and value
func (d *seleniumDriver) using(loc entities.Locator) (string, string, error) {
	if !d.opts.mobile() {
		q, err := toDOMQuery(loc)
		if err != nil {
			return "", "", err
		}
		if q.xpath != "" {
			return selenium.ByXPATH, q.xpath, nil
		}
		return selenium.ByCSSSelector, q.css, nil
	}

	if err := loc.Validate(); err != nil {
		return "", "", err
	}
	switch loc.Strategy {
	case entities.StrategyAccessibilityID, entities.StrategyTestID:
		// React Native exposes testID as the accessibility identifier
		return string(entities.StrategyAccessibilityID), loc.Value, nil
	case entities.StrategyID:
		return selenium.ByID, loc.Value, nil
	case entities.StrategyXPath:
		return selenium.ByXPATH, loc.Value, nil
	case entities.StrategyText:
		lit := xpathLiteral(loc.Value)
		return selenium.ByXPATH, fmt.Sprintf("//*[@text=%s or @label=%s or @name=%s]", lit, lit, lit), nil
	}
	return "", "", fmt.Errorf("%w: %s on %s", entities.ErrUnsupportedStrategy, loc.Strategy, d.opts.Platform)
}

// Find - looks the element up once
func (d *seleniumDriver) Find(ctx context.Context, loc entities.Locator) (interfaces.Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	by, value, err := d.using(loc)
	if err != nil {
		return nil, err
	}

	el, err := d.wd.FindElement(by, value)
	if isNoSuchElement(err) {
		return nil, fmt.Errorf("%w: %s", entities.ErrElementNotFound, loc)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find %s: %w", loc, err)
	}
	return &seleniumElement{el: el, web: !d.opts.mobile()}, nil
}

// WaitUntilPresent - polls Find through the WebDriver wait loop
func (d *seleniumDriver) WaitUntilPresent(ctx context.Context, loc entities.Locator, timeout time.Duration) (interfaces.Element, error) {
	var (
		found    interfaces.Element
		notFound error
		failed   error
	)
	condition := func(selenium.WebDriver) (bool, error) {
		el, err := d.Find(ctx, loc)
		if errors.Is(err, entities.ErrElementNotFound) {
			notFound = err
			return false, nil
		}
		if err != nil {
			failed = err
			return false, err
		}
		found = el
		return true, nil
	}

	err := d.wd.WaitWithTimeoutAndInterval(condition, timeout, d.interval)
	switch {
	case found != nil:
		return found, nil
	case failed != nil:
		return nil, failed
	case err != nil && notFound == nil:
		return nil, fmt.Errorf("failed to wait for %s: %w", loc, err)
	}
	return nil, fmt.Errorf("%w: %s", entities.ErrElementNotFound, loc)
}

// Back - navigates back in the session history
func (d *seleniumDriver) Back(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := d.wd.Back(); err != nil {
		return fmt.Errorf("failed to go back: %w", err)
	}
	return nil
}

// Close - ends the remote session
func (d *seleniumDriver) Close() error {
	if err := d.wd.Quit(); err != nil {
		return fmt.Errorf("failed to quit webdriver session: %w", err)
	}
	return nil
}

func isNoSuchElement(err error) bool {
	if err == nil {
		return false
	}
	var se *selenium.Error
	if errors.As(err, &se) && se.Err == "no such element" {
		return true
	}
	return strings.Contains(err.Error(), "no such element")
}

type seleniumElement struct {
	el  selenium.WebElement
	web bool
}

func (e *seleniumElement) Click(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return e.el.Click()
}

func (e *seleniumElement) TypeText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := e.el.Clear(); err != nil {
		return fmt.Errorf("failed to clear element: %w", err)
	}
	return e.el.SendKeys(text)
}

// Text returns the value attribute of web inputs, the element text otherwise
func (e *seleniumElement) Text(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if e.web {
		tag, err := e.el.TagName()
		if err == nil && (strings.EqualFold(tag, "input") || strings.EqualFold(tag, "textarea")) {
			return e.el.GetAttribute("value")
		}
	}
	return e.el.Text()
}
