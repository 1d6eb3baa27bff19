// Package pages contains one page object per screen of the demo application.
// Test code drives the application only through the methods below; element
// locators stay private to the page that owns them.
package pages

import (
	"context"
	"fmt"

	"pom_automation/application/page"
	"pom_automation/domain/entities"
	"pom_automation/domain/interfaces"
)

// Page names, also the keys of a locator override file
const (
	HomeName    = "home"
	EchoName    = "echo"
	LoginName   = "login"
	AccountName = "account"
)

var homeLocators = page.MustRegistry(map[string]entities.Locator{
	"title":       entities.ByAccessibilityID("homeTitle"),
	"echoBox":     entities.ByAccessibilityID("Echo Box"),
	"loginScreen": entities.ByAccessibilityID("Login Screen"),
})

// HomePage is the application's landing screen listing the available views
type HomePage struct {
	ui *page.Base
}

// Launch - opens the application on the driver and returns its home page.
// This is the only place a test hands the driver to the page layer.
func Launch(ctx context.Context, driver interfaces.Driver, target string, opts page.Options) (*HomePage, error) {
	if err := driver.Open(ctx, target); err != nil {
		return nil, fmt.Errorf("failed to open application: %w", err)
	}

	ui, err := page.NewBase(driver, HomeName, homeLocators, opts)
	if err != nil {
		return nil, err
	}
	return awaitHome(ctx, ui)
}

func awaitHome(ctx context.Context, ui *page.Base) (*HomePage, error) {
	if err := ui.WaitFor(ctx, "title"); err != nil {
		return nil, err
	}
	return &HomePage{ui: ui}, nil
}

// Title returns the heading of the home screen
func (p *HomePage) Title(ctx context.Context) (string, error) {
	return p.ui.Read(ctx, "title")
}

// OpenEcho - opens the echo box view
func (p *HomePage) OpenEcho(ctx context.Context) (*EchoPage, error) {
	if err := p.ui.Tap(ctx, "echoBox"); err != nil {
		return nil, err
	}
	return newEchoPage(ctx, p.ui)
}

// OpenLogin - opens the login view
func (p *HomePage) OpenLogin(ctx context.Context) (*LoginPage, error) {
	if err := p.ui.Tap(ctx, "loginScreen"); err != nil {
		return nil, err
	}
	return newLoginPage(ctx, p.ui)
}
