package pages

import (
	"context"
	"errors"
	"fmt"

	"pom_automation/application/page"
	"pom_automation/domain/entities"
)

var loginLocators = page.MustRegistry(map[string]entities.Locator{
	"username":    entities.ByAccessibilityID("username"),
	"password":    entities.ByAccessibilityID("password"),
	"loginButton": entities.ByAccessibilityID("loginBtn"),
	"error":       entities.ByAccessibilityID("loginError"),
})

// LoginPage signs a user in
type LoginPage struct {
	ui *page.Base
}

func newLoginPage(ctx context.Context, from *page.Base) (*LoginPage, error) {
	ui, err := from.Next(LoginName, loginLocators)
	if err != nil {
		return nil, err
	}
	if err := ui.WaitFor(ctx, "username"); err != nil {
		return nil, err
	}
	return &LoginPage{ui: ui}, nil
}

func (p *LoginPage) submit(ctx context.Context, username, password string) error {
	if err := p.ui.Enter(ctx, "username", username); err != nil {
		return err
	}
	if err := p.ui.Enter(ctx, "password", password); err != nil {
		return err
	}
	return p.ui.Tap(ctx, "loginButton")
}

// Login - signs in and returns the account page. When the account page does
// not appear, the error carries the message of any login error still shown.
func (p *LoginPage) Login(ctx context.Context, username, password string) (*AccountPage, error) {
	if err := p.submit(ctx, username, password); err != nil {
		return nil, err
	}
	account, err := newAccountPage(ctx, p.ui)
	if err == nil || !errors.Is(err, entities.ErrElementNotFound) {
		return account, err
	}

	shown, checkErr := p.ui.IsShown(ctx, "error", 0)
	if checkErr != nil || !shown {
		return nil, err
	}
	msg, readErr := p.ui.Read(ctx, "error")
	if readErr != nil {
		return nil, err
	}
	return nil, fmt.Errorf("login rejected: %q: %w", msg, err)
}

// LoginExpectingError - submits credentials that should be rejected and returns the error shown
func (p *LoginPage) LoginExpectingError(ctx context.Context, username, password string) (string, error) {
	if err := p.submit(ctx, username, password); err != nil {
		return "", err
	}
	return p.ui.Read(ctx, "error")
}

// Back - returns to the home page
func (p *LoginPage) Back(ctx context.Context) (*HomePage, error) {
	if err := p.ui.Back(ctx); err != nil {
		return nil, err
	}
	ui, err := p.ui.Next(HomeName, homeLocators)
	if err != nil {
		return nil, err
	}
	return awaitHome(ctx, ui)
}
