package pages

import (
	"context"

	"pom_automation/application/page"
	"pom_automation/domain/entities"
)

var accountLocators = page.MustRegistry(map[string]entities.Locator{
	"greeting":     entities.ByAccessibilityID("greeting"),
	"balance":      entities.ByAccessibilityID("balance"),
	"logoutButton": entities.ByAccessibilityID("logoutBtn"),
})

// AccountPage is shown to a signed-in user
type AccountPage struct {
	ui *page.Base
}

func newAccountPage(ctx context.Context, from *page.Base) (*AccountPage, error) {
	ui, err := from.Next(AccountName, accountLocators)
	if err != nil {
		return nil, err
	}
	if err := ui.WaitFor(ctx, "greeting"); err != nil {
		return nil, err
	}
	return &AccountPage{ui: ui}, nil
}

// Greeting returns the signed-in banner
func (p *AccountPage) Greeting(ctx context.Context) (string, error) {
	return p.ui.Read(ctx, "greeting")
}

// Balance returns the displayed account balance
func (p *AccountPage) Balance(ctx context.Context) (string, error) {
	return p.ui.Read(ctx, "balance")
}

// Logout - signs out and returns to the login page
func (p *AccountPage) Logout(ctx context.Context) (*LoginPage, error) {
	if err := p.ui.Tap(ctx, "logoutButton"); err != nil {
		return nil, err
	}
	return newLoginPage(ctx, p.ui)
}
