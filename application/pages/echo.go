package pages

import (
	"context"

	"pom_automation/application/page"
	"pom_automation/domain/entities"
)

var echoLocators = page.MustRegistry(map[string]entities.Locator{
	"messageInput": entities.ByAccessibilityID("messageInput"),
	"saveButton":   entities.ByAccessibilityID("messageSaveBtn"),
	"savedMessage": entities.ByAccessibilityID("savedMessage"),
})

// EchoPage saves a message and shows it back
type EchoPage struct {
	ui *page.Base
}

func newEchoPage(ctx context.Context, from *page.Base) (*EchoPage, error) {
	ui, err := from.Next(EchoName, echoLocators)
	if err != nil {
		return nil, err
	}
	if err := ui.WaitFor(ctx, "messageInput"); err != nil {
		return nil, err
	}
	return &EchoPage{ui: ui}, nil
}

// SaveMessage - enters msg and saves it
func (p *EchoPage) SaveMessage(ctx context.Context, msg string) error {
	if err := p.ui.Enter(ctx, "messageInput", msg); err != nil {
		return err
	}
	return p.ui.Tap(ctx, "saveButton")
}

// SavedMessage returns the message currently saved
func (p *EchoPage) SavedMessage(ctx context.Context) (string, error) {
	return p.ui.Read(ctx, "savedMessage")
}

// Back - returns to the home page
func (p *EchoPage) Back(ctx context.Context) (*HomePage, error) {
	if err := p.ui.Back(ctx); err != nil {
		return nil, err
	}
	ui, err := p.ui.Next(HomeName, homeLocators)
	if err != nil {
		return nil, err
	}
	return awaitHome(ctx, ui)
}
