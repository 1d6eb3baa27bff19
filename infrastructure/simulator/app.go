// Package simulator provides an in-memory demo application that implements
// interfaces.Driver. It models the screens the pages in application/pages
// describe, so page objects and scenarios can run without a device or browser.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"pom_automation/domain/entities"
	"pom_automation/domain/interfaces"
	"pom_automation/infrastructure/wait"

	"github.com/sirupsen/logrus"
)

// Screens of the demo application
const (
	ScreenHome    = "home"
	ScreenEcho    = "echo"
	ScreenLogin   = "login"
	ScreenAccount = "account"
)

// InvalidLoginMessage is shown on the login screen after a rejected login
const InvalidLoginMessage = "Invalid login credentials, please try again"

var (
	ErrSessionNotOpen = errors.New("simulator session not open")
	ErrSessionClosed  = errors.New("simulator session closed")
	ErrStaleElement   = errors.New("stale element: screen changed")
	ErrNotEditable    = errors.New("element does not accept text")
	ErrNoHistory      = errors.New("no previous screen")
)

// Account is a user known to the demo application
type Account struct {
	Password string
	Balance  string
}

// App is the simulated application and its single driver session
type App struct {
	mu           sync.Mutex
	logger       *logrus.Logger
	pollInterval time.Duration
	appearDelay  time.Duration
	hidden       map[string]bool
	accounts     map[string]Account

	stack  []*screen
	opened bool
	closed bool

	savedMessage string
	user         string
	loginError   string
}

// Option configures the simulator
type Option func(*App)

// WithLogger - sets the logger used for navigation traces
func WithLogger(logger *logrus.Logger) Option {
	return func(a *App) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithPollInterval - sets how often WaitUntilPresent re-checks the screen
func WithPollInterval(d time.Duration) Option {
	return func(a *App) { a.pollInterval = d }
}

// WithAppearDelay - elements of a freshly shown screen appear only after d
func WithAppearDelay(d time.Duration) Option {
	return func(a *App) { a.appearDelay = d }
}

// WithAccount - registers a user that can log in
func WithAccount(user, password, balance string) Option {
	return func(a *App) { a.accounts[user] = Account{Password: password, Balance: balance} }
}

// WithHidden - elements with any of these identifiers never appear
func WithHidden(ids ...string) Option {
	return func(a *App) {
		for _, id := range ids {
			a.hidden[id] = true
		}
	}
}

// New - creates a simulator with the default demo accounts
func New(opts ...Option) *App {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	a := &App{
		logger:       logger,
		pollInterval: wait.DefaultInterval,
		hidden:       make(map[string]bool),
		accounts: map[string]Account{
			"alice": {Password: "s3cret", Balance: "$1,234.56"},
			"bob":   {Password: "hunter2", Balance: "$87.00"},
		},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Hide - makes elements disappear from now on, as after a UI change
func (a *App) Hide(ids ...string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, id := range ids {
		a.hidden[id] = true
	}
}

// Screen returns the name of the screen currently shown
func (a *App) Screen() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.stack) == 0 {
		return ""
	}
	return a.top().name
}

// Open - launches the application on its home screen. Stored data survives a relaunch, the login session does not.
func (a *App) Open(ctx context.Context, target string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return ErrSessionClosed
	}
	a.opened = true
	a.user = ""
	a.loginError = ""
	a.stack = nil
	a.push(ScreenHome)
	return nil
}

// Find - looks the element up on the current screen without waiting
func (a *App) Find(ctx context.Context, locator entities.Locator) (interfaces.Element, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.checkSession(); err != nil {
		return nil, err
	}
	if err := locator.Validate(); err != nil {
		return nil, err
	}

	s := a.top()
	for _, el := range s.elements {
		if !a.visible(s, el) {
			continue
		}
		ok, err := el.matches(a, locator)
		if err != nil {
			return nil, err
		}
		if ok {
			return &Element{app: a, screen: s, el: el}, nil
		}
	}
	return nil, fmt.Errorf("%w: %s on screen %s", entities.ErrElementNotFound, locator, s.name)
}

// WaitUntilPresent - polls the current screen until the element shows up
func (a *App) WaitUntilPresent(ctx context.Context, locator entities.Locator, timeout time.Duration) (interfaces.Element, error) {
	return wait.Poll(ctx, timeout, a.pollInterval, func(ctx context.Context) (interfaces.Element, error) {
		return a.Find(ctx, locator)
	})
}

// Back - returns to the previous screen
func (a *App) Back(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.checkSession(); err != nil {
		return err
	}
	if len(a.stack) <= 1 {
		return ErrNoHistory
	}
	a.pop()
	return nil
}

// Close - ends the session
func (a *App) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closed = true
	return nil
}

func (a *App) checkSession() error {
	if a.closed {
		return ErrSessionClosed
	}
	if !a.opened {
		return ErrSessionNotOpen
	}
	return nil
}

func (a *App) top() *screen {
	return a.stack[len(a.stack)-1]
}

func (a *App) push(name string) {
	s := a.build(name)
	s.shownAt = time.Now()
	a.stack = append(a.stack, s)
	a.logger.WithField("screen", name).Debug("simulator: showing screen")
}

func (a *App) pop() {
	a.stack = a.stack[:len(a.stack)-1]
	s := a.top()
	s.shownAt = time.Now()
	a.logger.WithField("screen", s.name).Debug("simulator: back to screen")
}

func (a *App) visible(s *screen, el *element) bool {
	if a.hidden[el.accessibilityID] || a.hidden[el.id] || a.hidden[el.testID] {
		return false
	}
	if el.present != nil && !el.present(a) {
		return false
	}
	return time.Since(s.shownAt) >= a.appearDelay
}

var _ interfaces.Driver = (*App)(nil)
