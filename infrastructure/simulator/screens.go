package simulator

import (
	"context"
	"time"

	"pom_automation/domain/entities"
	"pom_automation/domain/interfaces"
)

type screen struct {
	name     string
	elements []*element
	values   map[*element]string
	shownAt  time.Time
}

type element struct {
	accessibilityID string
	id              string
	testID          string
	input           bool
	label           func(a *App) string
	present         func(a *App) bool
	onTap           func(a *App, s *screen) error
}

func (el *element) matches(a *App, locator entities.Locator) (bool, error) {
	switch locator.Strategy {
	case entities.StrategyAccessibilityID:
		return el.accessibilityID == locator.Value, nil
	case entities.StrategyID:
		return el.id == locator.Value, nil
	case entities.StrategyTestID:
		return el.testID == locator.Value, nil
	case entities.StrategyText:
		return el.label != nil && el.label(a) == locator.Value, nil
	default:
		return false, entities.ErrUnsupportedStrategy
	}
}

func static(text string) func(*App) string {
	return func(*App) string { return text }
}

func named(accessibilityID, id string) *element {
	return &element{accessibilityID: accessibilityID, id: id, testID: accessibilityID}
}

func (a *App) build(name string) *screen {
	s := &screen{name: name, values: make(map[*element]string)}

	switch name {
	case ScreenHome:
		title := named("homeTitle", "home_title")
		title.label = static("Choose An Awesome View")

		echoBox := named("Echo Box", "echo_box")
		echoBox.label = static("Echo Box")
		echoBox.onTap = func(a *App, _ *screen) error {
			a.push(ScreenEcho)
			return nil
		}

		loginScreen := named("Login Screen", "login_screen")
		loginScreen.label = static("Login Screen")
		loginScreen.onTap = func(a *App, _ *screen) error {
			a.push(ScreenLogin)
			return nil
		}

		s.elements = []*element{title, echoBox, loginScreen}

	case ScreenEcho:
		input := named("messageInput", "message_input")
		input.input = true

		save := named("messageSaveBtn", "message_save_btn")
		save.label = static("Save")
		save.onTap = func(a *App, s *screen) error {
			a.savedMessage = s.values[input]
			return nil
		}

		saved := named("savedMessage", "saved_message")
		saved.label = func(a *App) string { return a.savedMessage }

		s.elements = []*element{input, save, saved}

	case ScreenLogin:
		username := named("username", "username")
		username.input = true
		password := named("password", "password")
		password.input = true

		loginError := named("loginError", "login_error")
		loginError.label = func(a *App) string { return a.loginError }
		loginError.present = func(a *App) bool { return a.loginError != "" }

		loginBtn := named("loginBtn", "login_btn")
		loginBtn.label = static("Log in")
		loginBtn.onTap = func(a *App, s *screen) error {
			user := s.values[username]
			account, ok := a.accounts[user]
			if !ok || account.Password != s.values[password] {
				a.loginError = InvalidLoginMessage
				return nil
			}
			a.loginError = ""
			a.user = user
			a.push(ScreenAccount)
			return nil
		}

		s.elements = []*element{username, password, loginBtn, loginError}

	case ScreenAccount:
		greeting := named("greeting", "greeting")
		greeting.label = func(a *App) string { return "You are logged in as " + a.user }

		balance := named("balance", "balance")
		balance.label = func(a *App) string { return a.accounts[a.user].Balance }

		logout := named("logoutBtn", "logout_btn")
		logout.label = static("Logout")
		logout.onTap = func(a *App, _ *screen) error {
			a.user = ""
			a.pop()
			for k := range a.top().values {
				delete(a.top().values, k)
			}
			return nil
		}

		s.elements = []*element{greeting, balance, logout}
	}

	return s
}

// Element is a handle to an element of the screen it was found on
type Element struct {
	app    *App
	screen *screen
	el     *element
}

func (e *Element) check() error {
	if err := e.app.checkSession(); err != nil {
		return err
	}
	if e.app.top() != e.screen || !e.app.visible(e.screen, e.el) {
		return ErrStaleElement
	}
	return nil
}

// Click - taps the element
func (e *Element) Click(ctx context.Context) error {
	e.app.mu.Lock()
	defer e.app.mu.Unlock()

	if err := e.check(); err != nil {
		return err
	}
	if e.el.onTap == nil {
		return nil
	}
	return e.el.onTap(e.app, e.screen)
}

// TypeText - replaces the input's value
func (e *Element) TypeText(ctx context.Context, text string) error {
	e.app.mu.Lock()
	defer e.app.mu.Unlock()

	if err := e.check(); err != nil {
		return err
	}
	if !e.el.input {
		return ErrNotEditable
	}
	e.screen.values[e.el] = text
	return nil
}

// Text - returns the label or the input's value
func (e *Element) Text(ctx context.Context) (string, error) {
	e.app.mu.Lock()
	defer e.app.mu.Unlock()

	if err := e.check(); err != nil {
		return "", err
	}
	if e.el.input {
		return e.screen.values[e.el], nil
	}
	if e.el.label == nil {
		return "", nil
	}
	return e.el.label(e.app), nil
}

var _ interfaces.Element = (*Element)(nil)
