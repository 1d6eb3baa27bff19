package flow

import (
	"context"

	"pom_automation/application/pages"
)

// EchoScenario - saves msg, reads it back, leaves and re-opens the echo view, and reads it again
func EchoScenario(msg string) Scenario {
	return Scenario{
		Name:        "echo",
		Description: "save a message in the echo box and check it survives navigation",
		Steps: func(ctx context.Context, home *pages.HomePage) error {
			echo, err := home.OpenEcho(ctx)
			if err != nil {
				return err
			}
			if err := echo.SaveMessage(ctx, msg); err != nil {
				return err
			}
			saved, err := echo.SavedMessage(ctx)
			if err != nil {
				return err
			}
			if err := Expect("saved message", msg, saved); err != nil {
				return err
			}

			home, err = echo.Back(ctx)
			if err != nil {
				return err
			}
			echo, err = home.OpenEcho(ctx)
			if err != nil {
				return err
			}
			saved, err = echo.SavedMessage(ctx)
			if err != nil {
				return err
			}
			return Expect("saved message after re-opening", msg, saved)
		},
	}
}

// LoginScenario - signs in, checks the displayed balance and signs out
func LoginScenario(username, password, balance string) Scenario {
	return Scenario{
		Name:        "login",
		Description: "sign in, check the balance and sign out",
		Steps: func(ctx context.Context, home *pages.HomePage) error {
			login, err := home.OpenLogin(ctx)
			if err != nil {
				return err
			}
			account, err := login.Login(ctx, username, password)
			if err != nil {
				return err
			}
			greeting, err := account.Greeting(ctx)
			if err != nil {
				return err
			}
			if err := Expect("greeting", "You are logged in as "+username, greeting); err != nil {
				return err
			}
			got, err := account.Balance(ctx)
			if err != nil {
				return err
			}
			if err := Expect("balance", balance, got); err != nil {
				return err
			}
			_, err = account.Logout(ctx)
			return err
		},
	}
}

// InvalidLoginScenario - submits bad credentials and checks the error message
func InvalidLoginScenario(username, password, message string) Scenario {
	return Scenario{
		Name:        "login-invalid",
		Description: "reject wrong credentials with an error message",
		Steps: func(ctx context.Context, home *pages.HomePage) error {
			login, err := home.OpenLogin(ctx)
			if err != nil {
				return err
			}
			got, err := login.LoginExpectingError(ctx, username, password)
			if err != nil {
				return err
			}
			return Expect("login error", message, got)
		},
	}
}

// BuiltIn returns the scenarios shipped with the tool, written against the demo application
func BuiltIn() *Catalog {
	c, err := NewCatalog(
		EchoScenario("Hello"),
		LoginScenario("alice", "s3cret", "$1,234.56"),
		InvalidLoginScenario("alice", "wrong", "Invalid login credentials, please try again"),
	)
	if err != nil {
		panic(err)
	}
	return c
}
