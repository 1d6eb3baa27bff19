package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the settings of a test session
type Config struct {
	Driver       string
	AppURL       string
	WebDriverURL string
	Headless     bool
	WaitTimeout  time.Duration
	PollInterval time.Duration
	LocatorsFile string
	JournalDir   string
	LogLevel     string

	// RodControlURL attaches the rod driver to a running browser instead of launching one
	RodControlURL string

	// Appium capabilities, used by the selenium driver. AppID is the bundle or
	// package id used to restart the app between scenarios.
	Platform       string
	AutomationName string
	DeviceName     string
	App            string
	AppID          string
}

// Default returns the configuration used when nothing is set
func Default() Config {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	return Config{
		Driver:       "sim",
		WebDriverURL: "http://localhost:4723",
		Headless:     true,
		WaitTimeout:  10 * time.Second,
		PollInterval: 100 * time.Millisecond,
		JournalDir:   filepath.Join(homeDir, ".pom_automation"),
		LogLevel:     "info",
	}
}

// Load - reads optional .env files, then the environment. Missing files are not an error.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load env file: %w", err)
	}

	cfg := Default()
	setString(&cfg.Driver, "POM_DRIVER")
	setString(&cfg.AppURL, "POM_APP_URL")
	setString(&cfg.WebDriverURL, "POM_WEBDRIVER_URL")
	setString(&cfg.LocatorsFile, "POM_LOCATORS_FILE")
	setString(&cfg.JournalDir, "POM_JOURNAL_DIR")
	setString(&cfg.LogLevel, "LOG_LEVEL")
	setString(&cfg.Platform, "POM_PLATFORM")
	setString(&cfg.AutomationName, "POM_AUTOMATION_NAME")
	setString(&cfg.DeviceName, "POM_DEVICE_NAME")
	setString(&cfg.App, "POM_APP")
	setString(&cfg.AppID, "POM_APP_ID")
	setString(&cfg.RodControlURL, "POM_ROD_CONTROL_URL")

	if v := os.Getenv("POM_HEADLESS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid POM_HEADLESS %q: %w", v, err)
		}
		cfg.Headless = b
	}
	if err := setDuration(&cfg.WaitTimeout, "POM_WAIT_TIMEOUT"); err != nil {
		return Config{}, err
	}
	if err := setDuration(&cfg.PollInterval, "POM_POLL_INTERVAL"); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	if d < 0 {
		return fmt.Errorf("invalid %s %q: must not be negative", key, v)
	}
	*dst = d
	return nil
}
