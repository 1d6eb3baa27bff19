package driver

import (
	"fmt"
	"sort"

	"pom_automation/domain/entities"
	"pom_automation/domain/interfaces"
	"pom_automation/infrastructure/config"
	"pom_automation/infrastructure/simulator"

	"github.com/sirupsen/logrus"
)

type constructor func(cfg config.Config, logger *logrus.Logger) (interfaces.Driver, error)

var constructors = map[string]constructor{
	"sim": func(cfg config.Config, logger *logrus.Logger) (interfaces.Driver, error) {
		return simulator.New(
			simulator.WithLogger(logger),
			simulator.WithPollInterval(cfg.PollInterval),
		), nil
	},
	"playwright": func(cfg config.Config, logger *logrus.Logger) (interfaces.Driver, error) {
		return NewPlaywright(PlaywrightOptions{
			Headless: cfg.Headless,
			BaseURL:  cfg.AppURL,
		}, logger)
	},
	"selenium": func(cfg config.Config, logger *logrus.Logger) (interfaces.Driver, error) {
		return NewSelenium(seleniumOptions(cfg), logger)
	},
	"chromedp": func(cfg config.Config, logger *logrus.Logger) (interfaces.Driver, error) {
		return NewChromedp(ChromedpOptions{
			Headless: cfg.Headless,
			BaseURL:  cfg.AppURL,
		}, logger)
	},
	"rod": func(cfg config.Config, logger *logrus.Logger) (interfaces.Driver, error) {
		return NewRod(rodOptions(cfg), logger)
	},
}

func seleniumOptions(cfg config.Config) SeleniumOptions {
	return SeleniumOptions{
		URL:            cfg.WebDriverURL,
		BaseURL:        cfg.AppURL,
		Headless:       cfg.Headless,
		PollInterval:   cfg.PollInterval,
		Platform:       cfg.Platform,
		AutomationName: cfg.AutomationName,
		DeviceName:     cfg.DeviceName,
		App:            cfg.App,
		AppID:          cfg.AppID,
	}
}

func rodOptions(cfg config.Config) RodOptions {
	return RodOptions{
		Headless:   cfg.Headless,
		BaseURL:    cfg.AppURL,
		ControlURL: cfg.RodControlURL,
	}
}

// ResolveName returns the driver New creates for name
func ResolveName(name string) string {
	if name == "" {
		return "sim"
	}
	return name
}

// New - creates the driver named by cfg.Driver; an empty name selects the simulator
func New(cfg config.Config, logger *logrus.Logger) (interfaces.Driver, error) {
	name := ResolveName(cfg.Driver)
	create, ok := constructors[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", entities.ErrUnknownDriver, name, Names())
	}

	logger.WithField("driver", name).Debug("Creating driver")
	d, err := create(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s driver: %w", name, err)
	}
	return d, nil
}

// Names returns the selectable driver names, sorted
func Names() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
