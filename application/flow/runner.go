package flow

import (
	"context"
	"fmt"
	"time"

	"pom_automation/application/page"
	"pom_automation/application/pages"
	"pom_automation/domain/entities"
	"pom_automation/domain/interfaces"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Runner executes scenarios one at a time against a single driver session
type Runner struct {
	driver     interfaces.Driver
	driverName string
	target     string
	catalog    *Catalog
	store      interfaces.RunStore
	opts       page.Options
	logger     *logrus.Logger
	now        func() time.Time
}

// Config wires a Runner
type Config struct {
	Driver     interfaces.Driver
	DriverName string
	// Target is passed to Driver.Open when a scenario launches the application
	Target  string
	Catalog *Catalog
	// Store is optional; without it runs are not journaled
	Store       interfaces.RunStore
	PageOptions page.Options
	Logger      *logrus.Logger
}

// NewRunner - creates new runner instance
func NewRunner(cfg Config) *Runner {
	catalog := cfg.Catalog
	if catalog == nil {
		catalog = BuiltIn()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.New()
	}
	opts := cfg.PageOptions
	if opts.Logger == nil {
		opts.Logger = logger
	}

	return &Runner{
		driver:     cfg.Driver,
		driverName: cfg.DriverName,
		target:     cfg.Target,
		catalog:    catalog,
		store:      cfg.Store,
		opts:       opts,
		logger:     logger,
		now:        time.Now,
	}
}

// Catalog returns the scenarios this runner knows
func (r *Runner) Catalog() *Catalog {
	return r.catalog
}

// Run - executes the named scenario. The returned run is complete even when err is not nil.
// Any failure is terminal for the scenario; nothing is retried.
func (r *Runner) Run(ctx context.Context, name string) (entities.Run, error) {
	scenario, err := r.catalog.Get(name)
	if err != nil {
		return entities.Run{}, err
	}

	run := entities.Run{
		ID:        uuid.NewString(),
		Scenario:  scenario.Name,
		Driver:    r.driverName,
		Status:    entities.RunStatusRunning,
		StartedAt: r.now(),
	}
	log := r.logger.WithFields(logrus.Fields{"run": run.ID, "scenario": scenario.Name})
	log.Info("scenario started")

	rec := page.NewRecorder(r.driver)
	err = r.execute(ctx, rec, scenario)

	run.Interactions = rec.Interactions()
	run.FinishedAt = r.now()
	if err != nil {
		run.Status = entities.RunStatusFailed
		run.Error = err.Error()
		log.WithError(err).Error("scenario failed")
	} else {
		run.Status = entities.RunStatusPassed
		log.WithField("duration", run.Duration()).Info("scenario passed")
	}

	if r.store != nil {
		if saveErr := r.store.SaveRun(run); saveErr != nil {
			log.Warnf("failed to save run: %v", saveErr)
		}
	}

	return run, err
}

func (r *Runner) execute(ctx context.Context, driver interfaces.Driver, scenario Scenario) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("scenario canceled: %w", ctx.Err())
	default:
	}

	home, err := pages.Launch(ctx, driver, r.target, r.opts)
	if err != nil {
		return err
	}

	if err := scenario.Steps(ctx, home); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("scenario canceled: %w", ctx.Err())
		}
		return err
	}
	return nil
}

// History returns the journaled runs, oldest first
func (r *Runner) History() ([]entities.Run, error) {
	if r.store == nil {
		return []entities.Run{}, nil
	}
	return r.store.LoadRuns()
}
