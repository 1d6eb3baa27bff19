package terminal

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"pom_automation/application/flow"
	"pom_automation/application/page"
	"pom_automation/domain/interfaces"
	"pom_automation/infrastructure/config"
	"pom_automation/infrastructure/driver"
	"pom_automation/infrastructure/storage"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type rootFlags struct {
	envFile    string
	driver     string
	appURL     string
	headless   bool
	timeout    time.Duration
	locators   string
	journalDir string
	logLevel   string
}

// Execute - runs the pom command line, canceling the running scenario on interrupt
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return NewRootCommand().ExecuteContext(ctx)
}

// NewRootCommand - builds the pom command tree
func NewRootCommand() *cobra.Command {
	f := &rootFlags{}
	root := &cobra.Command{
		Use:           "pom",
		Short:         "Run page-object UI test scenarios",
		Long:          `Runs scenarios written against page objects on a simulator, browser or Appium device and journals every run.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&f.envFile, "env-file", ".env", "Optional env file read before the environment")
	pf.StringVar(&f.driver, "driver", "", "Driver to use: "+strings.Join(driver.Names(), ", "))
	pf.StringVar(&f.appURL, "app-url", "", "URL or target opened when a scenario starts")
	pf.BoolVar(&f.headless, "headless", true, "Run browsers without a window")
	pf.DurationVar(&f.timeout, "timeout", 0, "Bounded wait for every element (e.g. 5s)")
	pf.StringVar(&f.locators, "locators", "", "YAML file with locator overrides")
	pf.StringVar(&f.journalDir, "journal-dir", "", "Directory of the run journal")
	pf.StringVar(&f.logLevel, "log-level", "", "Log level: debug, info, warn, error")

	root.AddCommand(
		newListCommand(),
		newRunCommand(f),
		newHistoryCommand(f),
		newShellCommand(f),
	)
	return root
}

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available scenarios",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			printScenarios(cmd.OutOrStdout(), flow.BuiltIn())
		},
	}
}

func newRunCommand(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "run [scenario...]",
		Short: "Run scenarios, all of them when none is named",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, f)
			if err != nil {
				return err
			}
			defer s.close()

			names := args
			if len(names) == 0 {
				for _, sc := range s.runner.Catalog().List() {
					names = append(names, sc.Name)
				}
			}
			return runScenarios(cmd.Context(), cmd.OutOrStdout(), s.runner, names)
		},
	}
}

func newHistoryCommand(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show journaled runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			store, err := storage.NewRunJournal(cfg.JournalDir)
			if err != nil {
				return err
			}
			runs, err := store.LoadRuns()
			if err != nil {
				return err
			}
			printHistory(cmd.OutOrStdout(), runs)
			return nil
		},
	}
}

func newShellCommand(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive prompt for running scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, f)
			if err != nil {
				return err
			}
			defer s.close()

			return NewTerminalInterface(s.runner, cmd.InOrStdin(), cmd.OutOrStdout()).Run(cmd.Context())
		},
	}
}

// loadConfig - env file and environment first, then any flag given on the command line
func loadConfig(cmd *cobra.Command, f *rootFlags) (config.Config, error) {
	cfg, err := config.Load(f.envFile)
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("driver") {
		cfg.Driver = f.driver
	}
	if flags.Changed("app-url") {
		cfg.AppURL = f.appURL
	}
	if flags.Changed("headless") {
		cfg.Headless = f.headless
	}
	if flags.Changed("timeout") {
		if f.timeout < 0 {
			return config.Config{}, fmt.Errorf("invalid --timeout %s: must not be negative", f.timeout)
		}
		cfg.WaitTimeout = f.timeout
	}
	if flags.Changed("locators") {
		cfg.LocatorsFile = f.locators
	}
	if flags.Changed("journal-dir") {
		cfg.JournalDir = f.journalDir
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	return cfg, nil
}

func newLogger(level string, out io.Writer) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	logger.SetLevel(lvl)
	return logger, nil
}

// session is one driver plus the runner bound to it
type session struct {
	runner *flow.Runner
	driver interfaces.Driver
	logger *logrus.Logger
}

func openSession(cmd *cobra.Command, f *rootFlags) (*session, error) {
	cfg, err := loadConfig(cmd, f)
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg.LogLevel, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	var overrides page.Overrides
	if cfg.LocatorsFile != "" {
		overrides, err = page.LoadOverrides(cfg.LocatorsFile)
		if err != nil {
			return nil, err
		}
		logger.Infof("Loaded locator overrides from %s", cfg.LocatorsFile)
	}

	store, err := storage.NewRunJournal(cfg.JournalDir)
	if err != nil {
		return nil, err
	}

	drv, err := driver.New(cfg, logger)
	if err != nil {
		return nil, err
	}

	runner := flow.NewRunner(flow.Config{
		Driver:     drv,
		DriverName: driver.ResolveName(cfg.Driver),
		Target:     cfg.AppURL,
		Store:      store,
		PageOptions: page.Options{
			Timeout:   cfg.WaitTimeout,
			Overrides: overrides,
		},
		Logger: logger,
	})

	return &session{runner: runner, driver: drv, logger: logger}, nil
}

func (s *session) close() {
	if err := s.driver.Close(); err != nil {
		s.logger.Warnf("Failed to close driver: %v", err)
	}
}

// runScenarios - runs names in order; a failed scenario does not stop the ones after it
func runScenarios(ctx context.Context, out io.Writer, runner *flow.Runner, names []string) error {
	failed := 0
	for _, name := range names {
		run, err := runner.Run(ctx, name)
		if err != nil && run.ID == "" {
			return err
		}
		printRun(out, run)
		if err != nil {
			failed++
		}
		if ctx.Err() != nil {
			break
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d scenarios failed", failed, len(names))
	}
	return nil
}
