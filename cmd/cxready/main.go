package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alexanderramin/cxready/internal/assessmentlog"
	"github.com/alexanderramin/cxready/internal/catalog"
	"github.com/alexanderramin/cxready/internal/cli"
	"github.com/alexanderramin/cxready/internal/config"
	"github.com/alexanderramin/cxready/internal/db"
	"github.com/alexanderramin/cxready/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	app := &cli.App{Bootstrap: bootstrap}
	defer app.Close()

	// Forms need a terminal on stdin.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.ExecuteContext(context.Background())
}

func bootstrap(ctx context.Context, configPath string) (*config.Config, service.AssessmentService, func() error, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	cat, err := loadCatalog(cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	log, closeLog, err := openLog(cfg, cat.IDs())
	if err != nil {
		return nil, nil, nil, err
	}

	var observers []service.UseCaseObserver
	if level, enabled, _ := cfg.SlogLevel(); enabled {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr, level))
	}

	svc, err := service.NewAssessmentService(cat, log, cfg.WeakThreshold, observers...)
	if err != nil {
		_ = closeLog()
		return nil, nil, nil, err
	}
	return cfg, svc, closeLog, nil
}

func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.BundlePath != "" {
		return catalog.LoadBundle(cfg.BundlePath)
	}
	opts, err := cfg.CatalogOptions()
	if err != nil {
		return nil, err
	}
	return catalog.LoadFiles(cfg.PrimaryPath, cfg.SecondaryPath, opts)
}

func openLog(cfg *config.Config, questionIDs []string) (assessmentlog.Log, func() error, error) {
	switch assessmentlog.Backend(cfg.LogBackend) {
	case assessmentlog.BackendSQLite:
		database, err := db.OpenDB(cfg.LogPath)
		if err != nil {
			return nil, nil, fmt.Errorf("opening assessment database: %w", err)
		}
		uow := db.NewSQLiteUnitOfWork(database)
		return assessmentlog.NewSQLiteLog(database, uow, questionIDs), database.Close, nil
	default:
		delim, err := cfg.DelimiterRune()
		if err != nil {
			return nil, nil, err
		}
		log := assessmentlog.NewFileLog(cfg.LogPath, questionIDs,
			assessmentlog.WithDelimiter(delim),
			assessmentlog.WithSkipReporter(func(line int, reason error) {
				fmt.Fprintf(os.Stderr, "Warning: %s line %d skipped: %v\n", cfg.LogPath, line, reason)
			}),
		)
		return log, func() error { return nil }, nil
	}
}
