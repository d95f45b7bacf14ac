package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/alexanderramin/daygoal/internal/cli"
	"github.com/alexanderramin/daygoal/internal/config"
	"github.com/alexanderramin/daygoal/internal/db"
	"github.com/alexanderramin/daygoal/internal/repository"
	"github.com/alexanderramin/daygoal/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	level, err := cfg.SlogLevel()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx := context.Background()

	database, dialect, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer database.Close()
	logger.Debug("store opened", "driver", cfg.DB.Driver)

	var observers []service.UseCaseObserver
	if cfg.Log.UseCases {
		observers = append(observers, service.NewLogUseCaseObserver(logger))
	}

	// Wire repositories. Day mutations get theirs per transaction from
	// the factory; the rest read and write through the pool.
	factory := repository.NewFactory(dialect)
	repos := factory(database)
	uow := db.NewSQLUnitOfWork(database)

	goals := service.NewGoalService(repos.Settings)
	app := &cli.App{
		Days: service.NewDayService(uow, factory, service.DayServiceConfig{
			StartPolicy: cfg.StartPolicy(),
			MaxRetries:  cfg.Store.MaxRetries,
		}, observers...),
		Catalog: service.NewCatalogService(repos.Catalog, observers...),
		Goals:   goals,
		Stats:   service.NewStatsService(repos.Days, goals),
	}

	// Prompts and the live timer view need an interactive terminal.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}

func openStore(ctx context.Context, cfg *config.Config) (*sql.DB, db.Dialect, error) {
	switch cfg.DB.Driver {
	case config.DriverMySQL:
		database, err := db.OpenMySQL(ctx, cfg.DB.DSN)
		if err != nil {
			return nil, "", fmt.Errorf("opening mysql: %w", err)
		}
		return database, db.DialectMySQL, nil
	default:
		database, err := db.OpenDB(cfg.DB.Path)
		if err != nil {
			return nil, "", fmt.Errorf("opening database: %w", err)
		}
		return database, db.DialectSQLite, nil
	}
}
