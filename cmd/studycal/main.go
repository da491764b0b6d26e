package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/mkaminska/studycal/internal/calendar"
	"github.com/mkaminska/studycal/internal/cli"
	"github.com/mkaminska/studycal/internal/db"
	"github.com/mkaminska/studycal/internal/repository"
	"github.com/mkaminska/studycal/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.studycal/studycal.db
	dbPath := os.Getenv("STUDYCAL_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".studycal", "studycal.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	topicRepo := repository.NewSQLiteTopicRepo(database)
	sessionRepo := repository.NewSQLiteSessionRepo(database)
	prefsRepo := repository.NewSQLitePrefsRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	// Use-case logging goes to stderr when STUDYCAL_LOG is set; the
	// calendar index logs consistency warnings through the same handler.
	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	var indexLogger *slog.Logger
	if os.Getenv("STUDYCAL_LOG") != "" {
		observer = service.NewLogUseCaseObserver(os.Stderr)
		indexLogger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}

	clock := calendar.SystemClock
	index := calendar.NewBucketIndex(time.Local, indexLogger)

	app := &cli.App{
		Topics:   service.NewTopicService(topicRepo, sessionRepo, clock),
		Sessions: service.NewSessionService(sessionRepo, topicRepo, uow, clock, observer),
		Prefs:    service.NewPrefsService(prefsRepo),
		Calendar: service.NewCalendarService(sessionRepo, index, clock, observer),
	}

	// Detect interactive terminal for the form and TUI entrypoints.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
